// Package index defines the ranking index the similarity engine scans. An
// index is built from (id, vector) pairs and answers exact top-k queries
// under a caller-chosen metric.
package index
