// Package bruteforce provides an exact index that scores every vector
// against the query. Scoring is split into chunks evaluated concurrently;
// ranking is a stable ascending sort, so ties keep build order.
package bruteforce
