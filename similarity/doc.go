// Package similarity ranks the vocabulary of a store by distance to a query
// embedding and returns the closest n entries.
//
// Every call scans the full (optionally lowercase-only) vocabulary, so memory
// use is proportional to vocabulary size times dimension.
package similarity
