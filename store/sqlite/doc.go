// Package sqlite loads a store.Store from a SQLite table of BLOB-encoded
// vectors and writes stores back into one. Vectors use the little-endian
// float32 encoding from store.EncodeVector.
package sqlite
