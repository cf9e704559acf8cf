// Package store defines the read-only token-to-vector store the resolver and
// similarity engine read from, along with helpers shared by its backends:
//   - Store interface and the Lookup result type
//   - lowercase token filtering
//   - vector BLOB encoding used by the SQLite and Redis loaders
package store
