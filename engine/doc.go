// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the distance
// SQL scalar functions. It keeps a thin surface so the SQLite loader and its
// callers share the same driver instance.
package engine
