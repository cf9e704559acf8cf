// Package sqlindex provides an exact index that ranks candidates inside
// SQLite. Candidates are written to a per-index table and ordered by the
// vec_distance function the engine package registers with the driver.
package sqlindex
