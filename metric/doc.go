// Package metric enumerates the supported distance metrics and maps each name
// to its implementation. Smaller distances always mean more similar.
//
// Supported names: cosine, euclidean (l2), sqeuclidean, manhattan
// (cityblock, l1) and chebyshev. Unknown names fail with ErrUnsupportedMetric.
package metric
