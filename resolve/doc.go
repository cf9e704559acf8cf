// Package resolve turns string queries into embeddings by looking tokens up
// in a store.Store.
//
// A query without a space is a single token. A query containing a space is a
// phrase: it is split on single spaces, every part is resolved on its own and
// the vectors are summed; the result keeps the unsplit phrase as its name.
// Batch queries resolve each element in order into an embedding.Set.
//
// What happens on a miss is a MissPolicy: FallbackZero substitutes a zero
// vector for the whole single-token lookup, Strict returns store.ErrLookupMiss.
package resolve
