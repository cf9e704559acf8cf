// Package lexvec retrieves embeddings for tokens and phrases from a
// pre-trained token-to-vector store and finds the nearest vocabulary entries
// to a query.
//
// A Language ties the pieces together:
//
//	s, _ := kvfile.Open("wordvectors.kv")
//	lang := lexvec.New(s)
//	cat, _ := lang.Get("cat")                   // single token
//	pet, _ := lang.Get("house cat")             // phrase: summed vectors
//	set, _ := lang.Set("computer", "human")     // batch
//	near, _ := lang.ScoreSimilar("cat", similarity.WithN(5))
//
// Missing tokens resolve to a zero vector unless the Language is built with
// resolve.Strict. Asking for more neighbours than there are candidates logs a
// warning and returns what is available.
package lexvec
