// Package embedding defines the value objects handed back to callers: a named
// vector (Embedding) and an ordered, name-keyed collection of them (Set).
package embedding
