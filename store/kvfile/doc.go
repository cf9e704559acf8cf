// Package kvfile reads and writes keyed-vector files.
//
// Layout, all integers little-endian:
//
//	magic "LXVF" | version u8 | flags u8 | payload
//
// When flags bit 0 is set the payload is zstd-compressed. The payload is
// dim(u32), n(u32), then n entries of idLen(u32), id bytes, dim float32s.
package kvfile
