// Package textenc resolves the character encoding of raw text files.
//
// Resolution honours a forced encoding first, then accepts a statistical
// guess only when it is confident, and finally walks a fixed list of
// candidates, taking the first one that decodes the sample without errors.
// Decoding the full content afterwards is always permissive: undecodable
// bytes become U+FFFD and decoding never fails.
package textenc
