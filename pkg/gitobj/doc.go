// Package gitobj builds the byte-exact store representation of git
// commit objects.
//
// A commit is parsed from its raw body (as printed by `git cat-file
// commit`) into its header fields and message, and re-encoded with a
// `nonce` header carrying a fixed-width token as its last header line.
// Because the token width is constant, every candidate encoding has the
// same length, so the `commit <len>\x00` store header and everything up
// to the token form an immutable prefix suitable for prefix-cached
// hashing (see pkg/digest).
package gitobj
