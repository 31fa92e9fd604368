// Package digest computes and compares git object ids.
//
// An id is the SHA-1 of the object's store representation,
// i.e. "commit <len>\x00" followed by the commit body.
//
// The package exposes whole-buffer hashing as well as a prefix-cached
// mode: the hash state after the immutable leading bytes of a candidate
// object is captured once per worker, then replayed for every nonce so
// that each attempt only hashes the mutable tail.
package digest
