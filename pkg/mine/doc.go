// Package mine drives the parallel proof-of-work search over commit
// candidates.
//
// The nonce domain is partitioned by striding: worker i evaluates
// nonces i, i+W, i+2W, ... for W workers, so no nonce is ever evaluated
// twice and no range starves. Workers share exactly two mutable cells,
// an atomic found flag and a single-slot result installed by the first
// successful compare-and-set. Which of several concurrently valid
// nonces wins is deliberately left unspecified.
package mine
