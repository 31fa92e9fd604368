// Package status exports errors produced by the mine package.
package status

import (
	"github.com/oneconcern/gitzero/pkg/errors"
)

var (
	// ErrInvalidTarget indicates a leading-zero-bit target outside the digest range
	ErrInvalidTarget = errors.New("target bits outside the digest range")

	// ErrInvalidWorkerCount indicates a non-positive worker count
	ErrInvalidWorkerCount = errors.New("worker count must be positive")

	// ErrCancelled signals that the search was cancelled before any worker found a match.
	// This is a terminal outcome distinct from success, not an internal failure.
	ErrCancelled = errors.New("search cancelled before a match was found")

	// ErrResultMismatch indicates that re-encoding the winning nonce did not
	// reproduce the winning digest. This cannot happen unless state was corrupted.
	ErrResultMismatch = errors.New("re-encoded object does not reproduce the winning digest")
)
