// Package store provides the backend abstraction for git object
// storage.
//
// A Store is a flat immutable K/V surface: loose objects are keyed by
// their fan-out path ("ab/cdef..."). The local file system backend in
// store/localfs is the only backend a repository needs; tests use it
// over an in-memory afero filesystem.
package store

import (
	"context"
	"io"
)

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrNotFound indicates the requested object is not in the store
	ErrNotFound errString = "not found"

	// ErrExists indicates an exclusive Put hit a pre-existing object
	ErrExists errString = "exists already"
)

const (
	// OverWrite indicates that a Put may replace an existing object
	OverWrite = true

	// NoOverWrite indicates that a Put must fail on an existing object
	NoOverWrite = false
)

// Store implementations know how to read and write entries of a K/V
// object store. Objects are immutable: a Put never changes existing
// content, it only adds keys.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
	Keys(context.Context) ([]string, error)
}
