package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorSentinel(t *testing.T) {
	sentinel := New("search cancelled")
	wrapped := sentinel.Wrap(New("context deadline exceeded"))

	// wrapping must not mutate the sentinel
	assert.Nil(t, sentinel.Unwrap())
	assert.True(t, Is(wrapped, sentinel))
	assert.EqualError(t, wrapped, "search cancelled")
}
