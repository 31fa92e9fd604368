package localfs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/oneconcern/gitzero/pkg/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) store.Store {
	t.Helper()
	fs := afero.NewMemMapFs()
	bs := New(fs)
	require.NoError(t, bs.Put(context.Background(), "ab/cdef", strings.NewReader("this is the text"), store.NoOverWrite))
	require.NoError(t, bs.Put(context.Background(), "ff/0011", strings.NewReader("this is the text for another thing"), store.NoOverWrite))
	return bs
}

func TestHas(t *testing.T) {
	bs := setupStore(t)

	has, err := bs.Has(context.Background(), "ab/cdef")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "ab/missing")
	require.NoError(t, err)
	require.False(t, has)
}

func TestGet(t *testing.T) {
	bs := setupStore(t)

	rdr, err := bs.Get(context.Background(), "ab/cdef")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "this is the text", string(b))
	require.NoError(t, rdr.Close())

	_, err = bs.Get(context.Background(), "ab/missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestKeys(t *testing.T) {
	bs := setupStore(t)

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 2)
}

func TestPut(t *testing.T) {
	bs := setupStore(t)

	content := bytes.NewBufferString("here we go once again")
	err := bs.Put(context.Background(), "0a/18", content, store.NoOverWrite)
	require.NoError(t, err)

	rdr, err := bs.Get(context.Background(), "0a/18")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "here we go once again", string(b))
	require.NoError(t, rdr.Close())
}

func TestPutExclusive(t *testing.T) {
	bs := setupStore(t)

	err := bs.Put(context.Background(), "ab/cdef", strings.NewReader("changed"), store.NoOverWrite)
	require.Error(t, err)

	// objects are immutable: the original content survives
	rdr, err := bs.Get(context.Background(), "ab/cdef")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "this is the text", string(b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "localfs", New(afero.NewMemMapFs()).String())
}
