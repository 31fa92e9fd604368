package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
	"github.com/oneconcern/gitzero/pkg/digest"
	"github.com/oneconcern/gitzero/pkg/gitobj"
)

// loosePath is the fan-out key of a loose object: the first hex byte
// is the directory, the remaining 38 digits the file name.
func loosePath(id digest.Digest) string {
	hex := id.String()
	return hex[:2] + "/" + hex[2:]
}

func deflateObject(obj []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(obj); err != nil {
		return nil, fmt.Errorf("deflating object: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflating object: %w", err)
	}
	return buf.Bytes(), nil
}

func inflateObject(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("inflating object: %w", err)
	}
	defer zr.Close()
	obj, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflating object: %w", err)
	}
	return obj, nil
}

// splitStoreHeader validates the "commit <len>\x00" header of raw
// object bytes and returns the body.
func splitStoreHeader(obj []byte) ([]byte, error) {
	nul := bytes.IndexByte(obj, 0)
	if nul < 0 {
		return nil, gitobj.ErrMalformedCommit
	}
	typ, sz, found := bytes.Cut(obj[:nul], []byte(" "))
	if !found || string(typ) != gitobj.ObjectType {
		return nil, fmt.Errorf("object is a %q, expected a commit", typ)
	}
	body := obj[nul+1:]
	size, err := strconv.Atoi(string(sz))
	if err != nil || size != len(body) {
		return nil, gitobj.ErrMalformedCommit
	}
	return body, nil
}

func (r *Repo) readLoose(ctx context.Context, id digest.Digest) ([]byte, error) {
	rdr, err := r.objects.Get(ctx, loosePath(id))
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	compressed, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	obj, err := inflateObject(compressed)
	if err != nil {
		return nil, err
	}
	body, err := splitStoreHeader(obj)
	if err != nil {
		return nil, fmt.Errorf("loose object %s: %w", id, err)
	}
	// the id must reproduce from the stored bytes
	if d := digest.Sum(obj); d != id {
		return nil, fmt.Errorf("loose object %s does not hash to its id (got %s)", id, d)
	}
	return body, nil
}
