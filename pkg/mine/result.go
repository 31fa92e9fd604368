package mine

import (
	"github.com/oneconcern/gitzero/pkg/digest"
	"github.com/oneconcern/gitzero/pkg/gitobj"
	"github.com/oneconcern/gitzero/pkg/mine/status"
)

// Result holds the outcome of a successful search. Produced at most
// once per search and immutable after creation.
type Result struct {
	Nonce gitobj.Nonce  // the winning nonce
	ID    digest.Digest // digest of the winning encoding
	Bits  int           // achieved leading zero bits, >= the requested target
}

// Apply re-serializes the object with the winning nonce and returns the
// final store bytes together with their digest, ready for the object
// writer. The bytes are re-hashed and checked against the result as a
// guard against corrupted search state.
func Apply(tpl *gitobj.Template, r Result) ([]byte, digest.Digest, error) {
	out := tpl.Bytes(r.Nonce)
	d := digest.Sum(out)
	if d != r.ID {
		return nil, digest.Digest{}, status.ErrResultMismatch
	}
	return out, d, nil
}
