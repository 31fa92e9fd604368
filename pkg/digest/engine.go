package digest

import (
	// nolint: gosec // SHA-1 is mandated by the git object format
	"crypto/sha1"
	"encoding"
	"fmt"
	"hash"
)

// Sum computes the digest of a whole buffer.
func Sum(data []byte) Digest {
	return Digest(sha1.Sum(data))
}

// PrefixState captures the internal SHA-1 state after hashing an
// immutable prefix. Obtain one with Prepare, then call Sum with the
// mutable suffix of each candidate.
//
// A PrefixState is read-only after Prepare and may be shared between
// goroutines, though each search worker typically prepares its own.
type PrefixState struct {
	snap []byte
}

// Prepare hashes the given prefix once and captures the resulting state.
//
// The prefix does not need to be block aligned: the stdlib SHA-1
// marshals its buffered partial block along with the chain state.
func Prepare(prefix []byte) (*PrefixState, error) {
	h := sha1.New()
	_, _ = h.Write(prefix)
	m, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("sha1 state is not marshalable")
	}
	snap, err := m.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot sha1 state: %w", err)
	}
	return &PrefixState{snap: snap}, nil
}

// Sum resumes the captured state, hashes the suffix and returns the
// digest of prefix++suffix.
//
// Invariant: for all P and S, Prepare(P).Sum(S) == Sum(P ++ S).
func (s *PrefixState) Sum(suffix []byte) (Digest, error) {
	h := sha1.New()
	u, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		return Digest{}, fmt.Errorf("sha1 state is not unmarshalable")
	}
	if err := u.UnmarshalBinary(s.snap); err != nil {
		return Digest{}, fmt.Errorf("restore sha1 state: %w", err)
	}
	return sumInto(h, suffix), nil
}

func sumInto(h hash.Hash, suffix []byte) Digest {
	_, _ = h.Write(suffix)
	var d Digest
	h.Sum(d[:0])
	return d
}
