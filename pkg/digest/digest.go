package digest

import (
	"encoding/hex"
	"fmt"
	"math/bits"
)

const (
	// Size of a digest in bytes (SHA-1)
	Size = 20

	// SizeHex is the length of the hex representation of a digest
	SizeHex = 2 * Size

	// MaxBits is the number of bits in a digest, and therefore the
	// largest meaningful leading-zero-bit target.
	MaxBits = 8 * Size
)

// Digest is a git object id. Immutable once computed.
type Digest [Size]byte

// NewDigest creates a digest from raw bytes
func NewDigest(data []byte) (Digest, error) {
	var d Digest
	if len(data) != Size {
		return Digest{}, &BadDigestSize{Data: data}
	}
	copy(d[:], data)
	return d, nil
}

// FromString parses a hex encoded digest
func FromString(s string) (Digest, error) {
	if len(s) != SizeHex {
		return Digest{}, &BadDigestSize{Data: []byte(s)}
	}
	var d Digest
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, err
	}
	return d, nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// LeadingZeroBits counts zero bits from the most significant bit of the
// digest until the first set bit, in [0, MaxBits].
func (d Digest) LeadingZeroBits() int {
	zeros := 0
	for _, b := range d {
		zeros += bits.LeadingZeros8(b)
		if b != 0 {
			break
		}
	}
	return zeros
}

// Matches reports whether the digest meets or exceeds the requested
// leading-zero-bit target.
func (d Digest) Matches(target int) bool {
	return d.LeadingZeroBits() >= target
}

// BadDigestSize is an error returned when raw digest material has an invalid size.
type BadDigestSize struct {
	Data []byte
}

func (b *BadDigestSize) Error() string {
	return fmt.Sprintf("%x has invalid size of %d, expected %d", b.Data, len(b.Data), Size)
}
