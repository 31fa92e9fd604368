package gitobj

// NonceHeader is the commit header carrying the proof-of-work token.
const NonceHeader = "nonce"

// TokenLen is the fixed width of the rendered nonce token.
//
// The token covers 128 bits of the digest input. A Nonce only spans the
// low 64, which leaves the upper half of the token at 'A'; practical
// searches never exhaust it.
const TokenLen = 32

// 16-letter alphabet, one letter per nibble, most significant first.
const nonceAlphabet = "ABCDEFGHIJKLMNOP"

// Nonce is the mutable value injected into a candidate commit.
type Nonce uint64

// PutToken renders the token into dst, which must be at least TokenLen
// bytes. It performs no allocation, so search workers can patch their
// candidate buffer in place.
func (n Nonce) PutToken(dst []byte) {
	_ = dst[TokenLen-1]
	for j := 0; j < TokenLen; j++ {
		shift := uint(4 * (TokenLen - 1 - j))
		dst[j] = nonceAlphabet[(uint64(n)>>shift)&0xF]
	}
}

// Token renders the nonce as its header token.
func (n Nonce) Token() string {
	var buf [TokenLen]byte
	n.PutToken(buf[:])
	return string(buf[:])
}
