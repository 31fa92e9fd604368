package gitobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonceToken(t *testing.T) {
	tests := []struct {
		nonce Nonce
		token string
	}{
		{0, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{1, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB"},
		{15, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAP"},
		{16, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAABA"},
		{17, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAABB"},
		{901, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAADIF"},
		{0xFFFFFFFFFFFFFFFF, "AAAAAAAAAAAAAAAAPPPPPPPPPPPPPPPP"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.token, tt.nonce.Token())
		assert.Len(t, tt.token, TokenLen)
	}
}

func TestNoncePutTokenInPlace(t *testing.T) {
	buf := make([]byte, TokenLen+8)
	for i := range buf {
		buf[i] = 'x'
	}
	Nonce(901).PutToken(buf)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAADIF", string(buf[:TokenLen]))
	assert.Equal(t, "xxxxxxxx", string(buf[TokenLen:]))
}
