package gitobj

import (
	"strings"
	"testing"

	"github.com/oneconcern/gitzero/pkg/digest"
	"github.com/oneconcern/gitzero/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommit() *Commit {
	return &Commit{
		Tree:      "4b825dc642cb6eb9a060e54bf8d69288fbee4904",
		Parents:   []string{"3f1b9c0f9ce64a5ab63f2f0d1c9e0f1e1a2b3c4d"},
		Author:    "A U Thor <author@example.com> 1234567890 +0000",
		Committer: "C O Mitter <committer@example.com> 1234567890 +0000",
		Message:   "pow: rewrite history (attempt 10)\n",
	}
}

func TestEncodeKnownDigest(t *testing.T) {
	// digest of the nonce-0 encoding of testCommit, computed with the
	// reference sha1 over "commit <len>\x00" + body
	const want = "0358a0aa4d5a4a62c3bbe618bcb1f72658e0755a"

	c := testCommit()
	d := digest.Sum(c.Encode(0))
	assert.Equal(t, want, d.String())
	assert.Equal(t, 6, d.LeadingZeroBits())
}

func TestEncodeDeterministic(t *testing.T) {
	c := testCommit()
	for _, n := range []Nonce{0, 1, 17, 901, 1 << 40} {
		first := c.Encode(n)
		second := c.Encode(n)
		assert.Equal(t, first, second)
		assert.Equal(t, len(first), len(c.Encode(0)), "length must not depend on the nonce")
	}
}

func TestEncodeShape(t *testing.T) {
	c := testCommit()
	raw := string(c.Encode(42))

	head, body, found := strings.Cut(raw, "\x00")
	require.True(t, found)
	assert.Equal(t, "commit 284", head)
	assert.Len(t, body, 284)
	assert.Contains(t, body, "\nnonce "+Nonce(42).Token()+"\n\n")
	assert.True(t, strings.HasSuffix(body, "\n\n"+c.Message))
}

func TestParseCommitRoundTrip(t *testing.T) {
	c := testCommit()
	body := c.Body(901)

	parsed, err := ParseCommit(body)
	require.NoError(t, err)
	// the nonce header is dropped on parse and regenerated on encode
	assert.Equal(t, c, parsed)
	assert.Equal(t, c.Encode(901), parsed.Encode(901))
}

func TestParseCommitMultiLineHeader(t *testing.T) {
	sig := "-----BEGIN PGP SIGNATURE-----\n\nAAAA\n-----END PGP SIGNATURE-----"
	c := testCommit()
	c.Extra = []Header{{Name: "gpgsig", Value: sig}}

	body := c.Body(0)
	parsed, err := ParseCommit(body)
	require.NoError(t, err)
	require.Len(t, parsed.Extra, 1)
	assert.Equal(t, sig, parsed.Extra[0].Value)
	assert.Equal(t, body, parsed.Body(0))
}

func TestParseCommitNoParent(t *testing.T) {
	c := testCommit()
	c.Parents = nil
	parsed, err := ParseCommit(c.Body(0))
	require.NoError(t, err)
	assert.Empty(t, parsed.Parents)
}

func TestParseCommitMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty", "", ErrMalformedCommit},
		{"no separator", "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n", ErrMalformedCommit},
		{"missing tree", "author a <a@b> 0 +0000\ncommitter a <a@b> 0 +0000\n\nmsg", ErrMissingTree},
		{"missing author", "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\ncommitter a <a@b> 0 +0000\n\nmsg", ErrMissingAuthor},
		{"missing committer", "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\nauthor a <a@b> 0 +0000\n\nmsg", ErrMissingCommitter},
		{"bad tree ref", "tree xyz\nauthor a <a@b> 0 +0000\ncommitter a <a@b> 0 +0000\n\nmsg", ErrMalformedCommit},
		{"orphan continuation", " orphan\n\nmsg", ErrMalformedCommit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommit([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidateRejectsBadHeaderName(t *testing.T) {
	c := testCommit()
	c.Extra = []Header{{Name: "bad name", Value: "x"}}
	require.Error(t, c.Validate())
}
