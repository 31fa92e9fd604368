package gitobj

// Template is a pre-rendered candidate buffer for one commit, split at
// the nonce token. The prefix (store header plus all immutable header
// bytes) is shared read-only; each search worker takes its own copy of
// the mutable tail and patches the token in place per attempt.
type Template struct {
	buf      []byte // full store bytes, token slot rendered for Nonce(0)
	tokenOff int
}

// NewTemplate validates the commit and pre-renders its candidate buffer.
func NewTemplate(c *Commit) (*Template, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	buf := c.Encode(0)
	tailLen := TokenLen + 2 + len(c.Message)
	return &Template{
		buf:      buf,
		tokenOff: len(buf) - tailLen,
	}, nil
}

// Len is the constant length of every candidate encoding.
func (t *Template) Len() int {
	return len(t.buf)
}

// Prefix returns the immutable leading bytes, up to the token. The
// returned slice aliases the template and must not be modified.
func (t *Template) Prefix() []byte {
	return t.buf[:t.tokenOff]
}

// Tail returns a copy of the mutable region: the token slot followed by
// the blank line and message. Render a candidate by calling
// Nonce.PutToken on its first TokenLen bytes.
func (t *Template) Tail() []byte {
	return append([]byte(nil), t.buf[t.tokenOff:]...)
}

// Bytes renders the full store representation for the given nonce into
// a fresh buffer.
func (t *Template) Bytes(n Nonce) []byte {
	out := append([]byte(nil), t.buf...)
	n.PutToken(out[t.tokenOff : t.tokenOff+TokenLen])
	return out
}
