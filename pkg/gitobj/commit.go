package gitobj

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/oneconcern/gitzero/pkg/errors"
)

// ObjectType is the git object type this package serializes.
const ObjectType = "commit"

var (
	// ErrMalformedCommit indicates commit bytes or fields that cannot be
	// serialized per the git object format.
	ErrMalformedCommit = errors.New("malformed commit object")

	// ErrMissingTree indicates a commit without a tree header
	ErrMissingTree = errors.New("commit has no tree header")

	// ErrMissingAuthor indicates a commit without an author header
	ErrMissingAuthor = errors.New("commit has no author header")

	// ErrMissingCommitter indicates a commit without a committer header
	ErrMissingCommitter = errors.New("commit has no committer header")
)

// Header is a single commit header. For multi-line headers such as
// gpgsig, Value holds the continuation lines separated by "\n " exactly
// as they appear in the object.
type Header struct {
	Name  string
	Value string
}

// Commit holds the immutable fields of a commit object. It is read-only
// to the search: candidate bytes are produced by Encode or through a
// Template, never by mutating the Commit.
type Commit struct {
	Tree      string
	Parents   []string
	Author    string
	Committer string
	Extra     []Header // remaining headers (e.g. gpgsig), original order
	Message   string
}

// ParseCommit parses a raw commit body, i.e. the object content without
// the "commit <len>\x00" store header.
//
// A pre-existing nonce header is dropped: the slot is re-emitted by
// Encode with the candidate token.
func ParseCommit(body []byte) (*Commit, error) {
	sep := bytes.Index(body, []byte("\n\n"))
	if sep < 0 {
		return nil, ErrMalformedCommit.Wrap(errors.New("no header/message separator"))
	}

	c := &Commit{Message: string(body[sep+2:])}

	lines := strings.Split(string(body[:sep]), "\n")
	var headers []Header
	for _, line := range lines {
		if strings.HasPrefix(line, " ") {
			// continuation of the previous header
			if len(headers) == 0 {
				return nil, ErrMalformedCommit.Wrap(errors.New("continuation line without header"))
			}
			headers[len(headers)-1].Value += "\n" + line[1:]
			continue
		}
		name, value, found := strings.Cut(line, " ")
		if !found || name == "" {
			return nil, ErrMalformedCommit.Wrap(errors.New("header line without separator: " + strconv.Quote(line)))
		}
		headers = append(headers, Header{Name: name, Value: value})
	}

	for _, h := range headers {
		switch h.Name {
		case "tree":
			if c.Tree != "" {
				return nil, ErrMalformedCommit.Wrap(errors.New("duplicate tree header"))
			}
			c.Tree = h.Value
		case "parent":
			c.Parents = append(c.Parents, h.Value)
		case "author":
			c.Author = h.Value
		case "committer":
			c.Committer = h.Value
		case NonceHeader:
			// slot is regenerated on encode
		default:
			c.Extra = append(c.Extra, h)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the commit can be serialized per the git format.
func (c *Commit) Validate() error {
	switch {
	case !isHexRef(c.Tree):
		if c.Tree == "" {
			return ErrMissingTree
		}
		return ErrMalformedCommit.Wrap(errors.New("invalid tree reference " + strconv.Quote(c.Tree)))
	case c.Author == "":
		return ErrMissingAuthor
	case c.Committer == "":
		return ErrMissingCommitter
	}
	for _, p := range c.Parents {
		if !isHexRef(p) {
			return ErrMalformedCommit.Wrap(errors.New("invalid parent reference " + strconv.Quote(p)))
		}
	}
	for _, h := range c.Extra {
		if h.Name == "" || strings.ContainsAny(h.Name, " \n") {
			return ErrMalformedCommit.Wrap(errors.New("invalid header name " + strconv.Quote(h.Name)))
		}
	}
	return nil
}

// Body serializes the commit body for the given nonce: canonical header
// order, the nonce header last, a blank line, then the message verbatim.
func (c *Commit) Body(n Nonce) []byte {
	var b bytes.Buffer
	b.Grow(c.bodyLen())
	b.WriteString("tree " + c.Tree + "\n")
	for _, p := range c.Parents {
		b.WriteString("parent " + p + "\n")
	}
	b.WriteString("author " + c.Author + "\n")
	b.WriteString("committer " + c.Committer + "\n")
	for _, h := range c.Extra {
		b.WriteString(h.Name + " " + strings.ReplaceAll(h.Value, "\n", "\n ") + "\n")
	}
	b.WriteString(NonceHeader + " " + n.Token() + "\n")
	b.WriteString("\n")
	b.WriteString(c.Message)
	return b.Bytes()
}

// Encode produces the store representation hashed by git:
// "commit <len>\x00" followed by the body. The length, and therefore
// the immutable prefix, is the same for every nonce.
func (c *Commit) Encode(n Nonce) []byte {
	body := c.Body(n)
	head := ObjectType + " " + strconv.Itoa(len(body)) + "\x00"
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, body...)
	return out
}

func (c *Commit) bodyLen() int {
	n := len("tree \n") + len(c.Tree)
	for _, p := range c.Parents {
		n += len("parent \n") + len(p)
	}
	n += len("author \n") + len(c.Author)
	n += len("committer \n") + len(c.Committer)
	for _, h := range c.Extra {
		n += len(h.Name) + 2 + len(h.Value) + strings.Count(h.Value, "\n")
	}
	n += len(NonceHeader) + 1 + TokenLen + 1
	n += 1 + len(c.Message)
	return n
}

func isHexRef(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
