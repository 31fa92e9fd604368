package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oneconcern/gitzero/pkg/digest"
	"github.com/oneconcern/gitzero/pkg/errors"
	"github.com/oneconcern/gitzero/pkg/store"
	"github.com/oneconcern/gitzero/pkg/store/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrNoGit indicates the git binary is not available in PATH
	ErrNoGit = errors.New("git not found in PATH")

	// ErrNotARepository indicates the path is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")
)

// Repo gives access to one git repository's objects and refs.
type Repo struct {
	workdir string
	gitDir  string
	objects store.Store
	l       *zap.Logger
}

// Option to configure a Repo
type Option func(*Repo)

// Logger sets a logger for this repository
func Logger(l *zap.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.l = l
		}
	}
}

// Objects overrides the loose object backend (used by tests)
func Objects(s store.Store) Option {
	return func(r *Repo) {
		r.objects = s
	}
}

// Open locates the repository containing path and sets up its loose
// object store.
func Open(path string, opts ...Option) (*Repo, error) {
	r := &Repo{
		workdir: path,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}

	if _, err := exec.LookPath("git"); err != nil {
		return nil, ErrNoGit.Wrap(err)
	}
	out, err := r.git(context.Background(), "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, ErrNotARepository.Wrap(err)
	}
	r.gitDir = strings.TrimSpace(out)

	if r.objects == nil {
		base := afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(r.gitDir, "objects"))
		r.objects = localfs.New(base)
	}
	return r, nil
}

// GitDir returns the absolute path of the .git directory
func (r *Repo) GitDir() string {
	return r.gitDir
}

// ResolveCommit resolves a revision (e.g. "HEAD") to a commit id.
func (r *Repo) ResolveCommit(ctx context.Context, rev string) (digest.Digest, error) {
	out, err := r.git(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return digest.Digest{}, fmt.Errorf("resolving %q: %w", rev, err)
	}
	return digest.FromString(strings.TrimSpace(out))
}

// ReadCommit returns the raw body of a commit, without the store
// header. Loose objects are read directly from the object store;
// packed objects go through the git binary.
func (r *Repo) ReadCommit(ctx context.Context, id digest.Digest) ([]byte, error) {
	body, err := r.readLoose(ctx, id)
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	r.l.Debug("object not loose, using git cat-file", zap.Stringer("id", id))
	out, err := r.git(ctx, "cat-file", "commit", id.String())
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", id, err)
	}
	return []byte(out), nil
}

// WriteCommit stores final object bytes (including the store header)
// as a loose object. Writing is idempotent: an already present id is
// left untouched.
func (r *Repo) WriteCommit(ctx context.Context, obj []byte, id digest.Digest) error {
	key := loosePath(id)
	found, err := r.objects.Has(ctx, key)
	if err != nil {
		return err
	}
	if found {
		r.l.Debug("object already present", zap.Stringer("id", id))
		return nil
	}
	compressed, err := deflateObject(obj)
	if err != nil {
		return err
	}
	if err := r.objects.Put(ctx, key, bytes.NewReader(compressed), store.NoOverWrite); err != nil && !errors.Is(err, store.ErrExists) {
		return fmt.Errorf("writing object %s: %w", id, err)
	}
	r.l.Debug("wrote loose object",
		zap.Stringer("id", id),
		zap.Int("raw_bytes", len(obj)),
		zap.Int("compressed_bytes", len(compressed)),
	)
	return nil
}

// ResetSoft moves the current branch (via HEAD) onto id, leaving index
// and worktree as they are.
func (r *Repo) ResetSoft(ctx context.Context, id digest.Digest) error {
	if _, err := r.git(ctx, "reset", "--soft", id.String()); err != nil {
		return fmt.Errorf("soft reset to %s: %w", id, err)
	}
	return nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.workdir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}
