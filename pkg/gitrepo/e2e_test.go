package gitrepo

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/oneconcern/gitzero/pkg/gitobj"
	"github.com/oneconcern/gitzero/pkg/mine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitOrSkip(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) string {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
		return string(out)
	}
	run("init", "-q")
	run("config", "user.name", "A U Thor")
	run("config", "user.email", "author@example.com")
	run("commit", "-q", "--allow-empty", "-m", "first")
	run("commit", "-q", "--allow-empty", "-m", "second")
	return dir
}

func TestOpenAndResolve(t *testing.T) {
	gitOrSkip(t)
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(r.GitDir(), ".git"))

	ctx := context.Background()
	head, err := r.ResolveCommit(ctx, "HEAD")
	require.NoError(t, err)

	body, err := r.ReadCommit(ctx, head)
	require.NoError(t, err)

	c, err := gitobj.ParseCommit(body)
	require.NoError(t, err)
	assert.Len(t, c.Parents, 1)
	assert.Equal(t, "second\n", c.Message)

	_, err = r.ResolveCommit(ctx, "no-such-rev")
	require.Error(t, err)
}

func TestOpenNotARepository(t *testing.T) {
	gitOrSkip(t)
	_, err := Open(t.TempDir())
	require.ErrorIs(t, err, ErrNotARepository)
}

// full cycle: read HEAD, mine a small target, write the loose object,
// soft-reset, and have git itself accept the result
func TestMineRewriteE2E(t *testing.T) {
	gitOrSkip(t)
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)

	ctx := context.Background()
	head, err := r.ResolveCommit(ctx, "HEAD")
	require.NoError(t, err)
	body, err := r.ReadCommit(ctx, head)
	require.NoError(t, err)

	c, err := gitobj.ParseCommit(body)
	require.NoError(t, err)
	tpl, err := gitobj.NewTemplate(c)
	require.NoError(t, err)

	const target = 8
	m := mine.New(mine.Workers(2), mine.StatusEvery(0))
	res, err := m.Search(ctx, tpl, target)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Bits, target)

	obj, id, err := mine.Apply(tpl, res)
	require.NoError(t, err)
	require.NoError(t, r.WriteCommit(ctx, obj, id))
	require.NoError(t, r.ResetSoft(ctx, id))

	// git agrees on both the id and the content
	newHead, err := r.ResolveCommit(ctx, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, id, newHead)

	out, err := exec.Command("git", "-C", dir, "cat-file", "commit", id.String()).Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "nonce "+res.Nonce.Token()+"\n")

	fsck, err := exec.Command("git", "-C", dir, "fsck").CombinedOutput()
	require.NoError(t, err, "git fsck: %s", fsck)
}
