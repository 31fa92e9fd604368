// Package gitrepo is the plumbing between the search engine and an
// actual git repository.
//
// Reading resolves revisions and fetches raw commit bodies, preferring
// the loose object store and falling back to the git binary for packed
// objects. Writing always produces a loose object under .git/objects,
// which any standard git reader accepts, and moves the current branch
// with a soft reset so the index and worktree stay untouched.
package gitrepo
