package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revisor/pkg/apperrors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	return NewStore(t.TempDir())
}

func TestEnsureIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	path1, err := store.Ensure("proj-1")
	require.NoError(t, err)
	head1, err := store.Head("proj-1")
	require.NoError(t, err)

	path2, err := store.Ensure("proj-1")
	require.NoError(t, err)
	head2, err := store.Head("proj-1")
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, head1, head2, "re-ensuring must keep the same root commit")
}

func TestCommitReturnsParentChain(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Ensure("proj-1")
	require.NoError(t, err)
	root, err := store.Head("proj-1")
	require.NoError(t, err)

	c1, p1, err := store.Commit("proj-1", []byte("one"), "docs/readme.md", "add readme", Author{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, root, p1)
	assert.NotEqual(t, root, c1)

	c2, p2, err := store.Commit("proj-1", []byte("two"), "docs/readme.md", "update readme", Author{Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, c1, p2)
	assert.NotEqual(t, c1, c2)
}

func TestCommitRoundTrip(t *testing.T) {
	store := newTestStore(t)

	content := []byte("round trip payload\n")
	_, _, err := store.Commit("proj-1", content, "data/blob.bin", "add blob", Author{})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(store.RepoPath("proj-1"), "data", "blob.bin"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestCommitEmbedsAuthor(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Commit("proj-1", []byte("x"), "a.txt", "msg", Author{Name: "carol", Email: "carol@example.com"})
	require.NoError(t, err)

	out, err := store.run(store.RepoPath("proj-1"), "log", "-1", "--format=%an <%ae>")
	require.NoError(t, err)
	assert.Equal(t, "carol <carol@example.com>", out)
}

func TestCommitRejectsEmptyDiff(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Commit("proj-1", []byte("same"), "a.txt", "first", Author{})
	require.NoError(t, err)

	_, _, err = store.Commit("proj-1", []byte("same"), "a.txt", "second", Author{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCommit)
}

func TestCheckoutMovesWorkingTree(t *testing.T) {
	store := newTestStore(t)

	c1, _, err := store.Commit("proj-1", []byte("v1"), "a.txt", "v1", Author{})
	require.NoError(t, err)
	_, _, err = store.Commit("proj-1", []byte("v2"), "a.txt", "v2", Author{})
	require.NoError(t, err)

	_, err = store.Checkout("proj-1", c1)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(store.RepoPath("proj-1"), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestCheckoutUnknownCommit(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Ensure("proj-1")
	require.NoError(t, err)

	_, err = store.Checkout("proj-1", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCommit)
}

func TestCheckoutMissingRepo(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Checkout("never-created", "deadbeef")
	assert.ErrorIs(t, err, apperrors.ErrUnknownCommit)
}

func TestProjectsAreIsolated(t *testing.T) {
	store := newTestStore(t)

	c1, _, err := store.Commit("proj-1", []byte("a"), "a.txt", "a", Author{})
	require.NoError(t, err)
	c2, _, err := store.Commit("proj-2", []byte("a"), "a.txt", "a", Author{})
	require.NoError(t, err)

	assert.NotEqual(t, store.RepoPath("proj-1"), store.RepoPath("proj-2"))

	// proj-2 must not know about proj-1's commit.
	_, err = store.Checkout("proj-2", c1)
	if c1 != c2 {
		assert.ErrorIs(t, err, apperrors.ErrUnknownCommit)
	}
}
