package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo is a throwaway repository for git tests.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

// newTestRepo initializes an empty repository in a temp directory.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

// writeFile writes a repo-relative file in the working tree.
func (r *testRepo) writeFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.dir, filepath.FromSlash(name))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// commit stages every change and commits, returning the full hash.
func (r *testRepo) commit(message string) string {
	r.t.Helper()
	require.NoError(r.t, r.wt.AddWithOptions(&gogit.AddOptions{All: true}))

	hash, err := r.wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(r.t, err)
	return hash.String()
}

// remove deletes a repo-relative file from the working tree.
func (r *testRepo) remove(name string) {
	r.t.Helper()
	require.NoError(r.t, os.Remove(filepath.Join(r.dir, filepath.FromSlash(name))))
}

func TestIsRepository(t *testing.T) {
	repo := newTestRepo(t)
	assert.True(t, IsRepository(repo.dir))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestRepositoryRoot(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content")

	// Detection walks up from a subdirectory.
	root, err := RepositoryRoot(filepath.Join(repo.dir, "docs"))
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(repo.dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestCommitDate(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "v1")
	hash := repo.commit("add page")

	date, err := CommitDate(repo.dir, hash)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), date, time.Minute)

	// Abbreviated hashes resolve too.
	short, err := CommitDate(repo.dir, hash[:7])
	require.NoError(t, err)
	assert.Equal(t, date.Unix(), short.Unix())
}

func TestCommitDateUnknownRevision(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "v1")
	repo.commit("add page")

	_, err := CommitDate(repo.dir, "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving revision")
}

func TestShowFile(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "first version")
	first := repo.commit("v1")

	repo.writeFile("docs/page.md", "second version")
	repo.commit("v2")

	tests := map[string]struct {
		rev  string
		want string
	}{
		"at older commit": {rev: first, want: "first version"},
		"at HEAD":         {rev: "HEAD", want: "second version"},
		"working tree":    {rev: "", want: "second version"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			content, err := ShowFile(repo.dir, tt.rev, "docs/page.md")
			require.NoError(t, err)
			assert.Equal(t, tt.want, content)
		})
	}
}

func TestShowFileMissing(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content")
	hash := repo.commit("add page")

	_, err := ShowFile(repo.dir, hash, "docs/other.md")
	require.Error(t, err)
}
