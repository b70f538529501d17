package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDiffCommit(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "old line\n")
	repo.commit("v1")

	repo.writeFile("docs/page.md", "new line\n")
	hash := repo.commit("v2")

	diff, err := FileDiff(context.Background(), repo.dir, hash, "docs/page.md")
	require.NoError(t, err)
	assert.Contains(t, diff, "-old line")
	assert.Contains(t, diff, "+new line")
}

func TestFileDiffCommitOtherFilesExcluded(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "page v1\n")
	repo.writeFile("docs/other.md", "other v1\n")
	repo.commit("v1")

	repo.writeFile("docs/page.md", "page v2\n")
	repo.writeFile("docs/other.md", "other v2\n")
	hash := repo.commit("v2")

	diff, err := FileDiff(context.Background(), repo.dir, hash, "docs/page.md")
	require.NoError(t, err)
	assert.Contains(t, diff, "page v2")
	assert.NotContains(t, diff, "other v2")
}

func TestFileDiffRootCommit(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "initial content\n")
	hash := repo.commit("initial")

	// A root commit diffs against the empty tree: the whole file is an add.
	diff, err := FileDiff(context.Background(), repo.dir, hash, "docs/page.md")
	require.NoError(t, err)
	assert.Contains(t, diff, "+initial content")
}

func TestFileDiffFileUnchangedInCommit(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "stable\n")
	repo.commit("v1")

	repo.writeFile("docs/other.md", "unrelated\n")
	hash := repo.commit("v2")

	diff, err := FileDiff(context.Background(), repo.dir, hash, "docs/page.md")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestFileDiffLocal(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "committed\n")
	repo.commit("v1")

	repo.writeFile("docs/page.md", "uncommitted edit\n")

	diff, err := FileDiff(context.Background(), repo.dir, "", "docs/page.md")
	require.NoError(t, err)
	assert.Contains(t, diff, "+uncommitted edit")
}

func TestHeadShortHash(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content\n")
	hash := repo.commit("v1")

	short, err := HeadShortHash(repo.dir)
	require.NoError(t, err)
	assert.Equal(t, hash[:7], short)
}

func TestHeadChangedFiles(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/kept.md", "kept v1\n")
	repo.writeFile("docs/gone.md", "doomed\n")
	repo.commit("v1")

	repo.writeFile("docs/kept.md", "kept v2\n")
	repo.writeFile("docs/new.md", "fresh\n")
	repo.remove("docs/gone.md")
	repo.commit("v2")

	files, err := HeadChangedFiles(repo.dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"M:docs/kept.md",
		"A:docs/new.md",
		"D:docs/gone.md",
	}, files)
}

func TestHeadChangedFilesRootCommit(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content\n")
	repo.commit("initial")

	files, err := HeadChangedFiles(repo.dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A:docs/page.md"}, files)
}

func TestHasLocalChanges(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content\n")
	repo.commit("v1")

	clean, err := HasLocalChanges(repo.dir)
	require.NoError(t, err)
	assert.False(t, clean)

	repo.writeFile("docs/page.md", "edited\n")

	dirty, err := HasLocalChanges(repo.dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestLocalChangedFiles(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "content\n")
	repo.writeFile("docs/old.md", "obsolete\n")
	repo.commit("v1")

	files, err := LocalChangedFiles(repo.dir)
	require.NoError(t, err)
	assert.Empty(t, files, "clean worktree has no changed files")

	repo.writeFile("docs/page.md", "edited\n")
	repo.writeFile("docs/new.md", "fresh\n")
	repo.remove("docs/old.md")

	files, err = LocalChangedFiles(repo.dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A:docs/new.md", "D:docs/old.md", "M:docs/page.md"}, files)
}

func TestSourceAdapter(t *testing.T) {
	repo := newTestRepo(t)
	repo.writeFile("docs/page.md", "old\n")
	repo.commit("v1")
	repo.writeFile("docs/page.md", "new\n")
	hash := repo.commit("v2")

	src := NewSource(repo.dir)

	diff, err := src.FileDiff(context.Background(), hash, "docs/page.md")
	require.NoError(t, err)
	assert.Contains(t, diff, "+new")

	content, err := src.ShowFile(hash, "docs/page.md")
	require.NoError(t, err)
	assert.Equal(t, "new\n", content)

	date, err := src.CommitDate(hash)
	require.NoError(t, err)
	assert.False(t, date.IsZero())
}
