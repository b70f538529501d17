package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/summarize"
)

func TestBuildEntries(t *testing.T) {
	store := changelog.NewStore(filepath.Join(t.TempDir(), "pages"))

	results := []summarize.FileResult{
		{
			File:    summarize.ChangedFile{Path: "docs/hooks.md", Status: summarize.StatusModified},
			Content: "-old\n+new\n",
			Summaries: []summarize.Summary{
				{Header: "Overview", Summary: "훅 문서가 업데이트되었습니다."},
			},
		},
		{
			// Trivial change: the model returned nothing.
			File:    summarize.ChangedFile{Path: "docs/cli-reference.md", Status: summarize.StatusModified},
			Content: "-a\n+a \n",
		},
		{
			File: summarize.ChangedFile{Path: "docs/legacy.md", Status: summarize.StatusDeleted},
		},
	}

	entries, err := buildEntries(results, "https://code.claude.com/docs/en", "abc1234", store)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The update keeps its diff artifact; the deletion has none.
	assert.Equal(t, "pages/diffs/abc1234_hooks.txt", entries[0].DiffFile)
	assert.Empty(t, entries[1].DiffFile)

	data, err := os.ReadFile(filepath.Join(store.DiffsDir(), "abc1234_hooks.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "+new")
}

func TestBuildEntriesDiffForFallbackSummary(t *testing.T) {
	store := changelog.NewStore(filepath.Join(t.TempDir(), "pages"))

	// A fallback-summarized update still carries its loaded diff.
	results := []summarize.FileResult{
		{
			File:      summarize.ChangedFile{Path: "docs/hooks.md", Status: summarize.StatusModified},
			Content:   "-a\n+b\n",
			Summaries: summarize.FallbackSummary("hooks.md"),
		},
	}

	entries, err := buildEntries(results, "https://code.claude.com/docs/en", "", store)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pages/diffs/local_hooks.txt", entries[0].DiffFile)
}

func TestBuildEntriesNoDiffForAdds(t *testing.T) {
	store := changelog.NewStore(filepath.Join(t.TempDir(), "pages"))

	results := []summarize.FileResult{
		{
			File:    summarize.ChangedFile{Path: "docs/new-page.md", Status: summarize.StatusAdded},
			Content: "# New Page\nfull content",
			Summaries: []summarize.Summary{
				{Header: "Overview", Summary: "새 문서가 추가되었습니다."},
			},
		},
	}

	entries, err := buildEntries(results, "https://code.claude.com/docs/en", "abc1234", store)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Empty(t, entries[0].DiffFile)
	_, statErr := os.Stat(store.DiffsDir())
	assert.True(t, os.IsNotExist(statErr), "adds must not produce diff artifacts")
}

func TestBuildEntriesAllTrivial(t *testing.T) {
	store := changelog.NewStore(filepath.Join(t.TempDir(), "pages"))

	results := []summarize.FileResult{
		{File: summarize.ChangedFile{Path: "docs/a.md", Status: summarize.StatusModified}, Content: "-x\n+x\n"},
		{File: summarize.ChangedFile{Path: "docs/b.md", Status: summarize.StatusModified}},
	}

	entries, err := buildEntries(results, "https://code.claude.com/docs/en", "", store)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
