package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateKST(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"utc shifts nine hours": {
			input: "2026-08-29T03:00:00Z",
			want:  "2026-08-29 12:00",
		},
		"offset date converts": {
			input: "2026-08-28T20:30:00-05:00",
			want:  "2026-08-29 10:30",
		},
		"unparseable passes through": {
			input: "yesterday",
			want:  "yesterday",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateKST(tt.input))
		})
	}
}

func TestFormatTerminalPlain(t *testing.T) {
	feed := Feed{
		{
			Date:       "2026-08-29T03:00:00Z",
			CommitHash: "abc1234",
			Entries: []Entry{
				{Title: `<a href="https://example.com/hooks" target="_blank">Hooks</a>`, Summary: "훅 문서가 업데이트되었습니다.", TagText: TagUpdate, TagClass: ClassUpdate},
				{Title: "Legacy", Summary: "문서가 삭제되었습니다.", TagText: TagDelete, TagClass: ClassDelete},
			},
		},
		{
			Date: "2026-08-28T00:00:00Z",
			Entries: []Entry{
				{Title: "Older", Summary: "이전 변경.", TagText: TagNew, TagClass: ClassNew},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(feed, &buf, FormatOptions{Plain: true}))

	out := buf.String()
	assert.Contains(t, out, "2026-08-29 12:00 (abc1234)")
	assert.Contains(t, out, "[UPDATE] Hooks")
	assert.Contains(t, out, "훅 문서가 업데이트되었습니다.")
	assert.Contains(t, out, "[DELETE] Legacy")
	assert.Contains(t, out, "[NEW] Older")
	// Anchor markup never reaches the terminal.
	assert.NotContains(t, out, "<a href")
}

func TestFeedLastN(t *testing.T) {
	feed := Feed{
		{CommitHash: "c3"},
		{CommitHash: "c2"},
		{CommitHash: "c1"},
	}

	tests := map[string]struct {
		n       int
		wantLen int
	}{
		"subset":        {n: 2, wantLen: 2},
		"zero is all":   {n: 0, wantLen: 3},
		"beyond length": {n: 10, wantLen: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := feed.LastN(tt.n)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, "c3", got[0].CommitHash)
		})
	}
}

func TestFeedEntryCount(t *testing.T) {
	feed := Feed{
		{Entries: []Entry{{Title: "A"}, {Title: "B"}}},
		{Entries: []Entry{{Title: "C"}}},
	}
	assert.Equal(t, 3, feed.EntryCount())
	assert.Equal(t, 0, Feed{}.EntryCount())
}
