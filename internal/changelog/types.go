package changelog

import "time"

// Tag values classify changelog entries. TagText is the uppercase label
// shown in terminals and release bodies; TagClass is the CSS class the blog
// uses.
const (
	TagNew    = "NEW"
	TagUpdate = "UPDATE"
	TagDelete = "DELETE"

	ClassNew    = "new"
	ClassUpdate = "update"
	ClassDelete = "delete"
)

// Entry is a single published changelog item for one documentation page.
// Title carries anchor HTML linking to the page (except for deletions,
// which have no link target).
type Entry struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	TagText  string `json:"tag_text"`
	TagClass string `json:"tag_class"`
	// DiffFile is the pages-relative path of the diff artifact, present for
	// updates only.
	DiffFile string `json:"diff_file,omitempty"`
}

// Block groups the entries produced by one pipeline run.
// Date is RFC 3339; CommitHash is empty for local (uncommitted) runs.
type Block struct {
	Date       string  `json:"date"`
	CommitHash string  `json:"commit_hash"`
	Entries    []Entry `json:"entries"`
}

// Feed is the full changelog: blocks ordered newest first. The on-disk
// changelog.json is the bare JSON array of blocks.
type Feed []Block

// EntryCount returns the total number of entries across all blocks.
func (f Feed) EntryCount() int {
	total := 0
	for _, block := range f {
		total += len(block.Entries)
	}
	return total
}

// LastN returns up to n most recent blocks, newest first, with their
// entries intact. Blocks are the display unit: a run's entries stay
// together under their shared date.
func (f Feed) LastN(n int) Feed {
	if n <= 0 || n >= len(f) {
		return f
	}
	return f[:n]
}

// Prepend returns the feed with block added as the newest element.
func (f Feed) Prepend(block Block) Feed {
	return append(Feed{block}, f...)
}

// ParseDate parses a block date, accepting RFC 3339 with or without offset.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(time.RFC3339, date)
}
