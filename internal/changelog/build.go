package changelog

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/docpulse/docpulse/internal/summarize"
)

// deletedSummary is the fixed copy for removed pages. Published summaries
// are Korean; this mirrors the feed's house copy.
const deletedSummary = "문서가 삭제되었습니다."

var (
	// Letters and digits in any script survive, so Korean headers keep a
	// usable fragment.
	nonWordRe   = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRe = regexp.MustCompile(`[\s_-]+`)
)

// Slugify turns a section header into a URL fragment: lowercase, punctuation
// stripped, whitespace/underscore/hyphen runs collapsed to single hyphens.
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nonWordRe.ReplaceAllString(text, "")
	text = separatorRe.ReplaceAllString(text, "-")
	return text
}

// EntryBuilder shapes summarization results into published entries.
type EntryBuilder struct {
	// BaseURL is the public docs site entries link to.
	BaseURL string
}

// NewEntryBuilder creates an EntryBuilder for the given docs site.
func NewEntryBuilder(baseURL string) *EntryBuilder {
	return &EntryBuilder{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Build converts one file's summarization result into changelog entries.
// Deleted pages produce a single fixed entry; files whose summaries came
// back empty (trivial changes, or skipped files) produce nothing.
func (b *EntryBuilder) Build(result summarize.FileResult) []Entry {
	basename := strings.TrimSuffix(path.Base(result.File.Path), ".md")

	if result.File.Status == summarize.StatusDeleted {
		return []Entry{{
			Title:    titleCase(basename),
			Summary:  deletedSummary,
			TagText:  TagDelete,
			TagClass: ClassDelete,
		}}
	}

	tagText, tagClass := TagUpdate, ClassUpdate
	if result.File.Status == summarize.StatusAdded {
		tagText, tagClass = TagNew, ClassNew
	}

	var entries []Entry
	for _, item := range result.Summaries {
		entries = append(entries, b.buildEntry(basename, item, tagText, tagClass))
	}
	return entries
}

// buildEntry shapes a single summary item. An "Overview" header (or one
// matching the page name) collapses to the bare page link; any other header
// gets a slugified fragment and a "Page > Header" display title.
func (b *EntryBuilder) buildEntry(basename string, item summarize.Summary, tagText, tagClass string) Entry {
	header := item.Header
	if header == "" {
		header = "Overview"
	}

	url := fmt.Sprintf("%s/%s", b.BaseURL, basename)
	displayTitle := titleCase(basename)

	lowered := strings.ToLower(header)
	if lowered != "overview" && lowered != strings.ToLower(basename) && lowered != strings.ToLower(basename)+".md" {
		url = fmt.Sprintf("%s#%s", url, Slugify(header))
		displayTitle = fmt.Sprintf("%s > %s", displayTitle, header)
	}

	return Entry{
		Title:    fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, url, displayTitle),
		Summary:  item.Summary,
		TagText:  tagText,
		TagClass: tagClass,
	}
}

// titleCase renders a page basename for display: hyphens become spaces and
// each word is capitalized ("quickstart-guide" -> "Quickstart Guide").
func titleCase(basename string) string {
	words := strings.Split(strings.ReplaceAll(basename, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// PlainTitle strips the anchor markup from an entry title, returning the
// display text. Used by release bodies and terminal output.
func PlainTitle(title string) string {
	if !strings.Contains(title, "<a") {
		return title
	}
	start := strings.Index(title, ">")
	end := strings.LastIndex(title, "<")
	if start == -1 || end == -1 || start+1 > end {
		return title
	}
	return title[start+1 : end]
}
