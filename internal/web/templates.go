package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/docpulse/docpulse/internal/changelog"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	// Entry titles carry sanitized anchor markup produced by the pipeline.
	"anchorHTML": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templateFS, "templates/index.html"))

// blockView is the template model for one run's entries.
type blockView struct {
	Date       string
	CommitHash string
	Entries    []entryView
}

// entryView is the template model for one changelog entry.
type entryView struct {
	Title    string
	Summary  string
	TagText  string
	TagClass string
	DiffHref string
}

// renderIndex renders the blog page for the feed.
func renderIndex(w io.Writer, feed changelog.Feed) error {
	return indexTmpl.Execute(w, struct {
		Blocks []blockView
	}{Blocks: feedView(feed)})
}
