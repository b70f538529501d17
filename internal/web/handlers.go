package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/go-chi/chi/v5"

	"github.com/docpulse/docpulse/internal/changelog"
)

// handleIndex renders the changelog blog.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	feed := s.store.Load()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderIndex(w, feed); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleFeed serves the raw JSON feed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed := s.store.Load()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(feed)
}

// handleDiff serves a diff artifact, syntax-highlighted as HTML by default
// or as plain text with ?raw=1. Artifact names are flat files; anything
// with a path separator is rejected.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.store.DiffsDir(), name))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if r.URL.Query().Get("raw") == "1" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := quick.Highlight(w, string(data), "diff", "html", "friendly"); err != nil {
		// Highlighting is best-effort; fall back to plain text.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(data)
	}
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// diffHref rewrites a stored pages-relative diff path to a server route.
func diffHref(diffFile string) string {
	if diffFile == "" {
		return ""
	}
	return "/diffs/" + filepath.Base(diffFile)
}

// feedView prepares a feed for template rendering.
func feedView(feed changelog.Feed) []blockView {
	blocks := make([]blockView, 0, len(feed))
	for _, block := range feed {
		bv := blockView{
			Date:       changelog.FormatDateKST(block.Date),
			CommitHash: block.CommitHash,
		}
		for _, entry := range block.Entries {
			bv.Entries = append(bv.Entries, entryView{
				Title:    entry.Title,
				Summary:  entry.Summary,
				TagText:  entry.TagText,
				TagClass: entry.TagClass,
				DiffHref: diffHref(entry.DiffFile),
			})
		}
		blocks = append(blocks, bv)
	}
	return blocks
}
