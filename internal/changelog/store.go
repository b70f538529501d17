// Package changelog maintains the published documentation changelog:
// the changelog.json feed, per-change diff artifacts, entry shaping from
// summarization results, and terminal formatting.
package changelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Store reads and writes the changelog feed and its diff artifacts under
// the pages directory.
type Store struct {
	// PagesDir is the published output directory.
	PagesDir string
}

// NewStore creates a Store rooted at pagesDir.
func NewStore(pagesDir string) *Store {
	return &Store{PagesDir: pagesDir}
}

// Path returns the changelog.json location.
func (s *Store) Path() string {
	return filepath.Join(s.PagesDir, "changelog.json")
}

// DiffsDir returns the diff artifact directory.
func (s *Store) DiffsDir() string {
	return filepath.Join(s.PagesDir, "diffs")
}

// Load reads the feed. A missing or unreadable file loads as an empty feed;
// the pipeline always produces a full rewrite, so there is nothing to
// recover from a corrupt one.
func (s *Store) Load() Feed {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return Feed{}
	}

	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return Feed{}
	}
	return feed
}

// Save writes the feed atomically. The pages directory is created when
// missing. renameio handles temp file creation, fsync, atomic rename, and
// cleanup on error.
func (s *Store) Save(feed Feed) error {
	if err := os.MkdirAll(s.PagesDir, 0o755); err != nil {
		return fmt.Errorf("creating pages directory: %w", err)
	}

	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding changelog: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(s.Path())
	if err != nil {
		return fmt.Errorf("creating pending changelog file: %w", err)
	}
	defer pendingFile.Cleanup() //nolint:errcheck // cleanup after commit is a no-op

	if _, err := pendingFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing changelog data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replacing changelog: %w", err)
	}

	return nil
}

// Append prepends a block to the feed and saves it. Blocks without entries
// leave the feed untouched.
func (s *Store) Append(block Block) (Feed, error) {
	feed := s.Load()
	if len(block.Entries) == 0 {
		return feed, nil
	}

	feed = feed.Prepend(block)
	if err := s.Save(feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// WriteDiff stores a diff artifact for an updated page and returns its
// pages-relative path for the entry's diff_file field. rev is the
// abbreviated commit hash, or empty for local runs.
func (s *Store) WriteDiff(rev, basename, content string) (string, error) {
	if err := os.MkdirAll(s.DiffsDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating diffs directory: %w", err)
	}

	if rev == "" {
		rev = "local"
	}
	name := fmt.Sprintf("%s_%s.txt", rev, basename)

	path := filepath.Join(s.DiffsDir(), name)
	if err := renameio.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing diff artifact %s: %w", name, err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(s.PagesDir), "diffs", name)), nil
}
