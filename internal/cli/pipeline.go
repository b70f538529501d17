package cli

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/config"
	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/git"
	"github.com/docpulse/docpulse/internal/history"
	"github.com/docpulse/docpulse/internal/release"
	"github.com/docpulse/docpulse/internal/summarize"
)

// runResult reports what one pipeline run produced.
type runResult struct {
	// Block is the changelog block appended to the feed. Empty Entries
	// means the run was a no-op (trivial or no changes).
	Block changelog.Block
	// Files is the number of documentation pages processed.
	Files int
}

// pipelineOptions tweaks a single run.
type pipelineOptions struct {
	// SkipReleaseBody leaves release_body.md untouched.
	SkipReleaseBody bool
}

// runPipeline executes the summarize pipeline end to end: load diffs,
// summarize, shape entries, persist the feed and diff artifacts, render the
// release body, and record history.
func runPipeline(ctx context.Context, cfg *config.Configuration, fileArgs []string, commitHash string, out io.Writer, opts pipelineOptions) (*runResult, error) {
	start := time.Now()

	files := summarize.ParseFileArgs(fileArgs)
	if len(files) == 0 {
		fmt.Fprintln(out, "No documentation pages to process.")
		return &runResult{}, nil
	}

	if !git.IsRepository(cfg.DocsDir) {
		return nil, errors.NotAGitRepository(cfg.DocsDir)
	}
	if cfg.GeminiAPIKey == "" {
		return nil, errors.MissingAPIKey()
	}

	source := git.NewSource(cfg.DocsDir)
	client := summarize.NewClient(cfg.GeminiAPIKey, cfg.Model,
		summarize.WithMaxRetries(cfg.MaxRetries))
	summarizer := summarize.New(client, source,
		summarize.WithMaxChars(cfg.MaxDiffChars),
		summarize.WithPause(cfg.RequestPause),
		summarize.WithMaxParallel(cfg.MaxParallel))

	results, err := summarizer.Run(ctx, files, commitHash)
	if err != nil {
		return nil, err
	}

	store := changelog.NewStore(cfg.PagesDir)
	entries, err := buildEntries(results, cfg.BaseURL, commitHash, store)
	if err != nil {
		return nil, err
	}

	result := &runResult{Files: len(files)}
	histWriter := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No meaningful changes found.")
		histWriter.LogRun(commitHash, len(files), 0, time.Since(start), "empty")
		return result, nil
	}

	block := changelog.Block{
		Date:       blockDate(source, commitHash),
		CommitHash: commitHash,
		Entries:    entries,
	}
	if _, err := store.Append(block); err != nil {
		return nil, fmt.Errorf("updating changelog: %w", err)
	}
	result.Block = block

	if !opts.SkipReleaseBody {
		if err := release.WriteBody(cfg.ReleaseBody, entries); err != nil {
			return nil, err
		}
	}

	histWriter.LogRun(commitHash, len(files), len(entries), time.Since(start), "ok")

	fmt.Fprintf(out, "Recorded %d entries from %d pages in %s\n",
		len(entries), len(files), cfg.ChangelogPath())
	return result, nil
}

// buildEntries shapes all summarization results into changelog entries,
// writing diff artifacts for updated pages.
func buildEntries(results []summarize.FileResult, baseURL, commitHash string, store *changelog.Store) ([]changelog.Entry, error) {
	builder := changelog.NewEntryBuilder(baseURL)

	var entries []changelog.Entry
	for _, result := range results {
		fileEntries := builder.Build(result)
		if len(fileEntries) == 0 {
			continue
		}

		// Updates keep their diff next to the feed so the blog can link it.
		if result.File.Status == summarize.StatusModified && strings.TrimSpace(result.Content) != "" {
			basename := strings.TrimSuffix(path.Base(result.File.Path), ".md")
			diffFile, err := store.WriteDiff(commitHash, basename, result.Content)
			if err != nil {
				return nil, err
			}
			for i := range fileEntries {
				fileEntries[i].DiffFile = diffFile
			}
		}

		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// blockDate resolves the feed date for a run: the commit's timestamp when a
// hash is given, the current time otherwise.
func blockDate(source *git.Source, commitHash string) string {
	if commitHash != "" {
		if when, err := source.CommitDate(commitHash); err == nil {
			return when.Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
