package summarize

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docpulse/docpulse/internal/log"
)

// Generator produces summaries for a prompt. Implemented by Client;
// swappable in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]Summary, error)
}

// Source provides the content to summarize for a changed file.
// Implemented by git.Source.
type Source interface {
	// FileDiff returns the unified diff of file at rev (or the staged/
	// unstaged diff when rev is empty).
	FileDiff(ctx context.Context, rev, file string) (string, error)
	// ShowFile returns the content of file at rev (or the working tree copy).
	ShowFile(rev, file string) (string, error)
}

// Summarizer runs the per-file summarization pipeline.
type Summarizer struct {
	generator   Generator
	source      Source
	maxChars    int
	pause       time.Duration
	maxParallel int

	mu   sync.Mutex
	last time.Time
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithMaxChars sets the content truncation limit sent to the model.
func WithMaxChars(n int) Option {
	return func(s *Summarizer) {
		s.maxChars = n
	}
}

// WithPause sets the minimum spacing between model requests.
func WithPause(d time.Duration) Option {
	return func(s *Summarizer) {
		s.pause = d
	}
}

// WithMaxParallel sets the concurrent request limit.
func WithMaxParallel(n int) Option {
	return func(s *Summarizer) {
		if n >= 1 {
			s.maxParallel = n
		}
	}
}

// New creates a Summarizer reading content from source and summarizing
// through generator.
func New(generator Generator, source Source, opts ...Option) *Summarizer {
	s := &Summarizer{
		generator:   generator,
		source:      source,
		maxChars:    10000,
		pause:       time.Second,
		maxParallel: 1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ParseFileArgs parses --files arguments of the form "STATUS:path" (a bare
// path defaults to modified). Files without a .md extension are dropped;
// the pipeline tracks documentation pages only.
func ParseFileArgs(args []string) []ChangedFile {
	var files []ChangedFile
	for _, arg := range args {
		status, filePath := StatusModified, arg
		if before, after, found := strings.Cut(arg, ":"); found {
			status, filePath = ChangeStatus(before), after
		}

		if !strings.HasSuffix(filePath, ".md") {
			continue
		}

		switch status {
		case StatusAdded, StatusModified, StatusDeleted:
		default:
			status = StatusModified
		}

		files = append(files, ChangedFile{Status: status, Path: filePath})
	}
	return files
}

// Run summarizes every changed file at rev and returns results in input
// order. Deleted files pass through without a model call. A file whose
// summarization fails after retries gets the fallback summary; a file with
// no retrievable content is skipped (empty result). Run only fails on
// context cancellation.
func (s *Summarizer) Run(ctx context.Context, files []ChangedFile, rev string) ([]FileResult, error) {
	logger := log.WithComponent("summarize")
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, file := range files {
		g.Go(func() error {
			result, err := s.summarizeFile(ctx, file, rev)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn().Err(err).Str("file", file.Path).Msg("summarization failed, using fallback")
				result.Summaries = FallbackSummary(path.Base(file.Path))
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// summarizeFile handles a single changed file.
func (s *Summarizer) summarizeFile(ctx context.Context, file ChangedFile, rev string) (FileResult, error) {
	result := FileResult{File: file}

	// Deleted pages get a fixed changelog entry downstream; nothing to ask
	// the model.
	if file.Status == StatusDeleted {
		return result, nil
	}

	content, err := s.loadContent(ctx, file, rev)
	if err != nil {
		return result, err
	}
	if strings.TrimSpace(content) == "" {
		logger := log.WithComponent("summarize")
		logger.Warn().Str("file", file.Path).Msg("no content found, skipping")
		return result, nil
	}
	result.Content = content

	prompt := BuildPrompt(path.Base(file.Path), Truncate(content, s.maxChars), file.Status == StatusAdded)

	s.pacePause()
	summaries, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return result, fmt.Errorf("summarizing %s: %w", file.Path, err)
	}

	result.Summaries = summaries
	return result, nil
}

// loadContent fetches the diff for the file, falling back to full content
// for new files whose diff is unavailable.
func (s *Summarizer) loadContent(ctx context.Context, file ChangedFile, rev string) (string, error) {
	content, err := s.source.FileDiff(ctx, rev, file.Path)
	if err == nil && strings.TrimSpace(content) != "" {
		return content, nil
	}

	if file.Status == StatusAdded {
		shown, showErr := s.source.ShowFile(rev, file.Path)
		if showErr == nil {
			return shown, nil
		}
		if err == nil {
			err = showErr
		}
	}

	if err != nil {
		return "", fmt.Errorf("loading content for %s: %w", file.Path, err)
	}
	return content, nil
}

// pacePause enforces the minimum spacing between model requests.
func (s *Summarizer) pacePause() {
	if s.pause <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elapsed := time.Since(s.last); elapsed < s.pause {
		time.Sleep(s.pause - elapsed)
	}
	s.last = time.Now()
}
