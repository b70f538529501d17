package git

import (
	"context"
	"time"
)

// Source is a repository-bound view of the package functions. It satisfies
// the summarize.Source interface so the pipeline never carries raw repo
// paths around.
type Source struct {
	// RepoPath is any path inside the documentation checkout.
	RepoPath string
}

// NewSource creates a Source rooted at repoPath.
func NewSource(repoPath string) *Source {
	return &Source{RepoPath: repoPath}
}

// FileDiff returns the unified diff of file at rev.
func (s *Source) FileDiff(ctx context.Context, rev, file string) (string, error) {
	return FileDiff(ctx, s.RepoPath, rev, file)
}

// ShowFile returns the content of file at rev.
func (s *Source) ShowFile(rev, file string) (string, error) {
	return ShowFile(s.RepoPath, rev, file)
}

// CommitDate returns the committer timestamp of rev.
func (s *Source) CommitDate(rev string) (time.Time, error) {
	return CommitDate(s.RepoPath, rev)
}
