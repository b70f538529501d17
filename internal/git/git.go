// Package git provides git repository access for docpulse: per-file diffs
// between commits, file content at a commit, and commit metadata. It uses the
// go-git library for core operations and falls back to the git CLI only for
// staged/unstaged diffs, which go-git does not express as patches.
package git

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled to traverse up the
// directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// RepositoryRoot returns the absolute path to the root of the repository
// containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// resolveCommit resolves a revision (full or abbreviated hash, ref name)
// to a commit object.
func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	return commit, nil
}

// CommitDate returns the committer timestamp of the given revision.
func CommitDate(repoPath, rev string) (time.Time, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return time.Time{}, err
	}

	commit, err := resolveCommit(repo, rev)
	if err != nil {
		return time.Time{}, err
	}

	logDebug("[git] CommitDate(%s): %s", rev, commit.Committer.When)
	return commit.Committer.When, nil
}

// ShowFile returns the content of file (repo-relative path) at the given
// revision. With an empty revision, the working tree copy is read instead.
func ShowFile(repoPath, rev, file string) (string, error) {
	if rev == "" {
		return readWorktreeFile(repoPath, file)
	}

	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	commit, err := resolveCommit(repo, rev)
	if err != nil {
		return "", err
	}

	f, err := commit.File(file)
	if err != nil {
		return "", fmt.Errorf("file %s at %s: %w", file, rev, err)
	}

	content, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("reading %s at %s: %w", file, rev, err)
	}
	return content, nil
}

// readWorktreeFile reads a repo-relative file from the working tree.
func readWorktreeFile(repoPath, file string) (string, error) {
	root, err := RepositoryRoot(repoPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(joinRepoPath(root, file))
	if err != nil {
		return "", fmt.Errorf("reading worktree file %s: %w", file, err)
	}
	return string(data), nil
}
