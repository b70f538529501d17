package git

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// DefaultDiffTimeout bounds git CLI fallback invocations.
const DefaultDiffTimeout = 30 * time.Second

// FileDiff returns the unified diff of file (repo-relative path). With a
// revision, the diff is between the revision's first parent and the revision
// itself. With an empty revision, the staged diff is returned, falling back
// to the unstaged diff when nothing is staged.
func FileDiff(ctx context.Context, repoPath, rev, file string) (string, error) {
	if rev == "" {
		return localDiff(ctx, repoPath, file)
	}
	return commitDiff(repoPath, rev, file)
}

// commitDiff diffs file between rev^ and rev using go-git tree diffing.
// A root commit is diffed against the empty tree.
func commitDiff(repoPath, rev, file string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	commit, err := resolveCommit(repo, rev)
	if err != nil {
		return "", err
	}

	tree, err := commit.Tree()
	if err != nil {
		return "", fmt.Errorf("loading tree for %s: %w", rev, err)
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return "", fmt.Errorf("loading parent of %s: %w", rev, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return "", fmt.Errorf("loading parent tree of %s: %w", rev, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", fmt.Errorf("diffing trees for %s: %w", rev, err)
	}

	// Restrict the patch to the requested file.
	var matched object.Changes
	for _, change := range changes {
		if change.From.Name == file || change.To.Name == file {
			matched = append(matched, change)
		}
	}
	if len(matched) == 0 {
		logDebug("[git] commitDiff: %s unchanged in %s", file, rev)
		return "", nil
	}

	patch, err := matched.Patch()
	if err != nil {
		return "", fmt.Errorf("rendering patch for %s at %s: %w", file, rev, err)
	}

	return patch.String(), nil
}

// localDiff returns the staged diff for file, or the unstaged diff when
// nothing is staged. go-git has no patch rendering for the index, so this
// is the one place the git CLI is required.
func localDiff(ctx context.Context, repoPath, file string) (string, error) {
	root, err := RepositoryRoot(repoPath)
	if err != nil {
		return "", err
	}

	staged, err := runGitDiff(ctx, root, "--cached", file)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(staged) != "" {
		return staged, nil
	}

	return runGitDiff(ctx, root, "", file)
}

// runGitDiff invokes `git diff [mode] -- file` in dir.
func runGitDiff(ctx context.Context, dir, mode, file string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDiffTimeout)
		defer cancel()
	}

	args := []string{"diff"}
	if mode != "" {
		args = append(args, mode)
	}
	args = append(args, "--", file)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// HeadShortHash returns the abbreviated hash of the repository HEAD.
func HeadShortHash(repoPath string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	return head.Hash().String()[:7], nil
}

// HeadChangedFiles lists the repo-relative paths changed by the HEAD commit,
// each prefixed with its status letter (A, M or D). This is what the watch
// command feeds to the pipeline after the docs checkout advances.
func HeadChangedFiles(repoPath string) ([]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("loading HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading HEAD tree: %w", err)
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("loading HEAD parent: %w", err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("loading HEAD parent tree: %w", err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diffing HEAD trees: %w", err)
	}

	var files []string
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, fmt.Errorf("reading change action: %w", err)
		}

		switch action {
		case merkletrie.Insert:
			files = append(files, "A:"+change.To.Name)
		case merkletrie.Delete:
			files = append(files, "D:"+change.From.Name)
		default:
			files = append(files, "M:"+change.To.Name)
		}
	}

	logDebug("[git] HeadChangedFiles: %d files", len(files))
	return files, nil
}

// joinRepoPath joins a repo-relative file path onto the repository root.
func joinRepoPath(root, file string) string {
	return filepath.Join(root, filepath.FromSlash(file))
}

// HasLocalChanges reports whether the working tree has uncommitted changes.
// The watch command uses this to decide whether a local (no commit hash) run
// makes sense.
func HasLocalChanges(repoPath string) (bool, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return false, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}

	return !status.IsClean(), nil
}

// LocalChangedFiles lists the repo-relative paths with uncommitted changes,
// each prefixed with its status letter like HeadChangedFiles. Untracked
// files count as added. Paths are sorted for stable pipeline input.
func LocalChangedFiles(repoPath string) ([]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var files []string
	for file, st := range status {
		code := st.Staging
		if code == git.Unmodified || code == git.Untracked {
			code = st.Worktree
		}
		switch code {
		case git.Untracked, git.Added:
			files = append(files, "A:"+file)
		case git.Deleted:
			files = append(files, "D:"+file)
		case git.Unmodified:
			// clean on both sides, nothing to report
		default:
			files = append(files, "M:"+file)
		}
	}
	sort.Strings(files)

	logDebug("[git] LocalChangedFiles: %d files", len(files))
	return files, nil
}
