package errors

import "fmt"

// Common error messages for the docpulse CLI.
// These templates ensure consistent, actionable error messages.

// MissingFilesArgument creates an error for a summarize run without --files.
func MissingFilesArgument() *CLIError {
	return NewArgumentErrorWithUsage(
		"at least one changed file is required",
		"docpulse summarize --files M:docs/hooks.md [--commit-hash abc1234]",
		"Pass changed files as STATUS:path pairs (A=added, M=modified, D=deleted)",
		"Example: docpulse summarize --files A:docs/new-page.md M:docs/cli.md",
	)
}

// MissingAPIKey creates an error for a missing Gemini API key.
func MissingAPIKey() *CLIError {
	return NewConfigError(
		"Gemini API key is not configured",
		"Set the GEMINI_API_KEY environment variable",
		"Or add 'gemini_api_key' to .docpulse/config.yml",
	)
}

// MissingGitHubToken creates an error for release publishing without credentials.
func MissingGitHubToken() *CLIError {
	return NewConfigError(
		"GitHub token is not configured",
		"Set the GITHUB_TOKEN environment variable",
		"Or add 'github.token' to .docpulse/config.yml",
	)
}

// MissingGitHubRepo creates an error for release publishing without a target repo.
func MissingGitHubRepo() *CLIError {
	return NewConfigError(
		"GitHub repository is not configured",
		"Add 'github.owner' and 'github.repo' to .docpulse/config.yml",
	)
}

// NotAGitRepository creates an error for docs directories outside a git checkout.
func NotAGitRepository(docsDir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s is not inside a git repository", docsDir),
		"docpulse reads documentation changes from git history",
		"Clone the documentation repository and point docs_dir at it",
	)
}

// EmptyChangelog creates an error for commands that need existing changelog data.
func EmptyChangelog(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no changelog data at %s", path),
		"Run 'docpulse summarize' at least once to produce changelog.json",
	)
}
