package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoryString(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
	}{
		"argument":     {err: NewArgumentError("bad arg", "fix it"), wantCategory: Argument},
		"config":       {err: NewConfigError("bad config"), wantCategory: Configuration},
		"prerequisite": {err: NewPrerequisiteError("missing tool"), wantCategory: Prerequisite},
		"runtime":      {err: NewRuntimeError("pipeline failed"), wantCategory: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestNewArgumentErrorWithUsage(t *testing.T) {
	err := NewArgumentErrorWithUsage("missing files", "docpulse summarize --files M:docs/a.md", "pass --files")
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, "docpulse summarize --files M:docs/a.md", err.Usage)
	assert.Equal(t, []string{"pass --files"}, err.Remediation)
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), Runtime, "free some space")
	require.NotNil(t, wrapped)
	assert.Equal(t, "disk full", wrapped.Message)
	assert.Equal(t, Runtime, wrapped.Category)

	assert.Nil(t, Wrap(nil, Runtime))
}

func TestWrapWithMessage(t *testing.T) {
	wrapped := WrapWithMessage(fmt.Errorf("connection refused"), Runtime, "publishing release")
	require.NotNil(t, wrapped)
	assert.Equal(t, "publishing release: connection refused", wrapped.Message)

	assert.Nil(t, WrapWithMessage(nil, Runtime, "whatever"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewConfigError("bad config")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(fmt.Errorf("plain error")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentErrorWithUsage(
		"at least one changed file is required",
		"docpulse summarize --files M:docs/hooks.md",
		"Pass changed files as STATUS:path pairs",
	)

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Argument Error]: at least one changed file is required")
	assert.Contains(t, out, "Usage: docpulse summarize --files M:docs/hooks.md")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• Pass changed files as STATUS:path pairs")
}

func TestFormatErrorNil(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestDomainMessages(t *testing.T) {
	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantContains string
	}{
		"missing files": {
			err:          MissingFilesArgument(),
			wantCategory: Argument,
			wantContains: "changed file",
		},
		"missing api key": {
			err:          MissingAPIKey(),
			wantCategory: Configuration,
			wantContains: "Gemini API key",
		},
		"missing github token": {
			err:          MissingGitHubToken(),
			wantCategory: Configuration,
			wantContains: "GitHub token",
		},
		"missing github repo": {
			err:          MissingGitHubRepo(),
			wantCategory: Configuration,
			wantContains: "GitHub repository",
		},
		"not a git repository": {
			err:          NotAGitRepository("/tmp/docs"),
			wantCategory: Prerequisite,
			wantContains: "/tmp/docs",
		},
		"empty changelog": {
			err:          EmptyChangelog("./pages/changelog.json"),
			wantCategory: Prerequisite,
			wantContains: "changelog.json",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.wantContains)
			assert.NotEmpty(t, tt.err.Remediation, "every canned error carries remediation")
		})
	}
}
