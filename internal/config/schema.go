package config

import "time"

// Configuration represents the docpulse CLI tool configuration.
type Configuration struct {
	// DocsDir is the documentation checkout the pipeline reads diffs from.
	// Must be inside a git repository.
	DocsDir string `koanf:"docs_dir" validate:"required"`

	// PagesDir is where the published artifacts live: changelog.json and
	// the diffs/ directory.
	PagesDir string `koanf:"pages_dir" validate:"required"`

	// BaseURL is the public documentation site entries link to.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Model is the Gemini model used for change summarization.
	Model string `koanf:"model" validate:"required"`

	// GeminiAPIKey authenticates summarization requests.
	// The plain GEMINI_API_KEY env var is honored as an alias.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// MaxRetries bounds summarization attempts per file on rate limiting.
	MaxRetries int `koanf:"max_retries" validate:"min=1,max=10"`

	// MaxDiffChars truncates diff content sent to the model.
	MaxDiffChars int `koanf:"max_diff_chars" validate:"min=1000"`

	// RequestPause is the pause between summarization requests.
	RequestPause time.Duration `koanf:"request_pause"`

	// MaxParallel bounds concurrent summarization requests.
	MaxParallel int `koanf:"max_parallel" validate:"min=1,max=8"`

	// Interval is the watch command's refresh cadence.
	Interval time.Duration `koanf:"interval" validate:"min=0"`

	// StateDir holds run history and other internal state.
	StateDir string `koanf:"state_dir" validate:"required"`

	// MaxHistoryEntries caps the run history; oldest entries are pruned.
	MaxHistoryEntries int `koanf:"max_history_entries" validate:"min=0"`

	// ReleaseBody is the path the release body markdown is written to.
	ReleaseBody string `koanf:"release_body"`

	// Serve configures the changelog site server.
	Serve ServeConfig `koanf:"serve"`

	// GitHub configures release publishing.
	GitHub GitHubConfig `koanf:"github"`
}

// ServeConfig holds settings for the changelog site server.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// RateLimitRPS is the per-IP request limit per second. 0 disables limiting.
	RateLimitRPS int `koanf:"rate_limit_rps" validate:"min=0"`
}

// GitHubConfig holds the target repository for release publishing.
// The plain GITHUB_TOKEN env var is honored as an alias for Token.
type GitHubConfig struct {
	Owner string `koanf:"owner"`
	Repo  string `koanf:"repo"`
	Token string `koanf:"token"`
}

// ChangelogPath returns the path of the changelog JSON file under PagesDir.
func (c *Configuration) ChangelogPath() string {
	return joinPage(c.PagesDir, "changelog.json")
}
