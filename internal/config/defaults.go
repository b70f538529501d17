package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# docpulse Configuration

# Pipeline inputs
docs_dir: ./docs                      # Documentation checkout (must be a git repo)
pages_dir: ./pages                    # Output: changelog.json and diffs/
base_url: https://code.claude.com/docs/en  # Public docs site entries link to

# Summarization
model: gemini-2.0-flash-lite          # Gemini model for change summaries
# gemini_api_key: ""                  # Prefer the GEMINI_API_KEY env var
max_retries: 3                        # Attempts per file on rate limiting
max_diff_chars: 10000                 # Diff content truncation limit
request_pause: 1s                     # Pause between summarization requests
max_parallel: 1                       # Concurrent summarization requests (1-8)

# Watch cadence
interval: 3h                          # Refresh cadence for 'docpulse watch'

# State
state_dir: ~/.docpulse/state          # Run history and internal state
max_history_entries: 500              # Max run history entries to retain
release_body: release_body.md         # Release body output path

# Site server
serve:
  addr: ":8080"                       # Listen address
  rate_limit_rps: 10                  # Per-IP requests/second (0 = unlimited)

# GitHub Releases publishing
github:
  owner: ""                           # Repository owner
  repo: ""                            # Repository name
  # token: ""                         # Prefer the GITHUB_TOKEN env var
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"docs_dir":  "./docs",
		"pages_dir": "./pages",
		"base_url":  "https://code.claude.com/docs/en",
		"model":     "gemini-2.0-flash-lite",
		// max_retries / backoff mirror the upstream pipeline behavior:
		// three attempts per file, exponential backoff starting at 2s.
		"max_retries":    3,
		"max_diff_chars": 10000,
		"request_pause":  time.Second.String(),
		"max_parallel":   1,
		// interval: the changelog refresh cadence. The published feed updates
		// every 3 hours.
		"interval":            (3 * time.Hour).String(),
		"state_dir":           "~/.docpulse/state",
		"max_history_entries": 500,
		"release_body":        "release_body.md",
		"serve": map[string]interface{}{
			"addr":           ":8080",
			"rate_limit_rps": 10,
		},
		"github": map[string]interface{}{
			"owner": "",
			"repo":  "",
			"token": "",
		},
	}
}
