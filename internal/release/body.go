// Package release renders the release body for a changelog block and
// publishes it as a GitHub Release, the feed consumers subscribe to for
// update notifications.
package release

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/docpulse/docpulse/internal/changelog"
)

// RenderBody renders the markdown release body for a block's entries:
// a "Documentation Updates" heading, then one tagged section per entry.
func RenderBody(entries []changelog.Entry) string {
	var sb strings.Builder
	sb.WriteString("## Documentation Updates\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&sb, "### [%s] %s\n", entry.TagText, changelog.PlainTitle(entry.Title))
		fmt.Fprintf(&sb, "%s\n\n", entry.Summary)
	}

	return sb.String()
}

// WriteBody writes the release body to path atomically.
func WriteBody(path string, entries []changelog.Entry) error {
	body := RenderBody(entries)
	if err := renameio.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing release body %s: %w", path, err)
	}
	return nil
}

// ReadBody reads a previously written release body.
func ReadBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading release body %s: %w", path, err)
	}
	return string(data), nil
}
