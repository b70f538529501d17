package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTerminalWidth(t *testing.T) {
	// In tests stdout is not a terminal; the default applies.
	assert.Equal(t, 80, GetTerminalWidth())
}

func TestPrintRule(t *testing.T) {
	var buf bytes.Buffer
	PrintRule(&buf, "docpulse changelog")

	out := buf.String()
	assert.Contains(t, out, "docpulse changelog")
	assert.Contains(t, out, "─")
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "Wrote .docpulse/config.yml")

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Wrote .docpulse/config.yml")
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	PrintWarning(&buf, "history not recorded")

	out := buf.String()
	assert.Contains(t, out, "!")
	assert.Contains(t, out, "history not recorded")
}
