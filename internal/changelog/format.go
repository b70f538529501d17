package changelog

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// KST is the display timezone of the published feed (UTC+9).
var KST = time.FixedZone("KST", 9*60*60)

// FormatOptions controls terminal rendering.
type FormatOptions struct {
	// Plain disables colors and icons.
	Plain bool
}

// FormatDateKST renders a block date in the feed's display timezone
// (YYYY-MM-DD HH:MM). Unparseable dates pass through unchanged.
func FormatDateKST(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.In(KST).Format("2006-01-02 15:04")
}

var (
	tagNewColor    = color.New(color.FgGreen, color.Bold).SprintFunc()
	tagUpdateColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	tagDeleteColor = color.New(color.FgRed, color.Bold).SprintFunc()
	dateColor      = color.New(color.Faint).SprintFunc()
	titleColor     = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// FormatTerminal writes the given blocks to w for terminal display:
// a dated heading per block, then one tagged line per entry.
func FormatTerminal(blocks Feed, w io.Writer, opts FormatOptions) error {
	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatBlock(block, w, opts); err != nil {
			return err
		}
	}
	return nil
}

// formatBlock renders one run's entries under its date heading.
func formatBlock(block Block, w io.Writer, opts FormatOptions) error {
	heading := FormatDateKST(block.Date)
	if block.CommitHash != "" {
		heading = fmt.Sprintf("%s (%s)", heading, block.CommitHash)
	}

	if opts.Plain {
		fmt.Fprintf(w, "%s\n", heading)
	} else {
		fmt.Fprintf(w, "%s\n", dateColor(heading))
	}

	for _, entry := range block.Entries {
		formatEntry(entry, w, opts)
	}
	return nil
}

// formatEntry renders one entry line: [TAG] Title — summary.
func formatEntry(entry Entry, w io.Writer, opts FormatOptions) {
	tag := fmt.Sprintf("[%s]", entry.TagText)
	title := PlainTitle(entry.Title)

	if opts.Plain {
		fmt.Fprintf(w, "  %s %s\n      %s\n", tag, title, entry.Summary)
		return
	}

	fmt.Fprintf(w, "  %s %s\n      %s\n", colorTag(entry.TagClass, tag), titleColor(title), entry.Summary)
}

// colorTag picks the tag color by class.
func colorTag(class, tag string) string {
	switch class {
	case ClassNew:
		return tagNewColor(tag)
	case ClassDelete:
		return tagDeleteColor(tag)
	default:
		return tagUpdateColor(tag)
	}
}
