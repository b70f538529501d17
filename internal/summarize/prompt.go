package summarize

import (
	"fmt"
	"strings"
)

// fallbackUpdatedSummary is used when summarization fails after retries.
// Published summaries are Korean; this mirrors the feed's house copy.
const fallbackUpdatedSummary = "%s 문서가 업데이트되었습니다."

// FallbackSummary returns the single fallback item for a file whose
// summarization could not be completed.
func FallbackSummary(filename string) []Summary {
	return []Summary{{
		Header:  "Overview",
		Summary: fmt.Sprintf(fallbackUpdatedSummary, filename),
	}}
}

const updateInstructions = `
1. **CRITICAL: FILTER TRIVIAL CHANGES.**
   - Ignore whitespace, typos, formatting (e.g. bold/italic changes), and simple rewording.
   - **Ignore code block attribute changes** (e.g. removing metadata attributes).
   - Ignore internal meta-data updates or comment changes.
   - If the changes are trivial as described above: **RETURN AN EMPTY LIST []**.
2. If the changes are meaningful:
   - **Return EXACTLY ONE summary** that consolidates all changes in the file.
   - Use "Overview" as the header.
   - Do not split into multiple items based on sections.
`

const newFileInstructions = `
1. **NEW FILE ADDED.**
   - Since this is a completely new file, do not break it down into sections.
   - **Return EXACTLY ONE summary** with the header "Overview".
   - The summary should describe the overall purpose and contents of this new file.
`

// BuildPrompt renders the summarization prompt for a file. Content holds the
// diff for updates or the full page for new files, already truncated by the
// caller.
func BuildPrompt(filename, content string, isNew bool) string {
	promptContext := "Here is the git diff of the changes."
	instructions := updateInstructions
	if isNew {
		promptContext = "This is a new file."
		instructions = newFileInstructions
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a tech news editor. Analyze the changes in the %q documentation.\n", filename)
	sb.WriteString(promptContext)
	sb.WriteString("\n\nTask:\n")
	sb.WriteString(instructions)
	sb.WriteString(`
3. **Write informative summaries.** The summary should explain "what changed" and "why it matters" in Korean. (Max 150 characters).
4. Return the result in JSON format.

Format example for TRIVIAL changes (RETURN THIS if changes are minor):
[]

Format example for MEANINGFUL changes:
[
    {
        "header": "Overview",
        "summary": "전반적인 내용이 재구성되었으며, 새로운 모범 사례 섹션이 추가되어 더 효율적인 워크플로우를 제안합니다."
    }
]

Content/Diff:
`)
	sb.WriteString(content)
	return sb.String()
}

// Truncate limits content to max characters. Non-positive max disables
// truncation. The limit counts runes, so a multi-byte character is never
// split mid-sequence.
func Truncate(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}
