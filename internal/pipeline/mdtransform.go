package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Opening or closing code fence, up to three spaces of indentation.
	codeFence = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// PreprocessMarkdown normalizes \r\n and lone \r line endings to \n.
// The text itself is otherwise left as written.
func PreprocessMarkdown(content string) string {
	return normalizeLineEndings(content)
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// fenceState follows fenced code blocks across consecutive lines.
type fenceState struct {
	open string // delimiter of the open block, "" outside code
}

// step consumes one line and reports whether it belongs to a fenced block,
// delimiter lines included. A block closes on a line holding only the same
// fence character, at least as many times as it was opened with.
func (f *fenceState) step(line string) bool {
	m := codeFence.FindStringSubmatch(line)
	if m == nil {
		return f.open != ""
	}
	if f.open == "" {
		f.open = m[1]
		return true
	}
	if t := strings.TrimSpace(line); len(t) >= len(f.open) && strings.Trim(t, f.open[:1]) == "" {
		f.open = ""
	}
	return true
}
