package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// TOCIndentRem is the left indentation added per level below 1.
const TOCIndentRem = 1.5

var (
	// ATX heading of level 1..3: hashes, at least one blank, some text.
	headingLine = regexp.MustCompile(`^(#{1,3})[ \t]+(.+)$`)

	// Optional closing sequence: blanks, hashes, blanks.
	closingHashes = regexp.MustCompile(`[ \t]+#+[ \t]*$`)

	nonWordRun = regexp.MustCompile(`[^\w]+`)
)

// TOCEntry is one line of a table of contents.
type TOCEntry struct {
	Level  int    // 1..3
	Text   string // heading text as written
	Anchor string // fragment identifier, see Slugify
}

// Slugify lowercases text and replaces every run of characters outside
// [A-Za-z0-9_] with a single "-". "Getting Started!" gives "getting-started-".
// Equal headings produce equal anchors.
func Slugify(text string) string {
	return nonWordRun.ReplaceAllString(strings.ToLower(text), "-")
}

// ExtractHeadings returns, in document order, the lines of markdown that are
// level 1..3 ATX headings. Lines inside fenced code blocks are skipped.
func ExtractHeadings(markdown string) []string {
	if markdown == "" {
		return nil
	}

	var headings []string
	var fences fenceState
	for _, line := range strings.Split(normalizeLineEndings(markdown), "\n") {
		if fences.step(line) {
			continue
		}
		if headingLine.MatchString(line) {
			headings = append(headings, line)
		}
	}
	return headings
}

// BuildTOC extracts headings from markdown and computes their entries.
func BuildTOC(markdown string) []TOCEntry {
	lines := ExtractHeadings(markdown)
	if len(lines) == 0 {
		return nil
	}

	entries := make([]TOCEntry, 0, len(lines))
	for _, line := range lines {
		m := headingLine.FindStringSubmatch(line)
		text := HeadingText(m[2])
		entries = append(entries, TOCEntry{
			Level:  len(m[1]),
			Text:   text,
			Anchor: Slugify(text),
		})
	}
	return entries
}

// HeadingText strips trailing blanks and an optional closing hash sequence,
// giving the same text the markdown parser sees for the heading.
func HeadingText(raw string) string {
	text := strings.TrimRight(raw, " \t")
	if stripped := closingHashes.ReplaceAllString(text, ""); stripped != "" {
		text = stripped
	}
	return strings.TrimSpace(text)
}

// GenerateTOC renders entries as a navigation fragment followed by a
// horizontal rule. It returns "" when there are no entries.
func GenerateTOC(entries []TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc"><h2>Table of Contents</h2><ul>`)
	for _, e := range entries {
		b.WriteString("<li")
		if indent := float64(e.Level-1) * TOCIndentRem; indent > 0 {
			fmt.Fprintf(&b, ` style="margin-left: %grem"`, indent)
		}
		fmt.Fprintf(&b, `><a href="#%s">%s</a></li>`, html.EscapeString(e.Anchor), html.EscapeString(e.Text))
	}
	b.WriteString(`</ul></nav><hr>`)
	return b.String()
}
