package mdexport

import (
	"fmt"
	"strings"
	"time"
)

// Format is an export format.
type Format string

// Supported formats, listed in export order.
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatMDX  Format = "mdx"
)

// exportOrder fixes the order targets are produced in, whatever the order
// they were requested in.
var exportOrder = []Format{FormatHTML, FormatPDF, FormatMDX}

// Formats returns every supported format in export order.
func Formats() []Format {
	return append([]Format(nil), exportOrder...)
}

// ParseFormat converts a case-insensitive name ("HTML", "pdf") to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (must be html, pdf, or mdx)", ErrUnknownFormat, s)
	}
	return f, nil
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatPDF, FormatMDX:
		return true
	}
	return false
}

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Report"

// Options holds the per-run rendering options. The zero value renders with
// the default title, no author, and no table of contents.
type Options struct {
	Title      string // empty = DefaultTitle
	Author     string // empty = no author line or field
	IncludeTOC bool   // HTML and PDF only

	// Date is written to the MDX front matter verbatim. Empty means the
	// generation time as an ISO-8601 UTC timestamp.
	Date string

	// SourceDir is the directory relative links in the markdown resolve
	// against. When an HTML page is written elsewhere, relative img and
	// link targets are rewritten to file:// URLs. Empty disables rewriting.
	SourceDir string
}

// title returns the effective document title.
func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// Target is one artifact to produce.
type Target struct {
	Format Format
	Path   string
}

// Outcome is the result of producing one Target.
type Outcome struct {
	Target   Target
	Err      error // nil on success, otherwise a *RenderError
	Duration time.Duration
}

// Succeeded reports whether the target was written.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Summarize counts successful and failed outcomes.
func Summarize(outcomes []Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
