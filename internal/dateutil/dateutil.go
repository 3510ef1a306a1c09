// Package dateutil resolves the date written into exported front matter.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// TimestampLayout is the machine-sortable layout used when no date is given:
// UTC with millisecond precision, e.g. 2026-10-19T08:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultDateFormat is used for a bare "auto".
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go layout fragments, longest first.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Timestamp formats t in UTC with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Layout converts a token format (YYYY, MM, DD, ...) into a Go time layout.
// Text inside brackets is copied literally: "[Week of] MMM D" keeps "Week of".
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		token, layout := matchToken(rest)
		if token == "" {
			b.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}
		b.WriteString(layout)
		rest = rest[len(token):]
	}
	return b.String(), nil
}

func matchToken(s string) (token, layout string) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout
		}
	}
	return "", ""
}

// Resolve turns a user-supplied date value into the string written to disk.
//   - "" or "now"   -> Timestamp(t)
//   - "auto"        -> t in DefaultDateFormat
//   - "auto:FORMAT" -> t in FORMAT (tokens or a preset name)
//   - anything else -> returned unchanged
func Resolve(value string, t time.Time) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch {
	case lower == "" || lower == "now":
		return Timestamp(t), nil
	case lower == "auto":
		return formatWith(DefaultDateFormat, t)
	case strings.HasPrefix(lower, "auto:"):
		format := strings.TrimSpace(value)[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
		return formatWith(format, t)
	case strings.HasPrefix(lower, "auto"):
		return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	return value, nil
}

func formatWith(format string, t time.Time) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
