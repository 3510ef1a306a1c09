package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HighlightStyle is the chroma style used for fenced code blocks.
const HighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to a sanitized HTML fragment.
type GoldmarkConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// footnotes and class-based syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			Mark,               // ==highlight==
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					html.WithClasses(true), // styled by HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Raw HTML is kept here and filtered by the sanitizer afterwards.
			gmhtml.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md, policy: NewSanitizer()}
}

// ToHTML converts Markdown content to an HTML body fragment. Headings get
// ids computed by Slugify so table-of-contents links resolve.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pc := parser.NewContext(parser.WithIDs(headingIDs{}))
		if err := c.md.Convert([]byte(PreprocessMarkdown(content)), &buf, parser.WithContext(pc)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		safe := c.policy.SanitizeReader(&buf)
		done <- result{html: safe.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet matching the classes emitted for
// highlighted code blocks.
func HighlightCSS() (string, error) {
	var b strings.Builder
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(HighlightStyle)); err != nil {
		return "", fmt.Errorf("generating highlight CSS: %w", err)
	}
	return b.String(), nil
}

// headingIDs assigns heading ids with Slugify. Ids are not de-duplicated:
// repeated headings share an anchor, like their table-of-contents entries.
type headingIDs struct{}

func (headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	id := Slugify(HeadingText(string(value)))
	if id == "" {
		id = "heading"
	}
	return []byte(id)
}

func (headingIDs) Put([]byte) {}

var _ parser.IDs = headingIDs{}
