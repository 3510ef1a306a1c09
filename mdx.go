package mdexport

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdexport/internal/dateutil"
	"github.com/alnah/go-mdexport/internal/fileutil"
)

// MDXRenderer prefixes markdown with a YAML front matter block.
type MDXRenderer struct {
	cfg config
}

// NewMDXRenderer creates an MDXRenderer.
func NewMDXRenderer(opts ...Option) *MDXRenderer {
	return &MDXRenderer{cfg: newConfig(opts)}
}

// Render returns the MDX document:
//
//	---
//	title: "<title>"
//	author: "<author>"   (only when set)
//	date: "<date>"
//	---
//
//	<markdown unchanged>
//
// Values are double-quoted YAML scalars. The date is opts.Date, or the
// current time in UTC with millisecond precision.
func (r *MDXRenderer) Render(markdown string, opts Options) string {
	date := opts.Date
	if date == "" {
		date = dateutil.Timestamp(r.cfg.now())
	}

	var b strings.Builder
	b.Grow(len(markdown) + 128)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", quoteScalar(opts.title()))
	if opts.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", quoteScalar(opts.Author))
	}
	fmt.Fprintf(&b, "date: %s\n", quoteScalar(date))
	b.WriteString("---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// RenderFile writes the MDX document to outputPath, creating missing
// directories and replacing any existing file.
func (r *MDXRenderer) RenderFile(ctx context.Context, markdown, outputPath string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.WriteFile(outputPath, []byte(r.Render(markdown, opts))); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	r.cfg.logger.Debug("mdx written", "path", outputPath)
	return nil
}

// quoteScalar renders s as a double-quoted YAML scalar. Go and YAML share
// the escapes strconv.Quote produces for printable text, quotes,
// backslashes and control characters.
func quoteScalar(s string) string {
	return strconv.Quote(s)
}
