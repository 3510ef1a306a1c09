package mdexport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// renderer writes one export format to a file.
type renderer interface {
	RenderFile(ctx context.Context, markdown, outputPath string, opts Options) error
}

// Compile-time interface checks.
var (
	_ renderer = (*HTMLRenderer)(nil)
	_ renderer = (*PDFRenderer)(nil)
	_ renderer = (*MDXRenderer)(nil)
)

// Exporter turns one markdown file into sibling HTML, PDF and MDX files.
// Formats are produced one after the other and fail independently.
type Exporter struct {
	cfg       config
	renderers map[Format]renderer
}

// NewExporter creates an Exporter. The browser used for PDF is started per
// PDF target, never at construction.
func NewExporter(opts ...Option) (*Exporter, error) {
	cfg := newConfig(opts)

	htmlRenderer, err := newHTMLRenderer(cfg)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		cfg: cfg,
		renderers: map[Format]renderer{
			FormatHTML: htmlRenderer,
			FormatPDF:  newPDFRenderer(cfg, htmlRenderer),
			FormatMDX:  &MDXRenderer{cfg: cfg},
		},
	}, nil
}

// Export reads inputPath once and writes one file per requested format,
// in the order html, pdf, mdx.
//
// An empty or invalid format list, a target that would overwrite the input,
// and an unreadable input abort the run with an error before any file is
// written. Otherwise every target gets an Outcome: a failing format is
// recorded as a *RenderError and the next format is still attempted. Once
// ctx is done, the remaining targets are recorded as failed with the
// context error.
func (e *Exporter) Export(ctx context.Context, inputPath string, formats []Format, opts Options) ([]Outcome, error) {
	targets, err := Targets(inputPath, formats)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	markdown := string(data)

	if opts.SourceDir == "" {
		opts.SourceDir = filepath.Dir(inputPath)
	}

	e.cfg.logger.Debug("export started", "input", inputPath, "bytes", len(data), "targets", len(targets))

	outcomes := make([]Outcome, 0, len(targets))
	for _, t := range targets {
		start := time.Now()
		err := e.renderTarget(ctx, markdown, t, opts)
		o := Outcome{Target: t, Duration: time.Since(start)}
		if err != nil {
			o.Err = &RenderError{Format: t.Format, Path: t.Path, Err: err}
			e.cfg.logger.Debug("export failed", "format", t.Format, "path", t.Path, "error", err)
		} else {
			e.cfg.logger.Debug("export succeeded", "format", t.Format, "path", t.Path, "elapsed", o.Duration)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// renderTarget runs one renderer, converting a panic into an error so one
// format cannot take the others down.
func (e *Exporter) renderTarget(ctx context.Context, markdown string, t Target, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return e.renderers[t.Format].RenderFile(ctx, markdown, t.Path, opts)
}
