package mdexport

import (
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/pipeline"
)

// documentData is the data passed to the document template.
type documentData struct {
	Title  string
	CSS    template.CSS
	TOC    template.HTML
	Body   template.HTML
	Author string
}

// HTMLRenderer renders markdown to a standalone, styled HTML page.
type HTMLRenderer struct {
	cfg       config
	converter pipeline.HTMLConverter
	tmpl      *template.Template
	css       template.CSS
}

// NewHTMLRenderer creates an HTMLRenderer. It fails when a custom asset
// path is unusable or the document template does not parse.
func NewHTMLRenderer(opts ...Option) (*HTMLRenderer, error) {
	return newHTMLRenderer(newConfig(opts))
}

func newHTMLRenderer(cfg config) (*HTMLRenderer, error) {
	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	style, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return nil, err
	}

	src, err := loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	tmpl, err := template.New(assets.DocumentTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	return &HTMLRenderer{
		cfg:       cfg,
		converter: pipeline.NewGoldmarkConverter(),
		tmpl:      tmpl,
		css:       template.CSS(style + "\n" + highlight), // #nosec G203 -- embedded or operator-provided stylesheet
	}, nil
}

// Render returns the HTML page for markdown. The output depends only on
// markdown and opts.
func (r *HTMLRenderer) Render(ctx context.Context, markdown string, opts Options) (string, error) {
	return r.render(ctx, markdown, opts, "")
}

// RenderFile renders markdown and writes the page to outputPath, creating
// missing directories and replacing any existing file.
func (r *HTMLRenderer) RenderFile(ctx context.Context, markdown, outputPath string, opts Options) error {
	page, err := r.render(ctx, markdown, opts, filepath.Dir(outputPath))
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(outputPath, []byte(page)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// render builds the page. outputDir, when set and different from
// opts.SourceDir, triggers relative link rewriting.
func (r *HTMLRenderer) render(ctx context.Context, markdown string, opts Options, outputDir string) (string, error) {
	start := time.Now()

	body, err := r.converter.ToHTML(ctx, markdown)
	if err != nil {
		return "", err
	}

	if outputDir != "" && opts.SourceDir != "" && !sameDir(outputDir, opts.SourceDir) {
		body, err = pipeline.RewriteRelativePaths(body, opts.SourceDir)
		if err != nil {
			return "", fmt.Errorf("%w: rewriting relative paths: %v", ErrHTMLConversion, err)
		}
	}

	var toc string
	if opts.IncludeTOC {
		toc = pipeline.GenerateTOC(pipeline.BuildTOC(markdown))
	}

	var b strings.Builder
	err = r.tmpl.Execute(&b, documentData{
		Title:  opts.title(),
		CSS:    r.css,
		TOC:    template.HTML(toc),  // #nosec G203 -- built from escaped heading text
		Body:   template.HTML(body), // #nosec G203 -- sanitized by the converter
		Author: opts.Author,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	r.cfg.logger.Debug("html rendered", "bytes", b.Len(), "toc", toc != "", "elapsed", time.Since(start))
	return b.String(), nil
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
