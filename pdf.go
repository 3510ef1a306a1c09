package mdexport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// PDFRenderer prints the HTML rendering of markdown with a headless browser.
type PDFRenderer struct {
	cfg     config
	html    *HTMLRenderer
	printer pagePrinter
}

// NewPDFRenderer creates a PDFRenderer. No browser is started until
// RenderFile is called.
func NewPDFRenderer(opts ...Option) (*PDFRenderer, error) {
	cfg := newConfig(opts)
	htmlRenderer, err := newHTMLRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return newPDFRenderer(cfg, htmlRenderer), nil
}

func newPDFRenderer(cfg config, htmlRenderer *HTMLRenderer) *PDFRenderer {
	printer := cfg.printer
	if printer == nil {
		printer = newRodPrinter(cfg)
	}
	return &PDFRenderer{cfg: cfg, html: htmlRenderer, printer: printer}
}

// RenderFile writes the PDF of markdown to outputPath. The intermediate page
// is written to {dir}/{base}.temp.html and removed before RenderFile
// returns, whether printing succeeded or not. Printing is bounded by the
// configured timeout.
func (r *PDFRenderer) RenderFile(ctx context.Context, markdown, outputPath string, opts Options) error {
	tempPath, err := fileutil.TempSiblingPath(outputPath, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer r.removeTemp(tempPath)

	if err := r.html.RenderFile(ctx, markdown, tempPath, opts); err != nil {
		return err
	}

	printCtx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	start := time.Now()
	data, err := r.printer.PrintToPDF(printCtx, tempPath)
	if err != nil {
		return err
	}

	pages, err := validatePDF(data)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFile(outputPath, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	r.cfg.logger.Debug("pdf written", "path", outputPath, "pages", pages, "bytes", len(data), "elapsed", time.Since(start))
	return nil
}

func (r *PDFRenderer) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.cfg.logger.Warn("removing intermediate file", "path", path, "error", err)
	}
}
