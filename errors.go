package mdexport

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdexport/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Run preconditions: Export returns these before rendering anything.
	ErrNoFormatSpecified = errors.New("no export format specified")
	ErrUnknownFormat     = errors.New("unknown export format")
	ErrTargetIsInput     = errors.New("export target would overwrite the input file")
	ErrReadMarkdown      = errors.New("failed to read markdown")

	// Per-format failures, wrapped in a RenderError.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrTemplate       = errors.New("document template failed")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPDF     = errors.New("generated PDF is invalid")

	// Construction errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// RenderError reports the failure of one export target.
type RenderError struct {
	Format Format
	Path   string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s export to %s: %v", e.Format, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
