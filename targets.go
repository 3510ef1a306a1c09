package mdexport

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Targets derives the export targets of inputPath. Each target sits next to
// the input as {dir}/{base}.{format}, where base is the file name without
// its extension. Targets follow export order (html, pdf, mdx) and repeated
// formats collapse into one.
//
// /x/y/report.md with [pdf] gives exactly /x/y/report.pdf.
func Targets(inputPath string, formats []Format) ([]Target, error) {
	if len(formats) == 0 {
		return nil, ErrNoFormatSpecified
	}

	requested := make(map[Format]bool, len(formats))
	for _, f := range formats {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %q (must be html, pdf, or mdx)", ErrUnknownFormat, string(f))
		}
		requested[f] = true
	}

	targets := make([]Target, 0, len(requested))
	for _, f := range exportOrder {
		if !requested[f] {
			continue
		}
		path := fileutil.SiblingPath(inputPath, string(f))
		if filepath.Clean(path) == filepath.Clean(inputPath) {
			return nil, fmt.Errorf("%w: %s", ErrTargetIsInput, inputPath)
		}
		targets = append(targets, Target{Format: f, Path: path})
	}
	return targets, nil
}
