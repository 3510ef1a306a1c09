package mdexport

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfcpu would otherwise create a configuration directory under the
// user's config dir on first use.
var disableConfigDir sync.Once

// validatePDF parses and validates data, returning its page count.
func validatePDF(data []byte) (int, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty document", ErrInvalidPDF)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return ctx.PageCount, nil
}
