package parser

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// ValidatePDF checks the document structure with pdfcpu in relaxed mode and
// returns the page count. It does not read any text.
func ValidatePDF(data []byte) (pageCount int, err error) {
	if len(data) == 0 {
		return 0, &ExtractionError{Source: "pdfcpu", Err: errors.New("empty document")}
	}
	disableConfigDir.Do(api.DisableConfigDir)

	defer func() {
		if r := recover(); r != nil {
			pageCount = 0
			err = &ExtractionError{Source: "pdfcpu", Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, &ExtractionError{Source: "pdfcpu", Err: err}
	}
	return n, nil
}
