package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNothingToMerge is returned by MergePDFs when called without documents.
var ErrNothingToMerge = errors.New("no PDF documents to merge")

// MergePDFs joins rendered documents, in the given order, into the complete
// bill PDF.
func MergePDFs(pdfs ...[]byte) ([]byte, error) {
	if len(pdfs) == 0 {
		return nil, ErrNothingToMerge
	}

	readers := make([]io.ReadSeeker, len(pdfs))
	for i, p := range pdfs {
		readers[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("merge pdf: %w", err)
	}
	return buf.Bytes(), nil
}
