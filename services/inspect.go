package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount reads the number of pages of a rendered PDF.
func PageCount(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return r.NumPage(), nil
}
