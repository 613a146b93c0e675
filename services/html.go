package services

import (
	"bytes"
	"context"
	"fmt"

	"billgenerator/templates"
)

// DocumentView converts a flattened document to its HTML view model.
func DocumentView(doc ExportDoc) templates.DocumentView {
	v := templates.DocumentView{
		Title:  doc.Title,
		Date:   doc.Date,
		Header: doc.Header,
		Footer: doc.Footer,
	}
	for _, p := range doc.Info {
		v.Info = append(v.Info, templates.DocumentLine{Label: p.Label, Value: p.Value})
	}
	for _, c := range doc.Columns {
		v.Columns = append(v.Columns, templates.DocumentColumn{Title: c.Title, Right: c.Right})
	}
	for _, r := range doc.Rows {
		v.Rows = append(v.Rows, templates.DocumentRow{Cells: r.Cells, Bold: r.Bold, Underline: r.Underline})
	}
	for _, p := range doc.Summary {
		v.Summary = append(v.Summary, templates.DocumentLine{Label: p.Label, Value: p.Value})
	}
	return v
}

// GenerateHTML renders one document as a standalone HTML page.
func GenerateHTML(ctx context.Context, doc ExportDoc) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.DocumentPage(DocumentView(doc)).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render html for %s: %w", doc.Name, err)
	}
	return buf.Bytes(), nil
}
