package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"billgenerator/billing"
)

// Format is an output file type.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// AllFormats is every supported output format.
var AllFormats = []Format{FormatHTML, FormatPDF, FormatXLSX, FormatJSON}

// RenderOptions select what RenderBill produces.
type RenderOptions struct {
	// Formats defaults to AllFormats when empty.
	Formats []Format
	// MergePDF adds the complete bill as one PDF. Needs FormatPDF.
	MergePDF bool
	// BaseName prefixes the workbook, merged PDF and JSON file names.
	BaseName string
}

func (o RenderOptions) wants(f Format) bool {
	if len(o.Formats) == 0 {
		return true
	}
	for _, x := range o.Formats {
		if x == f {
			return true
		}
	}
	return false
}

// File is one rendered output.
type File struct {
	Name string
	Data []byte
}

// Bundle holds the rendered files in archive order.
type Bundle struct {
	Files []File
}

// Size is the total byte count of every file.
func (b *Bundle) Size() int {
	n := 0
	for _, f := range b.Files {
		n += len(f.Data)
	}
	return n
}

// File returns the named file, or nil.
func (b *Bundle) File(name string) *File {
	for i := range b.Files {
		if b.Files[i].Name == name {
			return &b.Files[i]
		}
	}
	return nil
}

// Zip packages the bundle. Entries keep the bundle order.
func (b *Bundle) Zip() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range b.Files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// DocumentFileName is the per-document file name, numbered in print order,
// e.g. 01_first_page.pdf.
func DocumentFileName(index int, name string, f Format) string {
	return fmt.Sprintf("%02d_%s.%s", index+1, strings.TrimSuffix(name, "_data"), f)
}

// RenderBill renders every document of a bill. Documents render concurrently;
// the bundle order depends only on print order and the chosen formats.
func RenderBill(ctx context.Context, res *billing.Result, opts RenderOptions) (*Bundle, error) {
	base := opts.BaseName
	if base == "" {
		base = "bill"
	}
	docs := BuildExportDocs(res)

	htmlOut := make([][]byte, len(docs))
	pdfOut := make([][]byte, len(docs))
	var xlsxOut, jsonOut []byte

	g, ctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		if opts.wants(FormatHTML) {
			g.Go(func() error {
				b, err := GenerateHTML(ctx, doc)
				htmlOut[i] = b
				return err
			})
		}
		if opts.wants(FormatPDF) {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				b, err := GeneratePDF(doc)
				pdfOut[i] = b
				return err
			})
		}
	}
	if opts.wants(FormatXLSX) {
		g.Go(func() error {
			b, err := GenerateExcel(docs)
			xlsxOut = b
			return err
		})
	}
	if opts.wants(FormatJSON) {
		g.Go(func() error {
			b, err := json.MarshalIndent(struct {
				Documents   map[string]any       `json:"documents"`
				Diagnostics []billing.Diagnostic `json:"diagnostics"`
			}{res.Documents(), res.Diagnostics}, "", "  ")
			jsonOut = b
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}

	bundle := &Bundle{}
	for i, doc := range docs {
		if htmlOut[i] != nil {
			bundle.Files = append(bundle.Files, File{Name: DocumentFileName(i, doc.Name, FormatHTML), Data: htmlOut[i]})
		}
		if pdfOut[i] != nil {
			bundle.Files = append(bundle.Files, File{Name: DocumentFileName(i, doc.Name, FormatPDF), Data: pdfOut[i]})
		}
	}
	if opts.MergePDF && opts.wants(FormatPDF) && len(docs) > 0 {
		merged, err := MergePDFs(pdfOut...)
		if err != nil {
			return nil, err
		}
		bundle.Files = append(bundle.Files, File{Name: base + "_complete.pdf", Data: merged})
	}
	if xlsxOut != nil {
		bundle.Files = append(bundle.Files, File{Name: base + ".xlsx", Data: xlsxOut})
	}
	if jsonOut != nil {
		bundle.Files = append(bundle.Files, File{Name: base + ".json", Data: jsonOut})
	}

	return bundle, nil
}
