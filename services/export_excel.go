package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelStyles are created once per workbook and shared by every sheet.
type excelStyles struct {
	title, subtitle, header, cell, bold, boldUnderline, label, value, text int
}

// GenerateExcel writes one workbook with a sheet per document and returns the
// file contents as a byte slice.
func GenerateExcel(docs []ExportDoc) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	for i, doc := range docs {
		name := sheetName(doc)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, doc, styles); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", name, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetName keeps within Excel's 31 character limit.
func sheetName(doc ExportDoc) string {
	name := doc.SheetName
	if name == "" {
		name = doc.Title
	}
	if len(name) > 31 {
		name = name[:31]
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

func writeSheet(f *excelize.File, sheet string, doc ExportDoc, st excelStyles) error {
	ncols := len(doc.Columns)
	if ncols < 4 {
		ncols = 4
	}
	lastCol, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return err
	}

	if len(doc.Columns) > 0 {
		for i, c := range doc.Columns {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, c.Width); err != nil {
				return fmt.Errorf("set col width %s: %w", col, err)
			}
		}
	} else {
		if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", lastCol, 18); err != nil {
			return err
		}
	}

	row := 1
	mergedLine := func(text string, style int) error {
		r := strconv.Itoa(row)
		if err := f.MergeCell(sheet, "A"+r, lastCol+r); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(text))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, style)
		row++
		return nil
	}

	if err := mergedLine(doc.Title, st.title); err != nil {
		return err
	}
	if doc.Date != "" {
		if err := mergedLine("Date: "+doc.Date, st.subtitle); err != nil {
			return err
		}
	}
	row++

	// Header block cells go where they sat on the uploaded sheet.
	if len(doc.Header) > 0 {
		for _, line := range doc.Header {
			for c, v := range line {
				if v == "" {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, row)
				f.SetCellValue(sheet, cell, sanitizeExcelCell(v))
			}
			row++
		}
		row++
	}

	if len(doc.Info) > 0 {
		for _, p := range doc.Info {
			r := strconv.Itoa(row)
			f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(p.Label))
			f.SetCellStyle(sheet, "A"+r, "A"+r, st.bold)
			f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(p.Value))
			row++
		}
		row++
	}

	if len(doc.Columns) > 0 {
		r := strconv.Itoa(row)
		for i, c := range doc.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, c.Title)
		}
		f.SetCellStyle(sheet, "A"+r, lastCol+r, st.header)
		row++

		for _, data := range doc.Rows {
			r := strconv.Itoa(row)
			for i, v := range data.Cells {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, sanitizeExcelCell(v))
			}
			style := st.cell
			switch {
			case data.Underline:
				style = st.boldUnderline
			case data.Bold:
				style = st.bold
			}
			f.SetCellStyle(sheet, "A"+r, lastCol+r, style)
			row++
		}
		row++
	}

	if len(doc.Summary) > 0 {
		labelEnd, _ := excelize.ColumnNumberToName(ncols - 1)
		for _, p := range doc.Summary {
			r := strconv.Itoa(row)
			if err := f.MergeCell(sheet, "A"+r, labelEnd+r); err != nil {
				return fmt.Errorf("merge summary: %w", err)
			}
			f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(p.Label))
			f.SetCellStyle(sheet, "A"+r, labelEnd+r, st.label)
			f.SetCellValue(sheet, lastCol+r, sanitizeExcelCell(p.Value))
			f.SetCellStyle(sheet, lastCol+r, lastCol+r, st.value)
			row++
		}
		row++
	}

	for _, line := range doc.Footer {
		if line == "" {
			row++
			continue
		}
		if err := mergedLine(line, st.text); err != nil {
			return err
		}
	}

	return nil
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var st excelStyles
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.subtitle, "subtitle", &excelize.Style{
			Font:      &excelize.Font{Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&st.header, "header", &excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
				WrapText:   true,
			},
			Border: thinBorders(),
		}},
		{&st.cell, "cell", &excelize.Style{
			Font:      &excelize.Font{Size: 10},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    thinBorders(),
		}},
		{&st.bold, "bold", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Border: thinBorders(),
		}},
		{&st.boldUnderline, "divider", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Underline: "single", Size: 10},
			Border: thinBorders(),
		}},
		{&st.label, "summary label", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&st.value, "summary value", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&st.text, "text", &excelize.Style{
			Font:      &excelize.Font{Size: 11},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return st, nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
// Negative amounts are left alone.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '-':
		if len(s) > 1 && strings.Trim(s[1:], "0123456789,.") == "" {
			return s
		}
		return "'" + s
	case '=', '+', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
