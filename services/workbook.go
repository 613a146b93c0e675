package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"billgenerator/billing"
)

// Sheet names of the uploaded workbook.
const (
	SheetWorkOrder    = billing.SourceWorkOrder
	SheetBillQuantity = billing.SourceBillQuantity
	SheetExtraItems   = billing.SourceExtraItems
)

// minColumns is the narrowest each sheet may be.
var minColumns = map[string]int{
	SheetWorkOrder:    7,
	SheetBillQuantity: 4,
	SheetExtraItems:   6,
}

// ErrTooFewColumns is returned when a sheet is narrower than its layout needs.
var ErrTooFewColumns = errors.New("too few columns")

// ErrInvalidWorkbook is returned when the upload is not a readable xlsx file.
var ErrInvalidWorkbook = errors.New("not a readable workbook")

// ReadWorkbook loads the three grids from an uploaded workbook. The work-order
// and bill-quantity sheets are required; a missing or empty extra-items sheet
// comes back as a nil grid and is reported later by the engine.
func ReadWorkbook(r io.Reader) (billing.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return billing.Input{}, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	var in billing.Input
	for _, sheet := range []string{SheetWorkOrder, SheetBillQuantity} {
		if !present[sheet] {
			return billing.Input{}, fmt.Errorf("%w: %q", billing.ErrMissingSheet, sheet)
		}
		g, err := readSheet(f, sheet)
		if err != nil {
			return billing.Input{}, err
		}
		if g == nil {
			return billing.Input{}, fmt.Errorf("%w: %q is empty", billing.ErrMissingSheet, sheet)
		}
		if sheet == SheetWorkOrder {
			in.WorkOrder = g
		} else {
			in.BillQuantity = g
		}
	}

	if present[SheetExtraItems] {
		g, err := readSheet(f, SheetExtraItems)
		if err != nil {
			return billing.Input{}, err
		}
		in.ExtraItems = g
	}

	return in, nil
}

// readSheet returns nil for a sheet without any values. The header block is
// read as displayed, with date-formatted cells turned into time values; item
// rows are read raw so numbers keep their full precision.
func readSheet(f *excelize.File, sheet string) (billing.Grid, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw = trimTrailingEmpty(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	width := 0
	for _, r := range raw {
		width = max(width, len(r))
	}
	if width < minColumns[sheet] {
		return nil, fmt.Errorf("%w: sheet %q has %d, needs at least %d", ErrTooFewColumns, sheet, width, minColumns[sheet])
	}

	g := make(billing.Grid, len(raw))
	for r, cells := range raw {
		line := make([]any, len(cells))
		for c, v := range cells {
			if r < billing.HeaderRows {
				line[c] = headerCell(f, sheet, r, c, v, shown)
				continue
			}
			line[c] = nilIfBlank(v)
		}
		g[r] = line
	}
	return g, nil
}

func headerCell(f *excelize.File, sheet string, row, col int, raw string, shown [][]string) any {
	if raw == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && isDateCell(f, sheet, row, col) {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}
	if row < len(shown) && col < len(shown[row]) {
		return nilIfBlank(shown[row][col])
	}
	return raw
}

// isDateCell reports whether the cell carries a date number format.
func isDateCell(f *excelize.File, sheet string, row, col int) bool {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.NumFmt >= 14 && style.NumFmt <= 22 {
		return true
	}
	if style.CustomNumFmt != nil {
		format := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(format, "yy") && strings.Contains(format, "d")
	}
	return false
}

func nilIfBlank(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}

func trimTrailingEmpty(rows [][]string) [][]string {
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
