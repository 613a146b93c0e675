package testhelpers

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"billgenerator/billing"
)

// WorkbookItem is one item row of a generated test workbook.
type WorkbookItem struct {
	Serial      string
	Description string
	Unit        string
	Qty         any // ordered quantity (work order) or quantity (extra items)
	Rate        any
	Billed      any // executed quantity, work-order items only
}

// WorkbookSpec describes a test workbook.
type WorkbookSpec struct {
	Header    [][]any
	Items     []WorkbookItem
	Extras    []WorkbookItem
	NoExtras  bool // leave the Extra Items sheet out entirely
	NoBillQty bool // leave the Bill Quantity sheet out entirely
}

// SampleWorkbookSpec is two work-order items and one extra item.
func SampleWorkbookSpec() WorkbookSpec {
	return WorkbookSpec{
		Header: [][]any{
			{"Agreement No.", "48/2024-25"},
			{"Name of Work", "Electrification of school building"},
			{"Name of Firm", "M/s Shree Electricals"},
			{"Date of Commencement", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
			{"Date of Completion", "30-06-2025"},
			{"Actual Completion", ""},
		},
		Items: []WorkbookItem{
			{Serial: "1", Description: "Wiring", Unit: "Pts", Qty: 10, Rate: 100, Billed: 12},
			{Serial: "2", Description: "Fan point", Unit: "Nos", Qty: 5, Rate: 50, Billed: 3},
		},
		Extras: []WorkbookItem{
			{Serial: "E1", Description: "LED fitting", Unit: "Nos", Qty: 2, Rate: 75},
		},
	}
}

// SampleWorkbook returns the bytes of the sample workbook.
func SampleWorkbook(t *testing.T) []byte {
	t.Helper()
	return BuildWorkbook(t, SampleWorkbookSpec())
}

// BuildWorkbook writes an .xlsx laid out like a real work-order upload.
func BuildWorkbook(t *testing.T, spec WorkbookSpec) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), billing.SourceWorkOrder); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	sheets := []string{billing.SourceWorkOrder}
	if !spec.NoBillQty {
		sheets = append(sheets, billing.SourceBillQuantity)
	}
	if !spec.NoExtras {
		sheets = append(sheets, billing.SourceExtraItems)
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s); err != nil {
			t.Fatalf("new sheet %s: %v", s, err)
		}
	}

	set := func(sheet string, row, col int, v any) {
		t.Helper()
		if v == nil || v == "" {
			return
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set %s!%s: %v", sheet, cell, err)
		}
	}

	for r, line := range spec.Header {
		for c, v := range line {
			set(billing.SourceWorkOrder, r, c, v)
		}
	}
	// Column headings, so every sheet is wide enough even without items.
	woHeadings := []string{"S.No.", "Description", "Unit", "Qty", "Rate", "Amount", "Remark"}
	for c, h := range woHeadings {
		set(billing.SourceWorkOrder, billing.WorkOrderFirstRow-1, c, h)
		if !spec.NoBillQty {
			set(billing.SourceBillQuantity, billing.WorkOrderFirstRow-1, c, h)
		}
	}

	for i, it := range spec.Items {
		r := billing.WorkOrderFirstRow + i
		set(billing.SourceWorkOrder, r, 0, it.Serial)
		set(billing.SourceWorkOrder, r, 1, it.Description)
		set(billing.SourceWorkOrder, r, 2, it.Unit)
		set(billing.SourceWorkOrder, r, 3, it.Qty)
		set(billing.SourceWorkOrder, r, 4, it.Rate)
		if !spec.NoBillQty {
			set(billing.SourceBillQuantity, r, 0, it.Serial)
			set(billing.SourceBillQuantity, r, 1, it.Description)
			set(billing.SourceBillQuantity, r, 2, it.Unit)
			set(billing.SourceBillQuantity, r, 3, it.Billed)
		}
	}

	if !spec.NoExtras {
		exHeadings := []string{"S.No.", "Remark", "Description", "Qty", "Unit", "Rate"}
		for c, h := range exHeadings {
			set(billing.SourceExtraItems, billing.ExtraItemsFirstRow-1, c, h)
		}
		for i, it := range spec.Extras {
			r := billing.ExtraItemsFirstRow + i
			set(billing.SourceExtraItems, r, 0, it.Serial)
			set(billing.SourceExtraItems, r, 2, it.Description)
			set(billing.SourceExtraItems, r, 3, it.Qty)
			set(billing.SourceExtraItems, r, 4, it.Unit)
			set(billing.SourceExtraItems, r, 5, it.Rate)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
