package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"billgenerator/billing"
	"billgenerator/testhelpers"
)

func TestReadWorkbook_Sample(t *testing.T) {
	in, err := ReadWorkbook(bytes.NewReader(testhelpers.SampleWorkbook(t)))
	if err != nil {
		t.Fatalf("ReadWorkbook() error = %v", err)
	}

	if got := in.WorkOrder.Text(0, 1); got != "48/2024-25" {
		t.Errorf("B1 = %q, want 48/2024-25", got)
	}
	if _, ok := in.WorkOrder.Cell(3, 1).(time.Time); !ok {
		t.Errorf("B4 = %#v, want a time value", in.WorkOrder.Cell(3, 1))
	}
	if got := in.WorkOrder.Text(3, 1); got != "10-01-2025" {
		t.Errorf("B4 text = %q, want 10-01-2025", got)
	}
	if in.WorkOrder.Cell(5, 1) != nil {
		t.Errorf("blank cell = %#v, want nil", in.WorkOrder.Cell(5, 1))
	}
	if got := in.WorkOrder.Text(billing.WorkOrderFirstRow, 1); got != "Wiring" {
		t.Errorf("first item description = %q", got)
	}
	if in.ExtraItems == nil || in.ExtraItems.Len() != billing.ExtraItemsFirstRow+1 {
		t.Errorf("extra items grid has %d rows", in.ExtraItems.Len())
	}
}

func TestReadWorkbook_FeedsEngine(t *testing.T) {
	in, err := ReadWorkbook(bytes.NewReader(testhelpers.SampleWorkbook(t)))
	if err != nil {
		t.Fatalf("ReadWorkbook() error = %v", err)
	}
	cfg := billing.Config{
		PremiumPercent:  10,
		PremiumType:     billing.PremiumAbove,
		IsFirstBill:     true,
		StartDate:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CompletionDate:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		WorkOrderAmount: 1250,
	}
	res, err := billing.Generate(in, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
	// 12*100 + 3*50 + 2*75 = 1500, plus 10%.
	if res.FirstPage.Totals.GrandTotal != 1500 || res.FirstPage.Totals.Payable != 1650 {
		t.Errorf("totals = %+v", res.FirstPage.Totals)
	}
	if res.Deviation.Summary.NetDifference != 110 {
		t.Errorf("net difference = %d, want 110", res.Deviation.Summary.NetDifference)
	}
	if res.NoteSheet.NameOfFirm != "M/s Shree Electricals" {
		t.Errorf("NameOfFirm = %q", res.NoteSheet.NameOfFirm)
	}
}

func TestReadWorkbook_MissingExtraItemsSheet(t *testing.T) {
	spec := testhelpers.SampleWorkbookSpec()
	spec.NoExtras = true

	in, err := ReadWorkbook(bytes.NewReader(testhelpers.BuildWorkbook(t, spec)))
	if err != nil {
		t.Fatalf("ReadWorkbook() error = %v", err)
	}
	if in.ExtraItems != nil {
		t.Errorf("ExtraItems = %v, want nil", in.ExtraItems)
	}
}

func TestReadWorkbook_MissingBillQuantitySheet(t *testing.T) {
	spec := testhelpers.SampleWorkbookSpec()
	spec.NoBillQty = true

	_, err := ReadWorkbook(bytes.NewReader(testhelpers.BuildWorkbook(t, spec)))
	if !errors.Is(err, billing.ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
	if !strings.Contains(err.Error(), billing.SourceBillQuantity) {
		t.Errorf("error %q does not name the sheet", err)
	}
}

func TestReadWorkbook_EmptyWorkOrderSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), billing.SourceWorkOrder)
	f.NewSheet(billing.SourceBillQuantity)
	f.SetCellValue(billing.SourceBillQuantity, "D22", 3)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := ReadWorkbook(&buf)
	if !errors.Is(err, billing.ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
}

func TestReadWorkbook_TooFewColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), billing.SourceWorkOrder)
	f.SetCellValue(billing.SourceWorkOrder, "A22", "1")
	f.SetCellValue(billing.SourceWorkOrder, "B22", "Wiring")
	f.NewSheet(billing.SourceBillQuantity)
	f.SetCellValue(billing.SourceBillQuantity, "D22", 3)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := ReadWorkbook(&buf)
	if !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("expected ErrTooFewColumns, got %v", err)
	}
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("not a spreadsheet"))
	if !errors.Is(err, ErrInvalidWorkbook) {
		t.Fatalf("expected ErrInvalidWorkbook, got %v", err)
	}
}
