package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"billgenerator/billing"
)

func TestGenerateExcel_SheetPerDocument(t *testing.T) {
	docs := BuildExportDocs(sampleResult(t))

	result, err := GenerateExcel(docs)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	want := []string{"First Page", "Deviation Statement", "Extra Items", "Note Sheet", "Certificate III", "Last Page"}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], name)
		}
	}

	title, _ := f.GetCellValue("First Page", "A1")
	if title != "Contractor Bill" {
		t.Errorf("title = %q, want 'Contractor Bill'", title)
	}
}

func TestGenerateExcel_ContainsAmounts(t *testing.T) {
	result, err := GenerateExcel(BuildExportDocs(sampleResult(t)))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("First Page")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var all []string
	for _, r := range rows {
		all = append(all, strings.Join(r, "|"))
	}
	body := strings.Join(all, "\n")

	for _, frag := range []string{"Wiring", "1,200", billing.ExtraItemsDivider, "LED fitting", "Payable Amount", "1,650", "'=cmd"} {
		if !strings.Contains(body, frag) {
			t.Errorf("first page sheet does not contain %q", frag)
		}
	}
}

func TestGenerateExcel_NoDocuments(t *testing.T) {
	result, err := GenerateExcel(nil)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestSheetName_Truncates(t *testing.T) {
	got := sheetName(ExportDoc{Title: strings.Repeat("x", 40)})
	if len(got) != 31 {
		t.Errorf("sheetName length = %d, want 31", len(got))
	}
	if got := sheetName(ExportDoc{}); got != "Sheet" {
		t.Errorf("empty sheetName = %q", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"negative amount", "-1,200", "-1,200"},
		{"minus formula", "-1+A1", "'-1+A1"},
		{"starts with minus", "-cmd", "'-cmd"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
