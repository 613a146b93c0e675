package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDocumentPage_EscapesAndMarksRows(t *testing.T) {
	v := DocumentView{
		Title:   "Contractor Bill",
		Date:    "30-06-2025",
		Header:  [][]string{{"Agreement No.", "48/2024-25"}},
		Columns: []DocumentColumn{{Title: "Description"}, {Title: "Amount", Right: true}},
		Rows: []DocumentRow{
			{Cells: []string{"<script>alert(1)</script>", "1,200"}},
			{Cells: []string{"Extra Items (With Premium)", ""}, Bold: true, Underline: true},
		},
		Summary: []DocumentLine{{Label: "Payable Amount", Value: "1,650"}},
		Footer:  []string{"1. First note", "", "Assistant Accounts Officer"},
	}

	var buf bytes.Buffer
	if err := DocumentPage(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := buf.String()

	for _, frag := range []string{
		"<title>Contractor Bill</title>",
		"Date: 30-06-2025",
		"48/2024-25",
		"&lt;script&gt;",
		`<tr class="divider">`,
		`<td class="num">1,200</td>`,
		"Payable Amount",
		"<p>1. First note</p>",
	} {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q", frag)
		}
	}
	if strings.Contains(body, "<script>alert") {
		t.Error("cell text was not escaped")
	}
}

func TestDocumentContent_SkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	err := DocumentContent(DocumentView{Title: "Bill Summary", Header: [][]string{{"", ""}}}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := buf.String()
	if strings.Contains(body, "<table") {
		t.Errorf("expected no tables, got %s", body)
	}
}

func TestBillFormPage(t *testing.T) {
	var buf bytes.Buffer
	data := BillFormData{
		Values: map[string]string{"premium_type": "below", "work_name": `School "A"`},
		Error:  "invalid configuration: premium_type must be a valid value",
	}
	if err := BillFormPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := buf.String()

	for _, frag := range []string{
		`enctype="multipart/form-data"`,
		`name="workbook"`,
		`<option value="below" selected>`,
		`value="School &#34;A&#34;"`,
		`role="alert"`,
		`formaction="/bills/preview"`,
	} {
		if !strings.Contains(body, frag) {
			t.Errorf("expected form to contain %q", frag)
		}
	}
	for _, f := range BillFormFields {
		if !strings.Contains(body, `name="`+f.Name+`"`) {
			t.Errorf("form is missing field %s", f.Name)
		}
	}
}

func TestBillRunsPage(t *testing.T) {
	var buf bytes.Buffer
	runs := []BillRunItem{{ID: "abc", AgreementNo: "48/2024-25", Payable: "1,650", Warnings: 2}}
	if err := BillRunsPage(runs).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, "48/2024-25") || !strings.Contains(body, `<span class="warning">2</span>`) {
		t.Errorf("unexpected runs page: %s", body)
	}

	buf.Reset()
	if err := BillRunsPage(nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "No bills generated yet.") {
		t.Error("expected empty state")
	}
}
