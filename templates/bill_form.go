package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// BillFormField is one input of the bill form.
type BillFormField struct {
	Name     string
	Label    string
	Type     string // text, date, number or select
	Required bool
	Options  []string
}

// BillFormFields lists the configuration inputs in display order.
var BillFormFields = []BillFormField{
	{Name: "work_name", Label: "Name of Work", Type: "text"},
	{Name: "agreement_no", Label: "Agreement No.", Type: "text"},
	{Name: "contractor_name", Label: "Contractor Name", Type: "text"},
	{Name: "work_order_ref", Label: "Work Order Ref", Type: "text"},
	{Name: "order_date", Label: "Order Date", Type: "text"},
	{Name: "bill_serial", Label: "Bill Serial", Type: "text"},
	{Name: "bill_type", Label: "Bill Type", Type: "text"},
	{Name: "bill_number", Label: "Bill Number", Type: "text"},
	{Name: "last_bill_reference", Label: "Last Bill Reference", Type: "text"},
	{Name: "start_date", Label: "Start Date", Type: "date", Required: true},
	{Name: "completion_date", Label: "Completion Date", Type: "date", Required: true},
	{Name: "actual_completion_date", Label: "Actual Completion Date", Type: "date"},
	{Name: "bill_date", Label: "Bill Date", Type: "date"},
	{Name: "work_order_amount", Label: "Work Order Amount", Type: "number", Required: true},
	{Name: "premium_percent", Label: "Tender Premium %", Type: "number", Required: true},
	{Name: "premium_type", Label: "Premium Type", Type: "select", Required: true, Options: []string{"above", "below"}},
	{Name: "amount_paid_last_bill", Label: "Amount Paid Last Bill", Type: "number", Required: true},
	{Name: "is_first_bill", Label: "First Bill", Type: "select", Required: true, Options: []string{"no", "yes"}},
	{Name: "approval_authority", Label: "Approval Authority", Type: "text"},
	{Name: "signatory_name", Label: "Signatory Name", Type: "text"},
	{Name: "signatory_designation", Label: "Signatory Designation", Type: "text"},
}

// BillFormData carries previously entered values and an optional error.
type BillFormData struct {
	Values map[string]string
	Error  string
}

// BillFormPage renders the upload form.
func BillFormPage(data BillFormData) templ.Component {
	return Page("Bill Generator", BillFormContent(data))
}

// BillFormContent renders the form without the page shell.
func BillFormContent(data BillFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<h1>Contractor Bill Generator</h1>`)
		if data.Error != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(data.Error)
			h.raw(`</p>`)
		}
		h.raw(`<form method="post" action="/bills/generate" enctype="multipart/form-data">`)
		h.raw(`<label>Workbook (.xlsx) <input type="file" name="workbook" accept=".xlsx" required></label>`)

		for _, f := range BillFormFields {
			value := data.Values[f.Name]
			h.raw(`<label>`)
			h.text(f.Label)
			h.raw(` `)
			if f.Type == "select" {
				h.raw(`<select name="`)
				h.text(f.Name)
				h.raw(`">`)
				for _, opt := range f.Options {
					h.raw(`<option value="`)
					h.text(opt)
					h.raw(`"`)
					if opt == value {
						h.raw(` selected`)
					}
					h.raw(`>`)
					h.text(opt)
					h.raw(`</option>`)
				}
				h.raw(`</select>`)
			} else {
				h.raw(`<input type="`)
				h.text(f.Type)
				h.raw(`" name="`)
				h.text(f.Name)
				h.raw(`" value="`)
				h.text(value)
				h.raw(`"`)
				if f.Type == "number" {
					h.raw(` step="any"`)
				}
				if f.Required {
					h.raw(` required`)
				}
				h.raw(`>`)
			}
			h.raw(`</label>`)
		}

		h.raw(`<p><button type="submit">Generate bill</button> `)
		h.raw(`<button type="submit" formaction="/bills/preview">Preview JSON</button></p>`)
		h.raw(`</form>`)
		h.raw(`<p class="no-print"><a href="/bills/runs">Previous runs</a></p>`)
		return h.err
	})
}

// BillRunItem is one row of the run history.
type BillRunItem struct {
	ID          string
	Created     string
	AgreementNo string
	WorkName    string
	BillSerial  string
	Payable     string
	Warnings    int
}

// BillRunsPage lists earlier bill runs, newest first.
func BillRunsPage(runs []BillRunItem) templ.Component {
	return Page("Bill Runs", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Bill Runs</h1>`)
		if len(runs) == 0 {
			h.raw(`<p>No bills generated yet.</p>`)
		} else {
			h.raw(`<table><thead><tr><th>Run</th><th>Created</th><th>Agreement No.</th><th>Name of Work</th><th>Bill Serial</th><th>Payable</th><th>Warnings</th></tr></thead><tbody>`)
			for _, r := range runs {
				h.raw(`<tr><td>`)
				h.text(r.ID)
				h.raw(`</td><td>`)
				h.text(r.Created)
				h.raw(`</td><td>`)
				h.text(r.AgreementNo)
				h.raw(`</td><td>`)
				h.text(r.WorkName)
				h.raw(`</td><td>`)
				h.text(r.BillSerial)
				h.raw(`</td><td class="num">`)
				h.text(r.Payable)
				h.raw(`</td><td class="num">`)
				if r.Warnings > 0 {
					h.raw(`<span class="warning">`)
					h.text(strconv.Itoa(r.Warnings))
					h.raw(`</span>`)
				} else {
					h.raw(`0`)
				}
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`<p><a href="/">New bill</a></p>`)
		return h.err
	}))
}
