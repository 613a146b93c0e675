package handlers

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgenerator/templates"
)

// defaultFormValues preselects the form for a running bill at tender rates.
var defaultFormValues = map[string]string{
	"premium_type":          "above",
	"premium_percent":       "0",
	"amount_paid_last_bill": "0",
	"is_first_bill":         "no",
}

// HandleBillForm renders the upload form.
// Route: GET /
func HandleBillForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		values := make(map[string]string, len(defaultFormValues))
		for k, v := range defaultFormValues {
			values[k] = v
		}
		data := templates.BillFormData{Values: values}

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.BillFormContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.BillFormPage(data).Render(e.Request.Context(), e.Response)
	}
}
