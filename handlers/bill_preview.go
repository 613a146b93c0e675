package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgenerator/billing"
)

// billPreview is the JSON view of a computed bill.
type billPreview struct {
	Documents   map[string]any       `json:"documents"`
	Diagnostics []billing.Diagnostic `json:"diagnostics"`
}

// HandleBillPreview computes a bill and returns the document mappings as JSON
// without rendering or storing anything.
// Route: POST /bills/preview
func HandleBillPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := parseBillRequest(e)
		if err == nil {
			var res *billing.Result
			res, err = billing.Generate(req.Input, req.Config)
			if err == nil {
				logDiagnostics("bill_preview", res.Diagnostics)
				diags := res.Diagnostics
				if diags == nil {
					diags = []billing.Diagnostic{}
				}
				return e.JSON(http.StatusOK, billPreview{Documents: res.Documents(), Diagnostics: diags})
			}
		}

		log.Printf("bill_preview: %v", err)
		if isClientError(err) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute bill"})
	}
}
