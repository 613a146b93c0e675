package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgenerator/billing"
	"billgenerator/collections"
	"billgenerator/services"
	"billgenerator/templates"
)

// runHistoryLimit caps the run list.
const runHistoryLimit = 100

// HandleBillRuns lists earlier runs, newest first.
// Route: GET /bills/runs
func HandleBillRuns(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := collections.ListBillRuns(app, runHistoryLimit)
		if err != nil {
			log.Printf("bill_runs: list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load bill runs")
		}

		items := make([]templates.BillRunItem, 0, len(records))
		for _, r := range records {
			items = append(items, templates.BillRunItem{
				ID:          r.GetString("run_id"),
				Created:     r.GetDateTime("created").Time().Format("02-01-2006 15:04"),
				AgreementNo: r.GetString("agreement_no"),
				WorkName:    r.GetString("work_name"),
				BillSerial:  r.GetString("bill_serial"),
				Payable:     services.FormatAmount(int64(r.GetInt("payable"))),
				Warnings:    r.GetInt("warnings"),
			})
		}
		return templates.BillRunsPage(items).Render(e.Request.Context(), e.Response)
	}
}

// HandleRunDocument returns the stored JSON mapping of one document of a run.
// Route: GET /bills/runs/{runId}/documents/{name}
func HandleRunDocument(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runID := e.Request.PathValue("runId")
		name := e.Request.PathValue("name")
		if !slices.Contains(billing.DocumentNames, name) {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "unknown document"})
		}

		run, err := collections.FindBillRun(app, runID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
		}
		doc, err := collections.FindRunDocument(app, run.Id, name)
		if err != nil {
			log.Printf("bill_runs: run %s has no %s: %v", runID, name, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
		}
		return e.JSON(http.StatusOK, doc.Get("payload"))
	}
}
