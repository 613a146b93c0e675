package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgenerator/billing"
	"billgenerator/collections"
	"billgenerator/services"
)

// HandleBillGenerate computes a bill from the uploaded workbook and returns
// every document as one ZIP archive. The run is recorded in bill_runs.
// Route: POST /bills/generate
func HandleBillGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := parseBillRequest(e)
		if err != nil {
			log.Printf("bill_generate: %v", err)
			return respondBillError(e, req.Values, err)
		}

		res, err := billing.Generate(req.Input, req.Config)
		if err != nil {
			log.Printf("bill_generate: %v", err)
			return respondBillError(e, req.Values, err)
		}
		logDiagnostics("bill_generate", res.Diagnostics)

		runID := uuid.NewString()
		base := archiveBaseName(res.NoteSheet.AgreementNo, req.Filename)
		bundle, err := services.RenderBill(e.Request.Context(), res, services.RenderOptions{
			MergePDF: true,
			BaseName: base,
		})
		if err != nil {
			log.Printf("bill_generate: run %s: render: %v", runID, err)
			return respondBillError(e, req.Values, err)
		}
		archive, err := bundle.Zip()
		if err != nil {
			log.Printf("bill_generate: run %s: zip: %v", runID, err)
			return respondBillError(e, req.Values, err)
		}
		archiveName := base + ".zip"

		run := collections.BillRun{
			RunID:       runID,
			SourceFile:  req.Filename,
			ArchiveName: archiveName,
			ArchiveSize: len(archive),
		}
		if _, err := collections.SaveBillRun(app, run, res, req.Config); err != nil {
			// The download still goes out; only the history entry is lost.
			log.Printf("bill_generate: run %s: save: %v", runID, err)
		}

		if n := len(res.Diagnostics); n > 0 {
			SetToast(e, "warning", fmt.Sprintf("Bill generated with %d warning(s)", n))
		}

		e.Response.Header().Set("Content-Type", "application/zip")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archiveName))
		e.Response.Header().Set("X-Bill-Run", runID)
		e.Response.Header().Set("X-Bill-Warnings", strconv.Itoa(len(res.Diagnostics)))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(archive)
		return err
	}
}

// archiveBaseName names the download after the agreement, falling back to
// the uploaded file name.
func archiveBaseName(agreementNo, filename string) string {
	name := sanitizeFilename(agreementNo)
	if name == "" {
		name = sanitizeFilename(strings.TrimSuffix(filename, filepath.Ext(filename)))
	}
	if name == "" {
		return "bill"
	}
	return "bill_" + name
}
