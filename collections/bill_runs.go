package collections

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"billgenerator/billing"
)

// Collection names.
const (
	BillRunsCollection         = "bill_runs"
	BillRunDocumentsCollection = "bill_run_documents"
)

// BillRun is the history entry written after every generated bill.
type BillRun struct {
	RunID       string
	SourceFile  string
	ArchiveName string
	ArchiveSize int
}

// SaveBillRun stores a run summary and one payload record per document.
func SaveBillRun(app *pocketbase.PocketBase, run BillRun, res *billing.Result, cfg billing.Config) (*core.Record, error) {
	runs, err := app.FindCollectionByNameOrId(BillRunsCollection)
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	docs, err := app.FindCollectionByNameOrId(BillRunDocumentsCollection)
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}

	record := core.NewRecord(runs)
	record.Set("run_id", run.RunID)
	record.Set("agreement_no", res.NoteSheet.AgreementNo)
	record.Set("work_name", res.NoteSheet.NameOfWork)
	record.Set("contractor_name", res.NoteSheet.NameOfFirm)
	record.Set("bill_serial", cfg.BillSerial)
	record.Set("source_file", run.SourceFile)
	record.Set("grand_total", res.FirstPage.Totals.GrandTotal)
	record.Set("payable", res.FirstPage.Totals.Payable)
	record.Set("premium_percent", cfg.PremiumPercent)
	record.Set("premium_type", string(cfg.PremiumType))
	record.Set("net_difference", res.Deviation.Summary.NetDifference)
	record.Set("warnings", len(res.Diagnostics))
	record.Set("diagnostics", res.Diagnostics)
	record.Set("archive_name", run.ArchiveName)
	record.Set("archive_size", run.ArchiveSize)

	err = app.RunInTransaction(func(txApp core.App) error {
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save bill run: %w", err)
		}
		all := res.Documents()
		for i, name := range billing.DocumentNames {
			payload, err := json.Marshal(all[name])
			if err != nil {
				return fmt.Errorf("marshal %s: %w", name, err)
			}
			doc := core.NewRecord(docs)
			doc.Set("run", record.Id)
			doc.Set("name", name)
			doc.Set("sort_order", i)
			doc.Set("payload", types.JSONRaw(payload))
			if err := txApp.Save(doc); err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListBillRuns returns the most recent runs first.
func ListBillRuns(app *pocketbase.PocketBase, limit int) ([]*core.Record, error) {
	return app.FindRecordsByFilter(BillRunsCollection, "id != ''", "-created", limit, 0)
}

// FindBillRun looks a run up by its public run id.
func FindBillRun(app *pocketbase.PocketBase, runID string) (*core.Record, error) {
	return app.FindFirstRecordByFilter(BillRunsCollection, "run_id = {:runId}", dbx.Params{"runId": runID})
}

// FindRunDocument returns the stored payload of one document of a run.
func FindRunDocument(app *pocketbase.PocketBase, runRecordID, name string) (*core.Record, error) {
	return app.FindFirstRecordByFilter(BillRunDocumentsCollection, "run = {:run} && name = {:name}",
		dbx.Params{"run": runRecordID, "name": name})
}
