package collections_test

import (
	"testing"

	"billgenerator/collections"
	"billgenerator/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	collections.BillRunsCollection,
	collections.BillRunDocumentsCollection,
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q was recreated: id %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_BillRunsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId(collections.BillRunsCollection)

	fields := []string{
		"run_id", "agreement_no", "work_name", "contractor_name", "bill_serial", "source_file",
		"grand_total", "payable", "premium_percent", "premium_type", "net_difference",
		"warnings", "diagnostics", "archive_name", "archive_size", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("bill_runs: missing field %q", f)
		}
	}

	if sf, ok := col.Fields.GetByName("premium_type").(*core.SelectField); ok {
		if len(sf.Values) != 2 || sf.Values[0] != "above" || sf.Values[1] != "below" {
			t.Errorf("premium_type values = %v", sf.Values)
		}
	} else {
		t.Errorf("premium_type field is not a SelectField")
	}
}

func TestSetup_DocumentsCascadeDeleteOnRun(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	res, cfg := testhelpers.SampleBill(t)

	run, err := collections.SaveBillRun(app, collections.BillRun{RunID: "run-1"}, res, cfg)
	if err != nil {
		t.Fatalf("SaveBillRun: %v", err)
	}
	doc, err := collections.FindRunDocument(app, run.Id, "certificate_data")
	if err != nil {
		t.Fatalf("FindRunDocument: %v", err)
	}

	if err := app.Delete(run); err != nil {
		t.Fatalf("failed to delete run: %v", err)
	}
	if _, err := app.FindRecordById(collections.BillRunDocumentsCollection, doc.Id); err == nil {
		t.Error("run document should have been cascade-deleted")
	}
}
