package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the bill_runs and
// bill_run_documents collections exist.
func Setup(app *pocketbase.PocketBase) {
	runs := ensureCollection(app, BillRunsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "run_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "agreement_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "work_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "contractor_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "bill_serial", Required: false})
		c.Fields.Add(&core.TextField{Name: "source_file", Required: false})
		c.Fields.Add(&core.NumberField{Name: "grand_total"})
		c.Fields.Add(&core.NumberField{Name: "payable"})
		c.Fields.Add(&core.NumberField{Name: "premium_percent"})
		c.Fields.Add(&core.SelectField{
			Name:      "premium_type",
			Required:  true,
			Values:    []string{"above", "below"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "net_difference"})
		c.Fields.Add(&core.NumberField{Name: "warnings"})
		c.Fields.Add(&core.JSONField{Name: "diagnostics", MaxSize: 1 << 20})
		c.Fields.Add(&core.TextField{Name: "archive_name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "archive_size"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, BillRunDocumentsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "run",
			Required:      true,
			CollectionId:  runs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.JSONField{Name: "payload", MaxSize: 5 << 20})
	})
}

// ensureCollection returns the named collection, creating it with the given
// fields when it does not exist yet.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
