// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"billgenerator/billing"
	"billgenerator/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SampleConfig matches SampleWorkbook: 10% above, 300 paid on the last bill.
func SampleConfig() billing.Config {
	return billing.Config{
		PremiumPercent:     10,
		PremiumType:        billing.PremiumAbove,
		AmountPaidLastBill: 300,
		StartDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CompletionDate:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		WorkOrderAmount:    1250,
		BillSerial:         "First & Final",
	}
}

// SampleFormValues is SampleConfig as raw form values.
func SampleFormValues() map[string]string {
	return map[string]string{
		"start_date":            "2025-01-10",
		"completion_date":       "2025-06-30",
		"work_order_amount":     "1250",
		"premium_percent":       "10",
		"premium_type":          "above",
		"amount_paid_last_bill": "300",
		"is_first_bill":         "no",
		"bill_serial":           "First & Final",
	}
}

// SampleBill computes the bill described by SampleWorkbookSpec.
func SampleBill(t *testing.T) (*billing.Result, billing.Config) {
	t.Helper()

	spec := SampleWorkbookSpec()
	wo := make(billing.Grid, billing.WorkOrderFirstRow)
	for r, line := range spec.Header {
		wo[r] = line
	}
	bq := make(billing.Grid, billing.WorkOrderFirstRow)
	for _, it := range spec.Items {
		wo = append(wo, []any{it.Serial, it.Description, it.Unit, it.Qty, it.Rate, nil, ""})
		bq = append(bq, []any{it.Serial, it.Description, it.Unit, it.Billed})
	}
	extra := make(billing.Grid, billing.ExtraItemsFirstRow)
	for _, it := range spec.Extras {
		extra = append(extra, []any{it.Serial, "", it.Description, it.Qty, it.Unit, it.Rate})
	}

	cfg := SampleConfig()
	res, err := billing.Generate(billing.Input{WorkOrder: wo, BillQuantity: bq, ExtraItems: extra}, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res, cfg
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
