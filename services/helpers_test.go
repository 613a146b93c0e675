package services

import (
	"bytes"
	"testing"
	"time"

	"billgenerator/billing"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// sampleResult computes a small bill: two work-order items, one extra item,
// 10% above premium.
func sampleResult(t *testing.T) *billing.Result {
	t.Helper()

	wo := make(billing.Grid, billing.WorkOrderFirstRow)
	wo[0] = []any{"Agreement No.", "48/2024-25"}
	wo[1] = []any{"Name of Work", "Electrification of school building"}
	wo = append(wo,
		[]any{"1", "Wiring", "Nos", 10, 100, nil, ""},
		[]any{"2", "Fan point", "Nos", 5, 50, nil, "=cmd"},
	)
	bq := make(billing.Grid, billing.WorkOrderFirstRow)
	bq = append(bq, []any{nil, nil, nil, 12}, []any{nil, nil, nil, 3})
	extra := make(billing.Grid, billing.ExtraItemsFirstRow)
	extra = append(extra, []any{"E1", "", "LED fitting", 2, "Nos", 75})

	cfg := billing.Config{
		PremiumPercent:     10,
		PremiumType:        billing.PremiumAbove,
		AmountPaidLastBill: 300,
		StartDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CompletionDate:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		WorkOrderAmount:    1250,
		ContractorName:     "M/s Shree Electricals",
	}

	res, err := billing.Generate(billing.Input{WorkOrder: wo, BillQuantity: bq, ExtraItems: extra}, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}
