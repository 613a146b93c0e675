package billing

import (
	"testing"
)

func TestBuildCertificate(t *testing.T) {
	tests := []struct {
		name        string
		payable     int64
		paid        int64
		firstBill   bool
		wantPaid    int64
		wantBalance int64
	}{
		{"running_bill", 880, 300, false, 300, 580},
		{"first_bill_ignores_paid", 880, 300, true, 0, 880},
		{"nothing_paid", 1500, 0, false, 0, 1500},
		{"overpaid", 500, 800, false, 800, -300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCertificate(tt.payable, tt.paid, tt.firstBill)
			if got.PayableAmount != tt.payable || got.TotalValue != tt.payable {
				t.Errorf("payable/total = %d/%d, want %d", got.PayableAmount, got.TotalValue, tt.payable)
			}
			if got.AmountPaidLastBill != tt.wantPaid {
				t.Errorf("AmountPaidLastBill = %d, want %d", got.AmountPaidLastBill, tt.wantPaid)
			}
			if got.Balance != tt.wantBalance || got.PaymentNow != tt.wantBalance || got.ByCheque != tt.wantBalance {
				t.Errorf("balance/now/cheque = %d/%d/%d, want %d", got.Balance, got.PaymentNow, got.ByCheque, tt.wantBalance)
			}
			if got.TotalRecovery != 0 {
				t.Errorf("TotalRecovery = %d, want 0", got.TotalRecovery)
			}
			if len(got.Items) != 3 {
				t.Fatalf("got %d certificate items, want 3", len(got.Items))
			}
			if got.Items[0].Value != tt.payable || got.Items[1].Value != tt.wantPaid || got.Items[2].Value != tt.wantBalance {
				t.Errorf("item values = %d/%d/%d", got.Items[0].Value, got.Items[1].Value, got.Items[2].Value)
			}
			if got.Items[0].Percentage != "100%" || got.Items[1].Percentage != "-" {
				t.Errorf("unexpected percentages: %+v", got.Items)
			}
		})
	}
}
