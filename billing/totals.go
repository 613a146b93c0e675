package billing

import (
	"github.com/shopspring/decimal"
)

// PremiumType says whether the tender premium is added to or deducted from
// the base amount.
type PremiumType string

const (
	PremiumAbove PremiumType = "above"
	PremiumBelow PremiumType = "below"
)

// Premium is the tender premium. Percent is a plain percentage (10 means 10%).
type Premium struct {
	Percent float64     `json:"percent"`
	Type    PremiumType `json:"type"`
}

// Apply returns round(base * percent/100) and the premium-inclusive total.
// The amount is always a magnitude; the sign comes from the type.
func (p Premium) Apply(base int64) (amount, total int64) {
	amount = decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(p.Percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if p.Type == PremiumBelow {
		return amount, base - amount
	}
	return amount, base + amount
}

// PremiumAmount is a premium together with the amount it produced.
type PremiumAmount struct {
	Percent float64     `json:"percent"`
	Type    PremiumType `json:"type"`
	Amount  int64       `json:"amount"`
}

// BillTotals are the money figures of the contractor's bill.
type BillTotals struct {
	GrandTotal int64         `json:"grand_total"`
	Premium    PremiumAmount `json:"premium"`
	Payable    int64         `json:"payable"`

	// Extra items reconcile on their own: base sum, its premium and the
	// premium-inclusive figure.
	ExtraItemsSum     int64 `json:"extra_items_sum"`
	ExtraItemsPremium int64 `json:"extra_items_premium"`
	ExtraItemsPayable int64 `json:"extra_items_payable"`
}

// ComputeTotals sums non-divider amounts and applies the premium. Items after
// the first divider are also summed on their own. Without a divider the
// extra-items figures stay zero and a structural diagnostic is returned.
func ComputeTotals(items []LineItem, p Premium) (BillTotals, []Diagnostic) {
	var grand int64
	divider := -1
	for i, it := range items {
		if it.IsDivider {
			if divider < 0 {
				divider = i
			}
			continue
		}
		grand += it.Amount
	}

	premium, payable := p.Apply(grand)
	totals := BillTotals{
		GrandTotal: grand,
		Premium:    PremiumAmount{Percent: p.Percent, Type: p.Type, Amount: premium},
		Payable:    payable,
	}

	if divider < 0 {
		return totals, []Diagnostic{structural("", "extra items divider not found; extra items subtotal set to 0")}
	}

	var extra int64
	for _, it := range items[divider+1:] {
		if !it.IsDivider {
			extra += it.Amount
		}
	}
	totals.ExtraItemsSum = extra
	totals.ExtraItemsPremium, totals.ExtraItemsPayable = p.Apply(extra)

	return totals, nil
}
