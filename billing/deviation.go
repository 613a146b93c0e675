package billing

import (
	"github.com/shopspring/decimal"
)

// DeviationItem compares one work-order line with what was executed.
// At most one of the excess and saving pairs is non-zero.
type DeviationItem struct {
	SerialNo    string  `json:"serial_no"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	QtyWO       float64 `json:"qty_wo"`
	Rate        float64 `json:"rate"`
	AmtWO       int64   `json:"amt_wo"`
	QtyBill     float64 `json:"qty_bill"`
	AmtBill     int64   `json:"amt_bill"`
	ExcessQty   float64 `json:"excess_qty"`
	ExcessAmt   int64   `json:"excess_amt"`
	SavingQty   float64 `json:"saving_qty"`
	SavingAmt   int64   `json:"saving_amt"`
}

// Net difference direction.
const (
	NetExcess = "excess"
	NetSaving = "saving"
	NetNil    = "nil"
)

// DeviationSummary aggregates the deviation columns. The premium is applied
// to each column separately, the way the statement prints it.
// NetDifference is GrandTotalExecuted - GrandTotalWorkOrder: positive means
// overall excess, negative overall saving.
type DeviationSummary struct {
	WorkOrderTotal int64   `json:"work_order_total"`
	ExecutedTotal  int64   `json:"executed_total"`
	OverallExcess  int64   `json:"overall_excess"`
	OverallSaving  int64   `json:"overall_saving"`
	Premium        Premium `json:"premium"`

	TenderPremiumWorkOrder int64 `json:"tender_premium_work_order"`
	TenderPremiumExecuted  int64 `json:"tender_premium_executed"`
	TenderPremiumExcess    int64 `json:"tender_premium_excess"`
	TenderPremiumSaving    int64 `json:"tender_premium_saving"`

	GrandTotalWorkOrder int64 `json:"grand_total_work_order"`
	GrandTotalExecuted  int64 `json:"grand_total_executed"`
	GrandTotalExcess    int64 `json:"grand_total_excess"`
	GrandTotalSaving    int64 `json:"grand_total_saving"`

	NetDifference        int64   `json:"net_difference"`
	NetDifferencePercent float64 `json:"net_difference_percent"`
	NetDifferenceKind    string  `json:"net_difference_kind"`
}

// Deviation is the full deviation statement.
type Deviation struct {
	Items   []DeviationItem
	Summary DeviationSummary
}

// AnalyzeDeviation walks the same work-order rows as BuildLineItems and
// compares ordered and billed quantities.
func AnalyzeDeviation(wo, bq Grid, p Premium) (Deviation, []Diagnostic) {
	results := mapRows(WorkOrderFirstRow, wo.Len(), func(row int) rowResult[DeviationItem] {
		return deviationItem(wo, bq, row)
	})
	items, diags := collect(results)

	// Partial sums are combined only after every row is done.
	var s DeviationSummary
	for _, it := range items {
		s.WorkOrderTotal += it.AmtWO
		s.ExecutedTotal += it.AmtBill
		s.OverallExcess += it.ExcessAmt
		s.OverallSaving += it.SavingAmt
	}
	s.Premium = p
	s.TenderPremiumWorkOrder, s.GrandTotalWorkOrder = p.Apply(s.WorkOrderTotal)
	s.TenderPremiumExecuted, s.GrandTotalExecuted = p.Apply(s.ExecutedTotal)
	s.TenderPremiumExcess, s.GrandTotalExcess = p.Apply(s.OverallExcess)
	s.TenderPremiumSaving, s.GrandTotalSaving = p.Apply(s.OverallSaving)

	s.NetDifference = s.GrandTotalExecuted - s.GrandTotalWorkOrder
	if s.WorkOrderTotal != 0 {
		s.NetDifferencePercent = decimal.NewFromInt(s.NetDifference).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(s.WorkOrderTotal)).
			Round(2).
			InexactFloat64()
	}
	switch {
	case s.NetDifference > 0:
		s.NetDifferenceKind = NetExcess
	case s.NetDifference < 0:
		s.NetDifferenceKind = NetSaving
	default:
		s.NetDifferenceKind = NetNil
	}

	return Deviation{Items: items, Summary: s}, diags
}

func deviationItem(wo, bq Grid, row int) rowResult[DeviationItem] {
	qtyWO, woDiag := readNumber(wo, SourceWorkOrder, row, woColQuantity)
	rate, rateDiag := readNumber(wo, SourceWorkOrder, row, woColRate)
	qtyBill, billDiag := readNumber(bq, SourceBillQuantity, row, bqColQuantity)

	res := rowResult[DeviationItem]{diags: compact(woDiag, rateDiag, billDiag)}
	if rateDiag != nil && woDiag != nil && billDiag != nil {
		res.diags = append(res.diags, rowDropped(SourceWorkOrder, row))
		return res
	}

	qtyWO, amtWO, woAmtDiag := rowAmount(SourceWorkOrder, row, woColQuantity, qtyWO, rate)
	qtyBill, amtBill, billAmtDiag := rowAmount(SourceBillQuantity, row, bqColQuantity, qtyBill, rate)
	res.diags = append(res.diags, compact(woAmtDiag, billAmtDiag)...)

	it := DeviationItem{
		SerialNo:    wo.Text(row, woColSerial),
		Description: wo.Text(row, woColDescription),
		Unit:        wo.Text(row, woColUnit),
		QtyWO:       qtyWO.InexactFloat64(),
		Rate:        rate.InexactFloat64(),
		AmtWO:       amtWO,
		QtyBill:     qtyBill.InexactFloat64(),
		AmtBill:     amtBill,
	}
	// Both amounts are capped, so the difference fits without a second check.
	switch diff := qtyBill.Sub(qtyWO); {
	case diff.IsPositive():
		it.ExcessQty = diff.InexactFloat64()
		it.ExcessAmt = diff.Mul(rate).Round(0).IntPart()
	case diff.IsNegative():
		it.SavingQty = diff.Neg().InexactFloat64()
		it.SavingAmt = diff.Neg().Mul(rate).Round(0).IntPart()
	}

	res.keep = true
	res.value = it
	return res
}
