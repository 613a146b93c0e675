package billing

import (
	"github.com/shopspring/decimal"
)

// Fixed sheet geometry. Row and column indexes are zero-based.
const (
	// HeaderRows x HeaderColumns is the descriptive block at the top of the
	// work-order sheet.
	HeaderRows    = 19
	HeaderColumns = 7

	// WorkOrderFirstRow is the first item row of the work-order and
	// bill-quantity sheets.
	WorkOrderFirstRow = 21
	// ExtraItemsFirstRow is the first item row of the extra-items sheet.
	ExtraItemsFirstRow = 6
)

// Work-order sheet columns.
const (
	woColSerial      = 0
	woColDescription = 1
	woColUnit        = 2
	woColQuantity    = 3
	woColRate        = 4
	woColRemark      = 6
)

// Bill-quantity sheet columns.
const (
	bqColQuantity = 3
)

// Extra-items sheet columns. Quantity and rate sit further right than on the
// work-order sheet, with the unit between them.
const (
	exColSerial      = 0
	exColRemark      = 1
	exColDescription = 2
	exColQuantity    = 3
	exColUnit        = 4
	exColRate        = 5
)

// ExtraItemsDivider is the description of the divider row that separates
// work-order items from extra items.
const ExtraItemsDivider = "Extra Items (With Premium)"

// LineItem is one row of the contractor's bill.
type LineItem struct {
	SerialNo    string  `json:"serial_no"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      int64   `json:"amount"`
	Remark      string  `json:"remark"`
	IsDivider   bool    `json:"is_divider"`
	Bold        bool    `json:"bold"`
	Underline   bool    `json:"underline"`
}

// LineItems holds the combined bill sequence and the extra items on their own.
type LineItems struct {
	// Items is work-order items, one divider, then extra items.
	Items []LineItem
	// ExtraItems is the same extra items, for the standalone schedule.
	ExtraItems []LineItem
}

// DividerItem returns the presentational row placed before extra items.
func DividerItem() LineItem {
	return LineItem{
		Description: ExtraItemsDivider,
		IsDivider:   true,
		Bold:        true,
		Underline:   true,
	}
}

// BuildLineItems pairs every work-order row with its billed quantity,
// appends the divider and then the extra items.
func BuildLineItems(wo, bq, extra Grid) (LineItems, []Diagnostic) {
	woRows := mapRows(WorkOrderFirstRow, wo.Len(), func(row int) rowResult[LineItem] {
		return workOrderItem(wo, bq, row)
	})
	exRows := mapRows(ExtraItemsFirstRow, extra.Len(), func(row int) rowResult[LineItem] {
		return extraItem(extra, row)
	})

	woItems, diags := collect(woRows)
	exItems, exDiags := collect(exRows)
	diags = append(diags, exDiags...)

	items := make([]LineItem, 0, len(woItems)+1+len(exItems))
	items = append(items, woItems...)
	items = append(items, DividerItem())
	items = append(items, exItems...)

	standalone := make([]LineItem, len(exItems))
	copy(standalone, exItems)

	return LineItems{Items: items, ExtraItems: standalone}, diags
}

func workOrderItem(wo, bq Grid, row int) rowResult[LineItem] {
	qty, qtyDiag := readNumber(bq, SourceBillQuantity, row, bqColQuantity)
	rate, rateDiag := readNumber(wo, SourceWorkOrder, row, woColRate)

	res := rowResult[LineItem]{diags: compact(qtyDiag, rateDiag)}
	if qtyDiag != nil && rateDiag != nil {
		res.diags = append(res.diags, rowDropped(SourceWorkOrder, row))
		return res
	}

	qty, amount, amtDiag := rowAmount(SourceBillQuantity, row, bqColQuantity, qty, rate)
	res.diags = append(res.diags, compact(amtDiag)...)

	res.keep = true
	res.value = newLineItem(
		wo.Text(row, woColSerial),
		wo.Text(row, woColDescription),
		wo.Text(row, woColUnit),
		wo.Text(row, woColRemark),
		qty, rate, amount,
	)
	return res
}

func extraItem(extra Grid, row int) rowResult[LineItem] {
	qty, qtyDiag := readNumber(extra, SourceExtraItems, row, exColQuantity)
	rate, rateDiag := readNumber(extra, SourceExtraItems, row, exColRate)

	res := rowResult[LineItem]{diags: compact(qtyDiag, rateDiag)}
	if qtyDiag != nil && rateDiag != nil {
		res.diags = append(res.diags, rowDropped(SourceExtraItems, row))
		return res
	}

	qty, amount, amtDiag := rowAmount(SourceExtraItems, row, exColQuantity, qty, rate)
	res.diags = append(res.diags, compact(amtDiag)...)

	res.keep = true
	res.value = newLineItem(
		extra.Text(row, exColSerial),
		extra.Text(row, exColDescription),
		extra.Text(row, exColUnit),
		extra.Text(row, exColRemark),
		qty, rate, amount,
	)
	return res
}

func newLineItem(serial, desc, unit, remark string, qty, rate decimal.Decimal, amount int64) LineItem {
	return LineItem{
		SerialNo:    serial,
		Description: desc,
		Unit:        unit,
		Quantity:    qty.InexactFloat64(),
		Rate:        rate.InexactFloat64(),
		Amount:      amount,
		Remark:      remark,
	}
}

func compact(diags ...*Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}
