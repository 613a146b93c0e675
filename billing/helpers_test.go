package billing

import "math"

// sheet builds a grid whose first data row sits at index first.
func sheet(first int, rows ...[]any) Grid {
	g := make(Grid, first, first+len(rows))
	return append(g, rows...)
}

// woRow is a work-order row: serial, description, unit, ordered qty, rate, -, remark.
func woRow(serial, desc string, qty, rate any) []any {
	return []any{serial, desc, "Nos", qty, rate, nil, ""}
}

// bqRow is a bill-quantity row with the executed quantity in column D.
func bqRow(qty any) []any {
	return []any{nil, nil, nil, qty}
}

// exRow is an extra-items row: serial, remark, description, qty, unit, rate.
func exRow(serial, desc string, qty, rate any) []any {
	return []any{serial, "", desc, qty, "Nos", rate}
}

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
