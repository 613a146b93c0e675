package billing

import (
	"fmt"
)

// DiagnosticKind classifies a recoverable problem found while computing a bill.
type DiagnosticKind string

const (
	// KindRowSkip marks an unparsable cell whose contribution was zeroed,
	// or a row dropped because none of its numeric cells could be read.
	KindRowSkip DiagnosticKind = "row_skip"
	// KindStructural marks a missing grid or divider; the affected subtotal
	// was defaulted to zero.
	KindStructural DiagnosticKind = "structural_degradation"
	// KindConversionFallback marks an amount that could not be written in
	// words and was printed as a numeral instead.
	KindConversionFallback DiagnosticKind = "conversion_fallback"
)

// Source names of the three input grids.
const (
	SourceWorkOrder    = "Work Order"
	SourceBillQuantity = "Bill Quantity"
	SourceExtraItems   = "Extra Items"
)

// Diagnostic is a warning surfaced to the caller. Rows are 1-based sheet rows.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Source  string         `json:"source,omitempty"`
	Row     int            `json:"row,omitempty"`
	Column  string         `json:"column,omitempty"`
	Raw     string         `json:"raw,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Row > 0 && d.Column != "":
		return fmt.Sprintf("%s %s%d: %s (%q)", d.Source, d.Column, d.Row, d.Message, d.Raw)
	case d.Row > 0:
		return fmt.Sprintf("%s row %d: %s", d.Source, d.Row, d.Message)
	case d.Source != "":
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	}
	return d.Message
}

func (d Diagnostic) key() string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", d.Kind, d.Source, d.Row, d.Column, d.Message)
}

func cellSkip(source string, row, col int, raw any, err error) Diagnostic {
	return Diagnostic{
		Kind:    KindRowSkip,
		Source:  source,
		Row:     row + 1,
		Column:  columnLetter(col),
		Raw:     fmt.Sprint(raw),
		Message: err.Error(),
	}
}

func rowDropped(source string, row int) Diagnostic {
	return Diagnostic{
		Kind:    KindRowSkip,
		Source:  source,
		Row:     row + 1,
		Message: "row skipped: quantity and rate both unreadable",
	}
}

func structural(source, msg string) Diagnostic {
	return Diagnostic{Kind: KindStructural, Source: source, Message: msg}
}

// dedupe keeps the first occurrence of every diagnostic, preserving order.
// The line-item and deviation passes read some of the same cells.
func dedupe(diags []Diagnostic) []Diagnostic {
	seen := make(map[string]bool, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		k := d.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}
