package billing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrUnparsable is returned by Normalize for cells that hold something other
// than a number, numeric text or a blank.
var ErrUnparsable = errors.New("not a number")

// Normalize coerces a raw cell into a number. Blank cells (nil, empty or
// whitespace-only text, NaN) are zero. Text may carry thousands separators.
func Normalize(raw any) (float64, error) {
	d, err := normalizeDecimal(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func normalizeDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case string:
		return parseNumericText(v)
	case []byte:
		return parseNumericText(string(v))
	case bool, time.Time:
		return decimal.Zero, fmt.Errorf("%w: unexpected %T", ErrUnparsable, raw)
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unexpected %T", ErrUnparsable, raw)
	}
	return fromFloat(f)
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) {
		return decimal.Zero, nil
	}
	if math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: infinite value", ErrUnparsable)
	}
	return decimal.NewFromFloat(f), nil
}

func parseNumericText(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}
	return d, nil
}

// ErrAmountOutOfRange is returned by amountOf when qty*rate exceeds maxAmount.
var ErrAmountOutOfRange = errors.New("amount out of range")

// maxAmount bounds one row amount in rupees (one lakh crore). Sums over a full
// worksheet of capped rows stay within int64.
const maxAmount = 1_000_000_000_000

// amountOf is round(qty*rate), half away from zero.
func amountOf(qty, rate decimal.Decimal) (int64, error) {
	if qty.IsZero() || rate.IsZero() {
		return 0, nil
	}
	d := qty.Mul(rate).Round(0)
	if d.Abs().GreaterThan(decimal.NewFromInt(maxAmount)) {
		return 0, fmt.Errorf("%w: %s x %s", ErrAmountOutOfRange, qty, rate)
	}
	return d.IntPart(), nil
}

// rowAmount is amountOf for a quantity read from (source, row, col). An
// amount out of range zeroes the quantity and comes back with a row-skip
// diagnostic on the quantity cell.
func rowAmount(source string, row, col int, qty, rate decimal.Decimal) (decimal.Decimal, int64, *Diagnostic) {
	amt, err := amountOf(qty, rate)
	if err != nil {
		diag := cellSkip(source, row, col, qty.String(), err)
		return decimal.Zero, 0, &diag
	}
	return qty, amt, nil
}

// readNumber normalizes one cell. An unusable cell reads as zero and comes
// back with a row-skip diagnostic.
func readNumber(g Grid, source string, row, col int) (decimal.Decimal, *Diagnostic) {
	raw := g.Cell(row, col)
	d, err := normalizeDecimal(raw)
	if err != nil {
		diag := cellSkip(source, row, col, raw, err)
		return decimal.Zero, &diag
	}
	return d, nil
}
