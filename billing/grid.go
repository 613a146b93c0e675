package billing

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ErrMissingSheet is returned by readers when a required grid is absent or
// has no usable rows.
var ErrMissingSheet = errors.New("missing sheet")

// Grid is an untyped row/column table as handed over by a tabular reader.
// Cells may be nil, strings, numbers or time values. A nil Grid is a
// missing sheet.
type Grid [][]any

// Len returns the number of rows.
func (g Grid) Len() int {
	return len(g)
}

// Cell returns the value at (row, col), or nil when the coordinates fall
// outside the grid.
func (g Grid) Cell(row, col int) any {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return nil
	}
	return g[row][col]
}

// Text returns the cell as display text. Whole floats lose their trailing
// ".0" and dates are rendered dd-mm-yyyy.
func (g Grid) Text(row, col int) string {
	switch v := g.Cell(row, col).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.Format(DateLayout)
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(cast.ToString(v))
	}
}

// Block copies the top-left rows x cols block as text.
func (g Grid) Block(rows, cols int) [][]string {
	n := rows
	if len(g) < n {
		n = len(g)
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		line := make([]string, cols)
		for c := 0; c < cols; c++ {
			line[c] = g.Text(r, c)
		}
		out[r] = line
	}
	return out
}

// columnLetter converts a zero-based column index to spreadsheet letters.
func columnLetter(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}
