package billing

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// rowResult is what one worker produces for one source row.
type rowResult[T any] struct {
	value T
	keep  bool
	diags []Diagnostic
}

// mapRows runs fn for every row in [from, to) on a bounded worker pool and
// returns the results in row order. Each worker writes only its own slot.
func mapRows[T any](from, to int, fn func(row int) rowResult[T]) []rowResult[T] {
	if to <= from {
		return nil
	}
	out := make([]rowResult[T], to-from)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for row := from; row < to; row++ {
		g.Go(func() error {
			out[row-from] = fn(row)
			return nil
		})
	}
	// Workers never return an error; Wait only joins them.
	_ = g.Wait()

	return out
}

// collect flattens row results, dropping rows that were skipped.
func collect[T any](results []rowResult[T]) ([]T, []Diagnostic) {
	values := make([]T, 0, len(results))
	var diags []Diagnostic
	for _, r := range results {
		diags = append(diags, r.diags...)
		if r.keep {
			values = append(values, r.value)
		}
	}
	return values, diags
}
