// Package usecase はダッシュボード向けの株価データ整形ロジックを実装します。
package usecase

import (
	"math"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// Shape flattens a fetch result into a tidy table. symbols must be non-empty
// and is the list the fetch was made with, in request order.
//
// For a single-symbol result the one series is returned tagged with
// symbols[0]. For a multi-symbol result the series are concatenated in
// symbols order, each row tagged with its symbol; a symbol that was requested
// but is absent from the result (for example an invalid ticker rejected
// upstream) contributes zero rows and is not an error.
//
// Shape never reorders dates within a symbol and never invents or drops rows.
// It is a pure function of its inputs.
func Shape(raw entity.FetchResult, symbols []string) entity.TidyTable {
	if !raw.IsMulti() {
		out := make(entity.TidyTable, 0, len(raw.Single))
		for _, c := range raw.Single {
			c.Symbol = symbols[0]
			out = append(out, c)
		}
		return out
	}

	n := 0
	for _, sym := range symbols {
		n += len(raw.Multi[sym])
	}
	out := make(entity.TidyTable, 0, n)
	for _, sym := range symbols {
		series, ok := raw.Multi[sym]
		if !ok {
			continue
		}
		for _, c := range series {
			c.Symbol = sym
			out = append(out, c)
		}
	}
	return out
}

// MovingAverage computes the trailing simple moving average of Close over
// the given window. The value at index i is the mean of Close for indices
// i-window+1..i inclusive; positions with an incomplete window (i < window-1)
// are NaN. A NaN close anywhere in a window makes that window's average NaN,
// which is plain floating-point propagation, not an error.
func MovingAverage(series entity.Series, window int) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += series[j].Close
		}
		out[i] = sum / float64(window)
	}
	return out
}
