// Package csvexport serializes tidy tables as comma-separated values for the
// dashboard's download action and the export CLI.
package csvexport

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// Write serializes table to w with a header row. A multi-symbol export
// carries a Symbol column; a single-symbol export omits it. NaN prices are
// written as empty fields.
func Write(w io.Writer, table entity.TidyTable, multi bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Open", "High", "Low", "Close", "Volume"}
	if multi {
		header = []string{"Date", "Symbol", "Open", "High", "Low", "Close", "Volume"}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range table {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.Date.UTC().Format("2006-01-02"))
		if multi {
			rec = append(rec, row.Symbol)
		}
		rec = append(rec,
			formatPrice(row.Open),
			formatPrice(row.High),
			formatPrice(row.Low),
			formatPrice(row.Close),
			strconv.FormatInt(row.Volume, 10),
		)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the download filename for the given request:
// "<SYMBOL>_stock_data.csv" for one symbol, "multi_stock_data.csv" otherwise.
func Filename(symbols []string) string {
	if len(symbols) == 1 {
		return symbols[0] + "_stock_data.csv"
	}
	return "multi_stock_data.csv"
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
