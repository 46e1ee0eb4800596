// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) data for one
// stock symbol on one trading date. Price fields may be NaN when the data
// source has a gap; NaN propagates through derived computations and is not
// an error.
type Candle struct {
	Symbol string    // Stock ticker symbol (e.g., "AAPL", "MSFT")
	Date   time.Time // Trading date of this candle
	Open   float64   // Opening price
	High   float64   // Highest price during the day
	Low    float64   // Lowest price during the day
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// Series is an ordered run of candles for a single symbol, strictly
// ascending by date with no duplicate dates.
type Series []Candle

// TidyTable is the shaper output: one row per (symbol, date) pair, grouped
// by symbol in request order and ascending by date within each group. Every
// row carries an explicit Symbol and Date.
type TidyTable []Candle

// FetchResult is the market-data provider's answer to a time-series request.
// It is a tagged variant: Single holds the series when the request named
// exactly one symbol, Multi maps symbol to series when it named several.
// Exactly one of the two is populated; use the constructors below.
//
// Multi must not be omitempty: an empty-but-non-nil map is still a
// multi-symbol result and has to survive a JSON round-trip through the cache.
type FetchResult struct {
	Single Series            `json:"single,omitempty"`
	Multi  map[string]Series `json:"multi"`
}

// SingleResult wraps a one-symbol series as a FetchResult.
func SingleResult(s Series) FetchResult {
	return FetchResult{Single: s}
}

// MultiResult wraps a symbol-to-series mapping as a FetchResult.
func MultiResult(m map[string]Series) FetchResult {
	return FetchResult{Multi: m}
}

// IsMulti reports whether the result came from a multi-symbol request.
func (r FetchResult) IsMulti() bool {
	return r.Multi != nil
}
