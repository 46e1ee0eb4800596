// Package dto defines data transfer objects for the quotes HTTP endpoints.
package dto

// CandleRow is one tidy-table row in the dashboard response. Price fields
// are pointers so a source gap (NaN) serializes as null.
type CandleRow struct {
	Date   string   `json:"date"`   // 日付
	Symbol string   `json:"symbol"` // 銘柄コード
	Open   *float64 `json:"open"`   // 始値
	High   *float64 `json:"high"`   // 高値
	Low    *float64 `json:"low"`    // 安値
	Close  *float64 `json:"close"`  // 終値
	Volume int64    `json:"volume"` // 出来高
}

// MovingAveragePoint is one point of the moving-average overlay. Value is
// null where the trailing window is incomplete.
type MovingAveragePoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// DashboardResponse is the JSON body for GET /dashboard.
type DashboardResponse struct {
	Symbols       []string             `json:"symbols"`
	Rows          []CandleRow          `json:"rows"`
	MovingAverage []MovingAveragePoint `json:"moving_average,omitempty"`
}

// PromptResponse is returned when the normalized symbol list is empty. Not
// an error: the client shows the prompt and waits for input.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}
