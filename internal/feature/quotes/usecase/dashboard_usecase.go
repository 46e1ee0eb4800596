package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// MAWindow はダッシュボードが重ねて表示する移動平均の日数です。
const MAWindow = 7

// MarketRepository は外部プロバイダから株価時系列を取得するリポジトリを抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// FetchTimeSeries は指定された銘柄と日付範囲のOHLCVデータを取得します。
	FetchTimeSeries(ctx context.Context, symbols []string, start, end time.Time) (entity.FetchResult, error)
}

// MovingAveragePoint pairs a trading date with its moving-average value.
// Value is NaN where the trailing window is incomplete.
type MovingAveragePoint struct {
	Date  time.Time
	Value float64
}

// DashboardView is everything one dashboard request renders from: the
// normalized symbols, the tidy table, and (single-symbol requests only, when
// asked for) the moving-average overlay aligned with the rows.
type DashboardView struct {
	Symbols       []string
	Rows          entity.TidyTable
	MovingAverage []MovingAveragePoint
}

// DashboardUsecase はダッシュボード1リクエスト分の取得・整形処理を定義します。
type DashboardUsecase struct {
	market MarketRepository
}

// NewDashboardUsecase は新しい DashboardUsecase を作成します。
func NewDashboardUsecase(market MarketRepository) *DashboardUsecase {
	return &DashboardUsecase{market: market}
}

// GetDashboard fetches the requested range, shapes it into a tidy table and,
// for a single-symbol request with showMA set, derives the moving-average
// overlay. symbols must be non-empty and already normalized (ParseSymbols).
// A fetch failure aborts the whole request; there is no partial result.
func (du *DashboardUsecase) GetDashboard(ctx context.Context, symbols []string, start, end time.Time, showMA bool) (*DashboardView, error) {
	raw, err := du.market.FetchTimeSeries(ctx, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch time series: %w", err)
	}

	rows := Shape(raw, symbols)
	view := &DashboardView{Symbols: symbols, Rows: rows}

	if showMA && len(symbols) == 1 {
		ma := MovingAverage(entity.Series(rows), MAWindow)
		pts := make([]MovingAveragePoint, len(rows))
		for i := range rows {
			pts[i] = MovingAveragePoint{Date: rows[i].Date, Value: ma[i]}
		}
		view.MovingAverage = pts
	}
	return view, nil
}

// GetTable fetches and shapes the requested range without any derived
// series. Used by the CSV export paths.
func (du *DashboardUsecase) GetTable(ctx context.Context, symbols []string, start, end time.Time) (entity.TidyTable, error) {
	raw, err := du.market.FetchTimeSeries(ctx, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch time series: %w", err)
	}
	return Shape(raw, symbols), nil
}

// ParseSymbols は入力欄のカンマ区切り文字列を銘柄リストに正規化します。
// 空白を取り除き、大文字に変換し、空の要素は捨てます。結果が空でも
// エラーではなく、呼び出し側が入力を促すプロンプトを表示します。
func ParseSymbols(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
