// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/api"
	"stock_dashboard/internal/feature/quotes/csvexport"
	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/transport/http/dto"
	"stock_dashboard/internal/feature/quotes/usecase"
)

const dateLayout = "2006-01-02"

// emptyInputPrompt は銘柄が1つも指定されなかったときに返すメッセージです。
const emptyInputPrompt = "enter at least one stock symbol"

// DashboardUsecase はダッシュボードデータ操作のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DashboardUsecase interface {
	GetDashboard(ctx context.Context, symbols []string, start, end time.Time, showMA bool) (*usecase.DashboardView, error)
	GetTable(ctx context.Context, symbols []string, start, end time.Time) (entity.TidyTable, error)
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler は指定されたusecaseでDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboardHandler は銘柄リストと日付範囲を受け取り、整形済みテーブルと
// （単一銘柄かつ ma=true の場合）移動平均をJSONで返します。
//
// エンドポイント例:
// GET /dashboard?symbols=AAPL,MSFT&start=2023-01-01&end=2023-06-30&ma=true
func (h *DashboardHandler) GetDashboardHandler(c *gin.Context) {
	symbols := usecase.ParseSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		// 銘柄未入力はエラーではなく、入力を促すだけ
		c.JSON(http.StatusOK, dto.PromptResponse{Prompt: emptyInputPrompt})
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	showMA := c.DefaultQuery("ma", "false") == "true"

	view, err := h.uc.GetDashboard(c.Request.Context(), symbols, start, end, showMA)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := dto.DashboardResponse{
		Symbols: view.Symbols,
		Rows:    make([]dto.CandleRow, 0, len(view.Rows)),
	}
	for _, r := range view.Rows {
		out.Rows = append(out.Rows, dto.CandleRow{
			Date:   r.Date.UTC().Format(dateLayout),
			Symbol: r.Symbol,
			Open:   jsonPrice(r.Open),
			High:   jsonPrice(r.High),
			Low:    jsonPrice(r.Low),
			Close:  jsonPrice(r.Close),
			Volume: r.Volume,
		})
	}
	for _, p := range view.MovingAverage {
		out.MovingAverage = append(out.MovingAverage, dto.MovingAveragePoint{
			Date:  p.Date.UTC().Format(dateLayout),
			Value: jsonPrice(p.Value),
		})
	}

	c.JSON(http.StatusOK, out)
}

// ExportCSVHandler は整形済みテーブルをCSVファイルとしてダウンロードさせます。
//
// エンドポイント例:
// GET /dashboard/export?symbols=AAPL&start=2023-01-01&end=2023-06-30
func (h *DashboardHandler) ExportCSVHandler(c *gin.Context) {
	symbols := usecase.ParseSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		c.JSON(http.StatusOK, dto.PromptResponse{Prompt: emptyInputPrompt})
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	table, err := h.uc.GetTable(c.Request.Context(), symbols, start, end)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.Filename(symbols)))
	c.Status(http.StatusOK)
	if err := csvexport.Write(c.Writer, table, len(symbols) > 1); err != nil {
		// ヘッダー送信後なのでステータスは変えられない
		slog.Warn("failed to write csv export", "error", err)
	}
}

// parseDateRange は start / end クエリパラメータを検証して返します。
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	return start, end, nil
}

// jsonPrice はNaN（欠損値）をJSONのnullとして表現するためのポインタ変換です。
func jsonPrice(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
