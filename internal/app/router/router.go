package router

import (
	"github.com/gin-gonic/gin"

	quoteshandler "stock_dashboard/internal/feature/quotes/transport/handler"
	symbolshandler "stock_dashboard/internal/feature/symbols/transport/handler"
	platformhandler "stock_dashboard/internal/platform/http/handler"
)

func NewRouter(dashboard *quoteshandler.DashboardHandler, symbols *symbolshandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 入力欄の初期値となるデフォルト銘柄
	r.GET("/symbols", symbols.List)
	// 整形済みテーブルと移動平均
	r.GET("/dashboard", dashboard.GetDashboardHandler)
	// CSVダウンロード
	r.GET("/dashboard/export", dashboard.ExportCSVHandler)

	return r
}
