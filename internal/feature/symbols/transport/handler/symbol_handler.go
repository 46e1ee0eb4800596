// Package handler はsymbolsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/symbols/transport/http/dto"
)

// SymbolHandler serves the default symbol list the dashboard's input box is
// pre-filled with.
type SymbolHandler struct {
	defaults []string
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(defaults []string) *SymbolHandler {
	return &SymbolHandler{defaults: defaults}
}

// List はデフォルト銘柄の一覧をJSONで返します。
func (h *SymbolHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SymbolListResponse{Symbols: h.defaults})
}
