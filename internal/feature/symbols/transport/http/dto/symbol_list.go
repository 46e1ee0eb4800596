// Package dto defines data transfer objects for the symbols HTTP endpoints.
package dto

// SymbolListResponse はデフォルト銘柄リストのレスポンスDTOです。
type SymbolListResponse struct {
	Symbols []string `json:"symbols"`
}
