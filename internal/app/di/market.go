// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_dashboard/internal/config"
	"stock_dashboard/internal/platform/externalapi/twelvedata"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client and
// rate limiter from the application config.
func NewMarket(cfg *config.Config) *twelvedata.TwelveDataMarket {
	tdCfg := twelvedata.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.ProviderTimeout(),
	}
	httpClient := infrahttp.NewHTTPClient(tdCfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.Provider.RateLimitPerMinute, time.Minute)
	return twelvedata.NewTwelveDataMarket(tdCfg, httpClient, limiter)
}
