package main

import (
	"flag"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	"stock_dashboard/internal/config"
	quoteshandler "stock_dashboard/internal/feature/quotes/transport/handler"
	quotesusecase "stock_dashboard/internal/feature/quotes/usecase"
	symbolshandler "stock_dashboard/internal/feature/symbols/transport/handler"
	"stock_dashboard/internal/platform/cache"
	infraredis "stock_dashboard/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Provider.APIKey == "" {
		log.Println("[WARN] TWELVE_DATA_API_KEY is not set. Provider requests will be rejected.")
	}

	// Redis（任意。使えない場合はキャッシュなしで動作する）
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr != "" {
		if tmp, err := infraredis.NewRedisClient(addr, cfg.Redis.Password); err != nil {
			log.Println("[WARN] Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	marketRepo := di.NewMarket(cfg)

	// Redisキャッシュでラップ（銘柄リスト＋日付範囲ごとにメモ化）
	cachedMarketRepo := cache.NewCachingMarketRepository(rdb, cfg.CacheTTL(), marketRepo, "quotes")

	// Usecase
	dashboardUC := quotesusecase.NewDashboardUsecase(cachedMarketRepo)

	// Handler
	dashboardH := quoteshandler.NewDashboardHandler(dashboardUC)
	symbolsH := symbolshandler.NewSymbolHandler(cfg.Dashboard.DefaultSymbols)

	// ルータ生成
	r := router.NewRouter(dashboardH, symbolsH)

	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
