package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/config"
	"stock_dashboard/internal/feature/quotes/csvexport"
	"stock_dashboard/internal/feature/quotes/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	symbolsFlag := flag.String("symbols", "", "comma-separated ticker symbols (e.g. AAPL,MSFT)")
	startFlag := flag.String("start", "", "start date (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "end date (YYYY-MM-DD)")
	outFlag := flag.String("o", "", "output file (defaults to the dashboard download filename)")
	flag.Parse()

	symbols := usecase.ParseSymbols(*symbolsFlag)
	if len(symbols) == 0 {
		log.Println("enter at least one stock symbol (-symbols AAPL,MSFT)")
		return
	}

	start, err := time.Parse("2006-01-02", *startFlag)
	if err != nil {
		log.Fatal("invalid start date:", err)
	}
	end, err := time.Parse("2006-01-02", *endFlag)
	if err != nil {
		log.Fatal("invalid end date:", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	marketRepo := di.NewMarket(cfg)
	uc := usecase.NewDashboardUsecase(marketRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	table, err := uc.GetTable(ctx, symbols, start, end)
	if err != nil {
		log.Fatal("failed to fetch stock data:", err)
	}

	out := *outFlag
	if out == "" {
		out = csvexport.Filename(symbols)
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("[ERROR] Failed to close output file:", err)
		}
	}()

	if err := csvexport.Write(f, table, len(symbols) > 1); err != nil {
		log.Fatal(err)
	}
	log.Printf("export ok: %d rows -> %s", len(table), out)
}
