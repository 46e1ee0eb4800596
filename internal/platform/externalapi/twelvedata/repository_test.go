package twelvedata

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var (
	testStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
)

func TestNewTwelveDataMarket(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIKey:  "test-key",
		BaseURL: "https://api.test.com",
		Timeout: 10 * time.Second,
	}
	client := &http.Client{}

	market := NewTwelveDataMarket(cfg, client, nil)

	if market == nil {
		t.Fatal("expected non-nil market")
	}
	if market.cfg.APIKey != cfg.APIKey {
		t.Errorf("expected API key %q, got %q", cfg.APIKey, market.cfg.APIKey)
	}
}

func TestTwelveDataMarket_FetchTimeSeries_Single(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("interval") != "1day" {
			t.Errorf("expected interval 1day, got %s", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("start_date") != "2023-01-01" {
			t.Errorf("expected start_date 2023-01-01, got %s", r.URL.Query().Get("start_date"))
		}
		if r.URL.Query().Get("end_date") != "2023-01-31" {
			t.Errorf("expected end_date 2023-01-31, got %s", r.URL.Query().Get("end_date"))
		}
		w.Header().Set("Content-Type", "application/json")
		// Twelve Data returns values newest first
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"symbol": "AAPL",
			"interval": "1day",
			"values": [
				{
					"datetime": "2023-01-04",
					"open": "126.89",
					"high": "128.66",
					"low": "125.08",
					"close": "126.36",
					"volume": "89113600"
				},
				{
					"datetime": "2023-01-03",
					"open": "130.28",
					"high": "130.90",
					"low": "124.17",
					"close": "125.07",
					"volume": "112117500"
				}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	market := NewTwelveDataMarket(cfg, server.Client(), nil)

	raw, err := market.FetchTimeSeries(context.Background(), []string{"AAPL"}, testStart, testEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw.IsMulti() {
		t.Fatal("expected a single result for a one-symbol request")
	}
	if len(raw.Single) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(raw.Single))
	}
	// Dates must come back ascending regardless of provider order
	if !raw.Single[0].Date.Before(raw.Single[1].Date) {
		t.Errorf("expected ascending dates, got %v then %v", raw.Single[0].Date, raw.Single[1].Date)
	}
	if raw.Single[0].Close != 125.07 {
		t.Errorf("expected close 125.07, got %f", raw.Single[0].Close)
	}
	if raw.Single[1].Volume != 89113600 {
		t.Errorf("expected volume 89113600, got %d", raw.Single[1].Volume)
	}
}

func TestTwelveDataMarket_FetchTimeSeries_Multi(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "AAPL,ZZZZ" {
			t.Errorf("expected symbol AAPL,ZZZZ, got %s", r.URL.Query().Get("symbol"))
		}
		w.Header().Set("Content-Type", "application/json")
		// ZZZZ is an invalid ticker: the provider reports a per-symbol error
		_, _ = w.Write([]byte(`{
			"AAPL": {
				"status": "ok",
				"symbol": "AAPL",
				"interval": "1day",
				"values": [
					{"datetime": "2023-01-03", "open": "130.28", "high": "130.90", "low": "124.17", "close": "125.07", "volume": "112117500"}
				]
			},
			"ZZZZ": {
				"status": "error",
				"message": "symbol not found"
			}
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	market := NewTwelveDataMarket(cfg, server.Client(), nil)

	raw, err := market.FetchTimeSeries(context.Background(), []string{"AAPL", "ZZZZ"}, testStart, testEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !raw.IsMulti() {
		t.Fatal("expected a multi result for a two-symbol request")
	}
	if len(raw.Multi["AAPL"]) != 1 {
		t.Fatalf("expected 1 AAPL candle, got %d", len(raw.Multi["AAPL"]))
	}
	// The invalid ticker is silently omitted, not an error
	if _, ok := raw.Multi["ZZZZ"]; ok {
		t.Error("expected ZZZZ to be omitted from the result")
	}
}

func TestTwelveDataMarket_FetchTimeSeries_MissingPriceIsNaN(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"symbol": "AAPL",
			"interval": "1day",
			"values": [
				{"datetime": "2023-01-03", "open": "130.28", "high": "130.90", "low": "124.17", "close": "", "volume": "112117500"}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	market := NewTwelveDataMarket(cfg, server.Client(), nil)

	raw, err := market.FetchTimeSeries(context.Background(), []string{"AAPL"}, testStart, testEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(raw.Single[0].Close) {
		t.Errorf("expected NaN close for a source gap, got %v", raw.Single[0].Close)
	}
}

func TestTwelveDataMarket_FetchTimeSeries_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			cfg := Config{APIKey: "test-key", BaseURL: server.URL}
			market := NewTwelveDataMarket(cfg, server.Client(), nil)

			_, err := market.FetchTimeSeries(context.Background(), []string{"AAPL"}, testStart, testEnd)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "twelvedata http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestTwelveDataMarket_FetchTimeSeries_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "error",
			"message": "Invalid API key"
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "invalid-key", BaseURL: server.URL}
	market := NewTwelveDataMarket(cfg, server.Client(), nil)

	_, err := market.FetchTimeSeries(context.Background(), []string{"AAPL"}, testStart, testEnd)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestTwelveDataMarket_FetchTimeSeries_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{invalid json`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL}
	market := NewTwelveDataMarket(cfg, server.Client(), nil)

	_, err := market.FetchTimeSeries(context.Background(), []string{"AAPL"}, testStart, testEnd)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
