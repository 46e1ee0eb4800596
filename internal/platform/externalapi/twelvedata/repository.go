package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stock_dashboard/internal/feature/quotes/domain/entity"
	"stock_dashboard/internal/feature/quotes/usecase"
	"stock_dashboard/internal/platform/externalapi/twelvedata/dto"
	"stock_dashboard/internal/shared/ratelimiter"
)

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
// limiter が nil の場合はレートリミットを適用しません。
func NewTwelveDataMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client, limiter: limiter}
}

// FetchTimeSeries はTwelve Data APIから日足の時系列株価データを取得します。
// 銘柄が1つならSingle、複数ならMultiのFetchResultを返します。複数銘柄
// リクエストで個別の銘柄がエラー（無効なティッカーなど）になった場合、
// その銘柄は結果から黙って除外されます。
func (t *TwelveDataMarket) FetchTimeSeries(ctx context.Context, symbols []string, start, end time.Time) (entity.FetchResult, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", strings.Join(symbols, ","))
	q.Set("interval", "1day")
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("apikey", t.cfg.APIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	// 無料プランは1分あたりのAPIクレジットに上限がある
	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.FetchResult{}, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return entity.FetchResult{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.FetchResult{}, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return entity.FetchResult{}, err
	}

	// リクエスト全体のエラー（認証失敗、レートリミット超過など）を先に検出する
	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Status == "error" {
		return entity.FetchResult{}, fmt.Errorf("twelvedata: %s", envelope.Message)
	}

	if len(symbols) == 1 {
		var tsr dto.TimeSeriesResponse
		if err := json.Unmarshal(body, &tsr); err != nil {
			return entity.FetchResult{}, err
		}
		series, err := toSeries(tsr)
		if err != nil {
			return entity.FetchResult{}, err
		}
		return entity.SingleResult(series), nil
	}

	// 複数銘柄の場合、レスポンスは銘柄をキーとするJSONオブジェクト
	var batch map[string]dto.TimeSeriesResponse
	if err := json.Unmarshal(body, &batch); err != nil {
		return entity.FetchResult{}, err
	}
	m := make(map[string]entity.Series, len(batch))
	for sym, tsr := range batch {
		if tsr.Status == "error" {
			// 無効なティッカーは行を生まないだけでエラーにしない
			slog.Info("symbol omitted from provider result", "symbol", sym, "message", tsr.Message)
			continue
		}
		series, err := toSeries(tsr)
		if err != nil {
			return entity.FetchResult{}, err
		}
		m[sym] = series
	}
	return entity.MultiResult(m), nil
}

// toSeries はDTOをドメインのSeriesに変換します。Twelve Dataは新しい日付から
// 順に返すため、日付昇順に並べ替えて返します。
func toSeries(tsr dto.TimeSeriesResponse) (entity.Series, error) {
	series := make(entity.Series, 0, len(tsr.Values))
	for i := len(tsr.Values) - 1; i >= 0; i-- {
		v := tsr.Values[i]

		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		o, err := parsePrice(v.Open)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", v.Open, err)
		}
		h, err := parsePrice(v.High)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", v.High, err)
		}
		l, err := parsePrice(v.Low)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", v.Low, err)
		}
		c, err := parsePrice(v.Close)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		vol, err := parseVolume(v.Volume)
		if err != nil {
			return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}

		series = append(series, entity.Candle{
			Date:   tm,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		})
	}
	return series, nil
}

// parsePrice は価格文字列をパースします。欠損（空文字列）はNaNとして表現します。
func parsePrice(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseVolume(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
