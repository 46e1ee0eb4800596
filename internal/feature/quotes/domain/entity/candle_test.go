package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// TestFetchResult_JSONRoundTrip はFetchResultがJSONを往復しても
// Single/Multiのどちらの結果かを失わないことを検証します。
func TestFetchResult_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	series := entity.Series{
		{Symbol: "AAPL", Date: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Open: 124, High: 126, Low: 123, Close: 125, Volume: 1000},
	}

	testCases := []struct {
		name     string
		in       entity.FetchResult
		expMulti bool
	}{
		{name: "single result", in: entity.SingleResult(series), expMulti: false},
		{name: "multi result", in: entity.MultiResult(map[string]entity.Series{"AAPL": series}), expMulti: true},
		// 全銘柄が無効だった複数銘柄リクエスト: 空のマップでもMultiのまま
		{name: "multi result with no symbols", in: entity.MultiResult(map[string]entity.Series{}), expMulti: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out entity.FetchResult
			if err := json.Unmarshal(b, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.IsMulti() != tc.expMulti {
				t.Errorf("IsMulti changed across round-trip: got %v, want %v", out.IsMulti(), tc.expMulti)
			}
			if len(out.Single) != len(tc.in.Single) || len(out.Multi) != len(tc.in.Multi) {
				t.Errorf("contents changed across round-trip: got %+v, want %+v", out, tc.in)
			}
		})
	}
}
