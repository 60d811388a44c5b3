package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantview/stock-dashboard/shared"
)

const summaryFixture = `{
	"stocks": [
		{"symbol": "AAA", "name": "Alpha Corp", "sector": "Tech", "ytdReturn": 0.2},
		{"symbol": "BBB", "name": "Beta Health", "sector": "Health", "ytdReturn": -0.1}
	],
	"rankings": {"topGainers": [], "topLosers": []},
	"sectorStats": {},
	"marketOverview": {"avgYtdReturn": 0.05, "totalStocks": 2, "analysisDate": "2026-08-25"},
	"overbought": [],
	"oversold": []
}`

const detailFixture = `{
	"symbol": "AAA",
	"name": "Alpha Corp",
	"sector": "Tech",
	"metrics": {"currentPrice": 104, "avgVolume": 1000},
	"technicals": {"rsi": 55, "macdSignal": "bullish"},
	"priceHistory": [
		{"date": "2026-01-02", "open": 100, "high": 105, "low": 99, "close": 104, "volume": 1000}
	]
}`

func newTestLoader(baseURL string) *DataLoaderService {
	factory := shared.NewHTTPClientFactory(5 * time.Second)
	return NewDataLoaderService(baseURL, factory, 5*time.Second)
}

func TestLoadSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/summary.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(summaryFixture))
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)
	summary, err := loader.LoadSummary(context.Background())
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if len(summary.Stocks) != 2 || summary.Stocks[0].Symbol != "AAA" {
		t.Errorf("unexpected stocks: %+v", summary.Stocks)
	}
	if summary.MarketOverview.TotalStocks != 2 {
		t.Errorf("total stocks = %d", summary.MarketOverview.TotalStocks)
	}
}

func TestLoadSummaryFailureReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)
	summary, err := loader.LoadSummary(context.Background())
	if err == nil || summary != nil {
		t.Errorf("expected nil summary and error, got %v / %v", summary, err)
	}
}

func TestLoadSummaryEmptyDatasetIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stocks": []}`))
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)
	if _, err := loader.LoadSummary(context.Background()); err == nil {
		t.Error("expected error for summary with no stocks")
	}
}

func TestLoadStockData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/data/stocks/AAA.json" {
			w.Write([]byte(detailFixture))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)

	detail, err := loader.LoadStockData(context.Background(), "AAA")
	if err != nil {
		t.Fatalf("LoadStockData: %v", err)
	}
	if detail.Symbol != "AAA" || detail.TradingDays() != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if _, err := loader.LoadStockData(context.Background(), "MISSING"); err == nil {
		t.Error("expected error for missing detail document")
	}
}

func TestLoadAllStockDataOmitsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/summary.json":
			w.Write([]byte(summaryFixture))
		case "/data/stocks/AAA.json":
			w.Write([]byte(detailFixture))
		default:
			// BBB's detail document is broken; the batch must not fail.
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)
	summary, err := loader.LoadSummary(context.Background())
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}

	details := loader.LoadAllStockData(context.Background(), summary)
	if len(details) != 1 {
		t.Fatalf("details = %d, want 1", len(details))
	}
	if _, ok := details["AAA"]; !ok {
		t.Error("expected AAA detail to survive the partial failure")
	}
	if _, ok := details["BBB"]; ok {
		t.Error("failed symbol must be omitted, not stored as nil")
	}
}

func TestLoaderRecordsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summaryFixture))
	}))
	defer server.Close()

	loader := newTestLoader(server.URL)
	if _, err := loader.LoadSummary(context.Background()); err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}

	snapshot := loader.Metrics.GetSnapshot()
	if snapshot.TotalRequests != 1 || snapshot.FailedRequests != 0 {
		t.Errorf("metrics = %d requests / %d failed", snapshot.TotalRequests, snapshot.FailedRequests)
	}
	if rate := loader.Metrics.GetSuccessRate(); rate != 100.0 {
		t.Errorf("success rate = %v, want 100", rate)
	}
}
