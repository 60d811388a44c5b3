package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/services"
	"github.com/quantview/stock-dashboard/shared"
)

const summaryDoc = `{
	"stocks": [
		{"symbol": "AAA", "name": "Alpha Corp", "sector": "Tech", "currentPrice": 104, "ytdReturn": 0.2, "rsi": 72, "macdSignal": "bullish", "aboveMa50": true},
		{"symbol": "BBB", "name": "Beta Health", "sector": "Health", "currentPrice": 50, "ytdReturn": -0.1, "rsi": 28, "macdSignal": "bearish", "aboveMa50": false}
	],
	"rankings": {
		"topGainers": [{"symbol": "AAA", "name": "Alpha Corp", "ytdReturn": 0.2}],
		"topLosers": [{"symbol": "BBB", "name": "Beta Health", "ytdReturn": -0.1}]
	},
	"sectorStats": {
		"Tech": {"count": 1, "avgYtdReturn": 0.2, "bestPerformer": "AAA"},
		"Health": {"count": 1, "avgYtdReturn": -0.1, "bestPerformer": "BBB"}
	},
	"marketOverview": {"avgYtdReturn": 0.05, "medianYtdReturn": 0.05, "bullishCount": 1,
		"bearishCount": 1, "aboveMa50Count": 1, "aboveMa200Count": 0, "totalStocks": 2,
		"analysisDate": "2026-08-25"},
	"overbought": [{"symbol": "AAA", "name": "Alpha Corp", "rsi": 72, "ytdReturn": 0.2}],
	"oversold": [{"symbol": "BBB", "name": "Beta Health", "rsi": 28, "ytdReturn": -0.1}]
}`

const detailDoc = `{
	"symbol": "AAA",
	"name": "Alpha Corp",
	"sector": "Tech",
	"marketCap": 2500000000000,
	"analysisDate": "2026-08-25",
	"metrics": {"currentPrice": 104, "ytdReturn": 0.2, "avgVolume": 1500000},
	"technicals": {"rsi": 72, "macdSignal": "bullish", "aboveMa50": true},
	"priceHistory": [
		{"date": "2026-01-02", "open": 100, "high": 105, "low": 99, "close": 104, "volume": 1000},
		{"date": "2026-01-03", "open": 104, "high": 106, "low": 101, "close": 102, "volume": 1200}
	],
	"indicators": {
		"dates": ["2026-01-02", "2026-01-03"],
		"ma20": [101, 102],
		"rsi": [60, 72],
		"macd": {"macd": [0.5, -0.2], "signal": [0.4, 0.1], "histogram": [0.1, -0.3]}
	}
}`

type testEnv struct {
	app      *fiber.App
	dataHost *httptest.Server
	store    *services.MarketStoreService
}

func newTestEnv(t *testing.T, loaded bool) *testEnv {
	t.Helper()

	dataHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/data/summary.json":
			w.Write([]byte(summaryDoc))
		case strings.HasPrefix(r.URL.Path, "/data/stocks/AAA"):
			w.Write([]byte(detailDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(dataHost.Close)

	factory := shared.NewHTTPClientFactory(5 * time.Second)
	loader := services.NewDataLoaderService(dataHost.URL, factory, 5*time.Second)
	store := services.NewMarketStoreService(loader)
	if loaded {
		if err := store.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh: %v", err)
		}
	}

	screener := services.NewScreenerService()
	charts := services.NewChartBuilderService(services.DefaultPalette())
	views := services.NewViewService(charts, services.NewChartRegistry())

	app := fiber.New()
	app.Get("/", NewDashboardHandler(store, screener, views).GetDashboard)
	app.Get("/stock", NewStockHandler(store, loader, views, charts).GetStock)
	apiHandler := NewAPIHandler(store, screener)
	app.Get("/api/v1/stocks", apiHandler.GetStocks)
	app.Get("/api/v1/stocks/:symbol", apiHandler.GetStockBySymbol)
	app.Get("/api/v1/overview", apiHandler.GetOverview)

	return &testEnv{app: app, dataHost: dataHost, store: store}
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, string(body)
}

func TestDashboardUnavailableBeforeData(t *testing.T) {
	env := newTestEnv(t, false)

	resp, body := get(t, env.app, "/")
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	if !strings.Contains(body, "Market data unavailable") {
		t.Error("expected the full-page error message")
	}
}

func TestDashboardRendersAllSections(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := get(t, env.app, "/")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		"Total Stocks", "Avg YTD Return", // overview cards
		"Tech", "Health", // heatmap tiles
		"Alpha Corp", "Beta Health", // table rows
		"+20.00%", "-10.00%", // formatted returns
		"spark-AAA", // sparkline mount for the loaded detail
		`<span class="rank">1.</span>`, // ranked performer lists
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard body missing %q", want)
		}
	}
}

func TestDashboardAppliesQueryFilters(t *testing.T) {
	env := newTestEnv(t, true)

	_, body := get(t, env.app, "/?sector=Health")
	if !strings.Contains(body, "Beta Health") {
		t.Error("expected the matching row to render")
	}
	// AAA still appears in rankings and watch lists; check the table row link
	// count instead via its sparkline mount, which only table rows get.
	if strings.Contains(body, "spark-AAA") {
		t.Error("filtered-out row must not render a sparkline mount")
	}
}

func TestStockPageRequiresSymbol(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := get(t, env.app, "/stock")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "No stock selected") || !strings.Contains(body, `href="/"`) {
		t.Error("expected error page with a back link")
	}
}

func TestStockPageUnknownSymbol(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := get(t, env.app, "/stock?symbol=ZZZ")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, "Stock not found") {
		t.Error("expected not-found page")
	}
}

func TestStockPageRendersAvailableCharts(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := get(t, env.app, "/stock?symbol=AAA")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"chart-price", "chart-rsi", "chart-macd", "$2.50T", "1.50M"} {
		if !strings.Contains(body, want) {
			t.Errorf("stock page missing %q", want)
		}
	}
	// The fixture carries no bollinger series, so that chart is skipped.
	if strings.Contains(body, "chart-bollinger") {
		t.Error("absent indicator must not produce a chart container")
	}
}

func TestAPIStocksFiltered(t *testing.T) {
	env := newTestEnv(t, true)

	resp, body := get(t, env.app, "/api/v1/stocks?signal=bullish")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var payload struct {
		Success bool `json:"success"`
		Data    []struct {
			Symbol string `json:"symbol"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || len(payload.Data) != 1 || payload.Data[0].Symbol != "AAA" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestAPIUnavailableBeforeData(t *testing.T) {
	env := newTestEnv(t, false)

	resp, _ := get(t, env.app, "/api/v1/overview")
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}
