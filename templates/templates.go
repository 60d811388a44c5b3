// Package templates holds the server-rendered HTML pages. Chart widgets are
// mounted client-side by handing each serialized option payload to ECharts;
// the Go side never builds markup for chart internals.
package templates

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/quantview/stock-dashboard/models"
	"github.com/quantview/stock-dashboard/services"
)

// DashboardData feeds the dashboard page template.
type DashboardData struct {
	Title        string
	AnalysisDate string
	SnapshotID   string
	Search       string
	Sector       string
	Signal       string
	SortSpec     string
	Sectors      []string
	Cards        []models.OverviewCard
	Tiles        []models.HeatmapTile
	Gainers      []models.PerformerBar
	Losers       []models.PerformerBar
	Rows         []models.TableRow
	Overbought   []models.WatchEntry
	Oversold     []models.WatchEntry
	Sparklines   []*services.ChartHandle
}

// StockData feeds the per-symbol detail page template.
type StockData struct {
	Title        string
	Symbol       string
	Name         string
	Sector       string
	AnalysisDate string
	MetricCards  []models.MetricCard
	KeyStats     []models.KeyStat
	Charts       []*services.ChartHandle
}

// ErrorData feeds the static error page.
type ErrorData struct {
	Title    string
	Message  string
	BackLink string
}

// SortOption is one entry of the sort control.
type SortOption struct {
	Value string
	Label string
}

var sortOptions = []SortOption{
	{"ytdReturn-desc", "YTD Return (high to low)"},
	{"ytdReturn-asc", "YTD Return (low to high)"},
	{"symbol-asc", "Symbol (A-Z)"},
	{"name-asc", "Name (A-Z)"},
	{"sector-asc", "Sector (A-Z)"},
	{"currentPrice-desc", "Price (high to low)"},
	{"currentPrice-asc", "Price (low to high)"},
	{"lastChange-desc", "Daily Change (high to low)"},
	{"rsi-desc", "RSI (high to low)"},
	{"rsi-asc", "RSI (low to high)"},
	{"marketCap-desc", "Market Cap (high to low)"},
}

var funcMap = template.FuncMap{
	"json": func(v interface{}) template.JS {
		b, err := json.Marshal(v)
		if err != nil {
			return template.JS("null")
		}
		return template.JS(b)
	},
	"sortOptions": func() []SortOption { return sortOptions },
}

var (
	dashboardTmpl = template.Must(template.New("dashboard").Funcs(funcMap).Parse(pageHead + dashboardBody + pageFoot))
	stockTmpl     = template.Must(template.New("stock").Funcs(funcMap).Parse(pageHead + stockBody + pageFoot))
	errorTmpl     = template.Must(template.New("error").Funcs(funcMap).Parse(pageHead + errorBody + pageFoot))
)

// RenderDashboard writes the dashboard page.
func RenderDashboard(w io.Writer, data DashboardData) error {
	return dashboardTmpl.Execute(w, data)
}

// RenderStock writes the detail page.
func RenderStock(w io.Writer, data StockData) error {
	return stockTmpl.Execute(w, data)
}

// RenderError writes the full-page error message.
func RenderError(w io.Writer, data ErrorData) error {
	return errorTmpl.Execute(w, data)
}
