package services

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"sync"

	"github.com/quantview/stock-dashboard/models"
	"github.com/quantview/stock-dashboard/shared"
)

// ViewService maps loaded data to the view models the templates interpolate.
// Everything here is a pure projection except BuildTableRows, which owns the
// one stateful step of the render cycle: disposing stale sparkline handles
// before registering the new generation.
type ViewService struct {
	charts   *ChartBuilderService
	registry *ChartRegistry
	renderMu sync.Mutex // one dispose+register cycle at a time
}

func NewViewService(charts *ChartBuilderService, registry *ChartRegistry) *ViewService {
	return &ViewService{charts: charts, registry: registry}
}

// Registry exposes the sparkline registry for handlers and tests.
func (s *ViewService) Registry() *ChartRegistry {
	return s.registry
}

// BuildOverviewCards produces the six fixed market overview metrics. Signed
// rates carry a gain/loss class; counts stay neutral.
func (s *ViewService) BuildOverviewCards(ov models.MarketOverview) []models.OverviewCard {
	avg := ov.AvgYtdReturn
	median := ov.MedianYtdReturn
	return []models.OverviewCard{
		{Label: "Total Stocks", Value: shared.FormatCount(ov.TotalStocks), Class: "neutral"},
		{Label: "Avg YTD Return", Value: shared.FormatPercent(&avg), Class: shared.ChangeClass(&avg)},
		{Label: "Median YTD Return", Value: shared.FormatPercent(&median), Class: shared.ChangeClass(&median)},
		{Label: "Bullish / Bearish", Value: fmt.Sprintf("%d / %d", ov.BullishCount, ov.BearishCount), Class: "neutral"},
		{Label: "Above MA50", Value: fmt.Sprintf("%d of %d", ov.AboveMa50Count, ov.TotalStocks), Class: "neutral"},
		{Label: "Above MA200", Value: fmt.Sprintf("%d of %d", ov.AboveMa200Count, ov.TotalStocks), Class: "neutral"},
	}
}

// BuildHeatmapTiles produces one tile per sector, sorted by descending
// average YTD return.
func (s *ViewService) BuildHeatmapTiles(sectorStats map[string]models.SectorStat) []models.HeatmapTile {
	tiles := make([]models.HeatmapTile, 0, len(sectorStats))
	for sector, stat := range sectorStats {
		avg := stat.AvgYtdReturn
		best := ""
		if stat.BestPerformer != nil {
			best = stat.BestPerformer.Symbol
		}
		tiles = append(tiles, models.HeatmapTile{
			Sector:        sector,
			Count:         stat.Count,
			AvgReturn:     shared.FormatPercent(&avg),
			AvgClass:      shared.ChangeClass(&avg),
			Background:    shared.HeatmapColor(avg),
			BestPerformer: best,
		})
	}
	sort.Slice(tiles, func(i, j int) bool {
		si, sj := sectorStats[tiles[i].Sector], sectorStats[tiles[j].Sector]
		if si.AvgYtdReturn == sj.AvgYtdReturn {
			return tiles[i].Sector < tiles[j].Sector
		}
		return si.AvgYtdReturn > sj.AvgYtdReturn
	})
	return tiles
}

// BuildPerformerBars produces a horizontal bar list scaled to the maximum
// absolute YTD return within the list.
func (s *ViewService) BuildPerformerBars(stocks []models.StockSummary) []models.PerformerBar {
	maxAbs := 0.0
	for _, stock := range stocks {
		if stock.YtdReturn != nil {
			maxAbs = math.Max(maxAbs, math.Abs(*stock.YtdReturn))
		}
	}

	bars := make([]models.PerformerBar, 0, len(stocks))
	for i, stock := range stocks {
		width := 0.0
		if stock.YtdReturn != nil && maxAbs > 0 {
			width = math.Abs(*stock.YtdReturn) / maxAbs * 100
		}
		bars = append(bars, models.PerformerBar{
			Rank:      i + 1,
			Symbol:    stock.Symbol,
			Name:      stock.Name,
			Return:    shared.FormatPercent(stock.YtdReturn),
			Class:     shared.ChangeClass(stock.YtdReturn),
			BarWidth:  width,
			DetailURL: DetailURL(stock.Symbol),
		})
	}
	return bars
}

// BuildTableRows produces the filtered/sorted stock table. Every previously
// registered sparkline handle is disposed first; rows whose detail document
// loaded get a sparkline handle registered for the new generation, the rest
// degrade to an empty mount. The returned handles are exactly the ones
// registered for these rows: the page embeds them directly, so concurrent
// renders can never hand one page another page's handles.
func (s *ViewService) BuildTableRows(stocks []models.StockSummary, details map[string]*models.StockDetail) ([]models.TableRow, []*ChartHandle) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.registry.DisposeAll()

	rows := make([]models.TableRow, 0, len(stocks))
	handles := make([]*ChartHandle, 0, len(stocks))
	for i, stock := range stocks {
		row := models.TableRow{
			Rank:      i + 1,
			Symbol:    stock.Symbol,
			Name:      stock.Name,
			Sector:    stock.Sector,
			Price:     shared.FormatPrice(stock.CurrentPrice),
			Change:    shared.FormatPercent(stock.LastChange),
			YtdReturn: shared.FormatPercent(stock.YtdReturn),
			RSI:       shared.FormatRSI(stock.RSI),
			Signal:    signalLabel(stock.MacdSignal),
			DetailURL: DetailURL(stock.Symbol),
		}
		row.ChangeClass = shared.ChangeClass(stock.LastChange)
		row.YtdClass = shared.ChangeClass(stock.YtdReturn)
		row.RSIClass = shared.RSIClass(stock.RSI)
		row.SignalClass = shared.SignalClass(stock.MacdSignal)
		row.Ma50, row.Ma50Class = shared.MAPosition(stock.AboveMa50)
		row.Ma200, row.Ma200Class = shared.MAPosition(stock.AboveMa200)

		if detail, ok := details[stock.Symbol]; ok {
			handle := s.charts.BuildSparkline(SparklineContainerID(stock.Symbol), detail.ClosePrices())
			if handle != nil {
				s.registry.Register(handle)
				handles = append(handles, handle)
				row.SparklineID = handle.ContainerID
			}
		}
		rows = append(rows, row)
	}
	return rows, handles
}

// BuildWatchEntries projects the overbought/oversold extremes lists.
func (s *ViewService) BuildWatchEntries(extremes []models.RSIExtreme) []models.WatchEntry {
	entries := make([]models.WatchEntry, 0, len(extremes))
	for _, e := range extremes {
		rsi := e.RSI
		entries = append(entries, models.WatchEntry{
			Symbol:    e.Symbol,
			Name:      e.Name,
			RSI:       shared.FormatRSI(&rsi),
			Return:    shared.FormatPercent(e.YtdReturn),
			Class:     shared.ChangeClass(e.YtdReturn),
			DetailURL: DetailURL(e.Symbol),
		})
	}
	return entries
}

// BuildMetricCards produces the detail page's headline cards.
func (s *ViewService) BuildMetricCards(detail *models.StockDetail) []models.MetricCard {
	m := detail.Metrics
	t := detail.Technicals
	return []models.MetricCard{
		{Label: "Current Price", Value: shared.FormatPrice(m.CurrentPrice), Class: "neutral"},
		{Label: "YTD Return", Value: shared.FormatPercent(m.YtdReturn), Class: shared.ChangeClass(m.YtdReturn)},
		{Label: "RSI (14)", Value: shared.FormatRSI(t.RSI), Class: shared.RSIClass(t.RSI)},
		{Label: "MACD Signal", Value: signalLabel(t.MacdSignal), Class: shared.SignalClass(t.MacdSignal)},
		{Label: "Max Drawdown", Value: shared.FormatPercent(m.MaxDrawdown), Class: shared.ChangeClass(m.MaxDrawdown)},
		{Label: "Volatility (Ann.)", Value: shared.FormatPercent(m.Volatility), Class: "neutral"},
	}
}

// BuildKeyStats produces the detail page's key statistics grid.
func (s *ViewService) BuildKeyStats(detail *models.StockDetail) []models.KeyStat {
	m := detail.Metrics
	ma50, _ := shared.MAPosition(detail.Technicals.AboveMa50)
	ma200, _ := shared.MAPosition(detail.Technicals.AboveMa200)
	return []models.KeyStat{
		{Label: "Sector", Value: detail.Sector},
		{Label: "Market Cap", Value: shared.FormatMarketCap(detail.MarketCap)},
		{Label: "Avg Volume", Value: shared.FormatVolume(m.AvgVolume)},
		{Label: "52-Week High", Value: shared.FormatPrice(m.High52w)},
		{Label: "52-Week Low", Value: shared.FormatPrice(m.Low52w)},
		{Label: "YTD Start Price", Value: shared.FormatPrice(m.YtdStartPrice)},
		{Label: "vs MA50", Value: ma50},
		{Label: "vs MA200", Value: ma200},
		{Label: "Trading Days", Value: shared.FormatCount(detail.TradingDays())},
		{Label: "Analysis Date", Value: detail.AnalysisDate},
	}
}

// DetailURL builds the detail page link carrying the symbol as a query
// parameter.
func DetailURL(symbol string) string {
	return "/stock?symbol=" + url.QueryEscape(symbol)
}

func signalLabel(signal string) string {
	switch signal {
	case models.SignalBullish:
		return "Bullish"
	case models.SignalBearish:
		return "Bearish"
	default:
		return "Neutral"
	}
}
