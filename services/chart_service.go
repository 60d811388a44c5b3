package services

import (
	"fmt"
	"sync"

	"github.com/quantview/stock-dashboard/models"
	"github.com/sirupsen/logrus"
)

// ChartPalette holds the shared colors handed to every chart option.
type ChartPalette struct {
	Up      string `json:"up"`
	Down    string `json:"down"`
	Neutral string `json:"neutral"`
	Line    string `json:"line"`
	Fill    string `json:"fill"`
	Ma20    string `json:"ma20"`
	Ma50    string `json:"ma50"`
	Ma200   string `json:"ma200"`
}

// DefaultPalette matches the dashboard stylesheet.
func DefaultPalette() ChartPalette {
	return ChartPalette{
		Up:      "#10b981",
		Down:    "#ef4444",
		Neutral: "#94a3b8",
		Line:    "#3b82f6",
		Fill:    "rgba(59, 130, 246, 0.15)",
		Ma20:    "#f59e0b",
		Ma50:    "#8b5cf6",
		Ma200:   "#ec4899",
	}
}

// ChartOption is a declarative option object for the client-side charting
// capability; it is serialized to JSON and handed over untouched.
type ChartOption map[string]interface{}

// ChartHandle is one live chart bound to a mount element. Dispose is
// idempotent: the registry relies on exactly one release per handle.
type ChartHandle struct {
	ContainerID string
	Option      ChartOption

	mu       sync.Mutex
	disposed bool
}

// Dispose releases the handle. Returns false if it was already disposed.
func (h *ChartHandle) Dispose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return false
	}
	h.disposed = true
	return true
}

// Disposed reports whether the handle has been released.
func (h *ChartHandle) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

// ChartRegistry tracks the sparkline handles created during a table render.
// Invariant: every render cycle starts with DisposeAll, so stale handles are
// never left bound to replaced mount elements.
type ChartRegistry struct {
	mu      sync.Mutex
	handles []*ChartHandle
}

func NewChartRegistry() *ChartRegistry {
	return &ChartRegistry{}
}

// Register adds a live handle to the registry.
func (r *ChartRegistry) Register(h *ChartHandle) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = append(r.handles, h)
}

// DisposeAll releases every registered handle and clears the registry.
// Returns the number of handles actually freed.
func (r *ChartRegistry) DisposeAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	freed := 0
	for _, h := range r.handles {
		if h.Dispose() {
			freed++
		} else {
			logrus.WithFields(logrus.Fields{
				"component": "ChartRegistry",
				"container": h.ContainerID,
			}).Warn("Chart handle was already disposed")
		}
	}
	r.handles = nil
	return freed
}

// Live returns the number of currently registered handles.
func (r *ChartRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Handles returns a copy of the registered handles, render order preserved.
func (r *ChartRegistry) Handles() []*ChartHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ChartHandle, len(r.handles))
	copy(out, r.handles)
	return out
}

// ChartBuilderService builds chart option payloads from indicator series and
// the shared palette. Missing input yields a nil handle, never an error; the
// corresponding page section is simply skipped.
type ChartBuilderService struct {
	palette ChartPalette
}

func NewChartBuilderService(palette ChartPalette) *ChartBuilderService {
	return &ChartBuilderService{palette: palette}
}

// Palette returns the shared color palette.
func (s *ChartBuilderService) Palette() ChartPalette {
	return s.palette
}

// baseOption is the option skeleton every chart starts from.
func (s *ChartBuilderService) baseOption() ChartOption {
	return ChartOption{
		"animation":       false,
		"backgroundColor": "transparent",
		"tooltip": map[string]interface{}{
			"trigger": "axis",
		},
	}
}

// BuildSparkline builds a minimal axis-less line for a table row. Domain is
// auto-scaled to the data extent. Returns nil when no close is present.
func (s *ChartBuilderService) BuildSparkline(containerID string, closes []*float64) *ChartHandle {
	if !hasValue(closes) {
		return nil
	}

	option := ChartOption{
		"animation": false,
		"grid":      map[string]interface{}{"left": 0, "right": 0, "top": 2, "bottom": 2},
		"xAxis":     map[string]interface{}{"type": "category", "show": false},
		"yAxis":     map[string]interface{}{"type": "value", "show": false, "min": "dataMin", "max": "dataMax"},
		"series": []interface{}{
			map[string]interface{}{
				"type":         "line",
				"data":         closes,
				"smooth":       true,
				"symbol":       "none",
				"lineStyle":    map[string]interface{}{"width": 1.5, "color": s.palette.Line},
				"areaStyle":    map[string]interface{}{"color": s.palette.Fill},
				"silent":       true,
				"connectNulls": true,
			},
		},
	}

	return &ChartHandle{ContainerID: containerID, Option: option}
}

// BuildCandlestick builds the OHLC chart with its paired volume pane. Moving
// average overlays are added only for the series present in the indicator
// set; zoom and pan are shared across both panes.
func (s *ChartBuilderService) BuildCandlestick(containerID string, detail *models.StockDetail) *ChartHandle {
	if detail == nil || len(detail.PriceHistory) == 0 {
		return nil
	}

	dates := detail.Dates()
	ohlc := make([]interface{}, len(detail.PriceHistory))
	volumes := make([]interface{}, len(detail.PriceHistory))
	for i, bar := range detail.PriceHistory {
		// ECharts candlestick order: open, close, low, high.
		ohlc[i] = []interface{}{bar.Open, bar.Close, bar.Low, bar.High}
		volumes[i] = map[string]interface{}{
			"value":     bar.Volume,
			"itemStyle": map[string]interface{}{"color": s.volumeColor(bar)},
		}
	}

	series := []interface{}{
		map[string]interface{}{
			"name": "Price",
			"type": "candlestick",
			"data": ohlc,
			"itemStyle": map[string]interface{}{
				"color":        s.palette.Up,
				"color0":       s.palette.Down,
				"borderColor":  s.palette.Up,
				"borderColor0": s.palette.Down,
			},
		},
	}

	if detail.Indicators != nil {
		overlays := []struct {
			name  string
			data  []*float64
			color string
		}{
			{"MA20", detail.Indicators.Ma20, s.palette.Ma20},
			{"MA50", detail.Indicators.Ma50, s.palette.Ma50},
			{"MA200", detail.Indicators.Ma200, s.palette.Ma200},
		}
		for _, overlay := range overlays {
			if !hasValue(overlay.data) {
				continue
			}
			series = append(series, map[string]interface{}{
				"name":      overlay.name,
				"type":      "line",
				"data":      overlay.data,
				"symbol":    "none",
				"smooth":    true,
				"lineStyle": map[string]interface{}{"width": 1, "color": overlay.color},
			})
		}
	}

	series = append(series, map[string]interface{}{
		"name":       "Volume",
		"type":       "bar",
		"data":       volumes,
		"xAxisIndex": 1,
		"yAxisIndex": 1,
	})

	option := s.baseOption()
	option["legend"] = map[string]interface{}{"top": 0}
	option["axisPointer"] = map[string]interface{}{"link": []interface{}{map[string]interface{}{"xAxisIndex": "all"}}}
	option["grid"] = []interface{}{
		map[string]interface{}{"left": 60, "right": 20, "top": 30, "height": "55%"},
		map[string]interface{}{"left": 60, "right": 20, "top": "72%", "height": "18%"},
	}
	option["xAxis"] = []interface{}{
		map[string]interface{}{"type": "category", "data": dates, "gridIndex": 0},
		map[string]interface{}{"type": "category", "data": dates, "gridIndex": 1, "axisLabel": map[string]interface{}{"show": false}},
	}
	option["yAxis"] = []interface{}{
		map[string]interface{}{"type": "value", "scale": true, "gridIndex": 0},
		map[string]interface{}{"type": "value", "gridIndex": 1, "axisLabel": map[string]interface{}{"show": false}},
	}
	option["dataZoom"] = []interface{}{
		map[string]interface{}{"type": "inside", "xAxisIndex": []interface{}{0, 1}},
		map[string]interface{}{"type": "slider", "xAxisIndex": []interface{}{0, 1}, "bottom": 0},
	}
	option["series"] = series

	return &ChartHandle{ContainerID: containerID, Option: option}
}

// BuildRSI builds the RSI oscillator chart: fixed [0,100] domain, reference
// lines at 30 and 70, zone coloring by threshold.
func (s *ChartBuilderService) BuildRSI(containerID string, detail *models.StockDetail) *ChartHandle {
	if detail == nil || detail.Indicators == nil || !hasValue(detail.Indicators.RSI) {
		return nil
	}

	option := s.baseOption()
	option["grid"] = map[string]interface{}{"left": 50, "right": 20, "top": 20, "bottom": 30}
	option["xAxis"] = map[string]interface{}{"type": "category", "data": detail.Indicators.Dates}
	option["yAxis"] = map[string]interface{}{"type": "value", "min": 0, "max": 100}
	option["visualMap"] = map[string]interface{}{
		"show":      false,
		"dimension": 1,
		"pieces": []interface{}{
			map[string]interface{}{"max": 30.0, "color": s.palette.Up},
			map[string]interface{}{"gt": 30.0, "lte": 70.0, "color": s.palette.Neutral},
			map[string]interface{}{"gt": 70.0, "color": s.palette.Down},
		},
	}
	option["series"] = []interface{}{
		map[string]interface{}{
			"name":   "RSI",
			"type":   "line",
			"data":   detail.Indicators.RSI,
			"symbol": "none",
			"markLine": map[string]interface{}{
				"silent": true,
				"symbol": "none",
				"lineStyle": map[string]interface{}{"type": "dashed", "color": s.palette.Neutral},
				"data": []interface{}{
					map[string]interface{}{"yAxis": 30},
					map[string]interface{}{"yAxis": 70},
				},
			},
		},
	}

	return &ChartHandle{ContainerID: containerID, Option: option}
}

// BuildMACD builds the MACD chart: sign-colored histogram bars plus the MACD
// and signal lines.
func (s *ChartBuilderService) BuildMACD(containerID string, detail *models.StockDetail) *ChartHandle {
	if detail == nil || detail.Indicators == nil || detail.Indicators.Macd == nil {
		return nil
	}
	macd := detail.Indicators.Macd
	if !hasValue(macd.Macd) && !hasValue(macd.Histogram) {
		return nil
	}

	histogram := make([]interface{}, len(macd.Histogram))
	for i, v := range macd.Histogram {
		if v == nil {
			histogram[i] = nil
			continue
		}
		color := s.palette.Down
		if *v >= 0 {
			color = s.palette.Up
		}
		histogram[i] = map[string]interface{}{
			"value":     *v,
			"itemStyle": map[string]interface{}{"color": color},
		}
	}

	option := s.baseOption()
	option["legend"] = map[string]interface{}{"top": 0}
	option["grid"] = map[string]interface{}{"left": 50, "right": 20, "top": 30, "bottom": 30}
	option["xAxis"] = map[string]interface{}{"type": "category", "data": detail.Indicators.Dates}
	option["yAxis"] = map[string]interface{}{"type": "value", "scale": true}
	option["series"] = []interface{}{
		map[string]interface{}{"name": "Histogram", "type": "bar", "data": histogram},
		map[string]interface{}{"name": "MACD", "type": "line", "data": macd.Macd, "symbol": "none",
			"lineStyle": map[string]interface{}{"color": s.palette.Line}},
		map[string]interface{}{"name": "Signal", "type": "line", "data": macd.Signal, "symbol": "none",
			"lineStyle": map[string]interface{}{"color": s.palette.Ma20}},
	}

	return &ChartHandle{ContainerID: containerID, Option: option}
}

// BuildBollinger builds the Bollinger band chart: close line plus the three
// bands, outer bands dashed.
func (s *ChartBuilderService) BuildBollinger(containerID string, detail *models.StockDetail) *ChartHandle {
	if detail == nil || detail.Indicators == nil || detail.Indicators.Bollinger == nil {
		return nil
	}
	bands := detail.Indicators.Bollinger
	if !hasValue(bands.Middle) {
		return nil
	}

	dashed := map[string]interface{}{"type": "dashed", "width": 1, "color": s.palette.Neutral}

	option := s.baseOption()
	option["legend"] = map[string]interface{}{"top": 0}
	option["grid"] = map[string]interface{}{"left": 60, "right": 20, "top": 30, "bottom": 30}
	option["xAxis"] = map[string]interface{}{"type": "category", "data": detail.Indicators.Dates}
	option["yAxis"] = map[string]interface{}{"type": "value", "scale": true}
	option["series"] = []interface{}{
		map[string]interface{}{"name": "Close", "type": "line", "data": detail.ClosePrices(), "symbol": "none",
			"lineStyle": map[string]interface{}{"color": s.palette.Line}},
		map[string]interface{}{"name": "Upper", "type": "line", "data": bands.Upper, "symbol": "none", "lineStyle": dashed},
		map[string]interface{}{"name": "Middle", "type": "line", "data": bands.Middle, "symbol": "none",
			"lineStyle": map[string]interface{}{"width": 1, "color": s.palette.Ma50}},
		map[string]interface{}{"name": "Lower", "type": "line", "data": bands.Lower, "symbol": "none", "lineStyle": dashed},
	}

	return &ChartHandle{ContainerID: containerID, Option: option}
}

// SparklineContainerID derives the mount element id for a table row.
func SparklineContainerID(symbol string) string {
	return fmt.Sprintf("spark-%s", symbol)
}

// volumeColor picks the volume bar color from the same-day direction; bars
// with an absent open or close stay neutral.
func (s *ChartBuilderService) volumeColor(bar models.PriceBar) string {
	if bar.Close == nil || bar.Open == nil {
		return s.palette.Neutral
	}
	if *bar.Close >= *bar.Open {
		return s.palette.Up
	}
	return s.palette.Down
}

func hasValue(series []*float64) bool {
	for _, v := range series {
		if v != nil {
			return true
		}
	}
	return false
}
