package services

import (
	"testing"

	"github.com/quantview/stock-dashboard/models"
)

func sampleDetail() *models.StockDetail {
	return &models.StockDetail{
		Symbol: "AAA",
		Name:   "Alpha Corp",
		Sector: "Tech",
		PriceHistory: []models.PriceBar{
			{Date: "2026-01-02", Open: fp(100), High: fp(105), Low: fp(99), Close: fp(104), Volume: 1000},
			{Date: "2026-01-03", Open: fp(104), High: fp(106), Low: fp(101), Close: fp(102), Volume: 1200},
			{Date: "2026-01-04", Open: fp(102), High: fp(108), Low: fp(102), Close: fp(107), Volume: 900},
		},
		Indicators: &models.IndicatorSet{
			Dates: []string{"2026-01-02", "2026-01-03", "2026-01-04"},
			Ma20:  []*float64{fp(101), fp(102), fp(103)},
			Ma50:  nil, // window never filled
			RSI:   []*float64{fp(45), fp(55), fp(75)},
			Macd: &models.MacdSeries{
				Macd:      []*float64{fp(0.5), fp(-0.2), fp(0.3)},
				Signal:    []*float64{fp(0.4), fp(0.1), fp(0.2)},
				Histogram: []*float64{fp(0.1), fp(-0.3), fp(0.1)},
			},
		},
	}
}

func TestBuildSparklineRequiresData(t *testing.T) {
	builder := NewChartBuilderService(DefaultPalette())

	if handle := builder.BuildSparkline("spark-AAA", []*float64{nil, nil}); handle != nil {
		t.Error("expected nil handle for all-nil series")
	}
	if handle := builder.BuildSparkline("spark-AAA", nil); handle != nil {
		t.Error("expected nil handle for empty series")
	}

	handle := builder.BuildSparkline("spark-AAA", []*float64{fp(1), nil, fp(2)})
	if handle == nil {
		t.Fatal("expected handle for series with values")
	}
	if handle.ContainerID != "spark-AAA" {
		t.Errorf("container id = %q", handle.ContainerID)
	}
}

func TestBuildCandlestickOverlaysOnlyPresentSeries(t *testing.T) {
	builder := NewChartBuilderService(DefaultPalette())
	handle := builder.BuildCandlestick("chart-price", sampleDetail())
	if handle == nil {
		t.Fatal("expected candlestick handle")
	}

	series := handle.Option["series"].([]interface{})
	names := make(map[string]bool)
	for _, s := range series {
		names[s.(map[string]interface{})["name"].(string)] = true
	}

	if !names["Price"] || !names["Volume"] {
		t.Errorf("expected price and volume panes, got %v", names)
	}
	if !names["MA20"] {
		t.Error("expected MA20 overlay for present series")
	}
	if names["MA50"] || names["MA200"] {
		t.Errorf("expected absent MA series to be skipped, got %v", names)
	}
}

func TestBuildCandlestickVolumeColorsByDirection(t *testing.T) {
	palette := DefaultPalette()
	builder := NewChartBuilderService(palette)
	handle := builder.BuildCandlestick("chart-price", sampleDetail())

	series := handle.Option["series"].([]interface{})
	var volumes []interface{}
	for _, s := range series {
		m := s.(map[string]interface{})
		if m["name"] == "Volume" {
			volumes = s.(map[string]interface{})["data"].([]interface{})
		}
	}
	if volumes == nil {
		t.Fatal("no volume series")
	}

	// Day 1: close 104 >= open 100 -> up. Day 2: close 102 < open 104 -> down.
	first := volumes[0].(map[string]interface{})["itemStyle"].(map[string]interface{})["color"]
	second := volumes[1].(map[string]interface{})["itemStyle"].(map[string]interface{})["color"]
	if first != palette.Up || second != palette.Down {
		t.Errorf("volume bar colors = %v/%v, want up/down", first, second)
	}
}

func TestBuildCandlestickVolumeNeutralWithoutDirection(t *testing.T) {
	palette := DefaultPalette()
	builder := NewChartBuilderService(palette)

	detail := sampleDetail()
	detail.PriceHistory[1].Open = nil
	detail.PriceHistory[2].Close = nil

	handle := builder.BuildCandlestick("chart-price", detail)
	series := handle.Option["series"].([]interface{})
	var volumes []interface{}
	for _, s := range series {
		m := s.(map[string]interface{})
		if m["name"] == "Volume" {
			volumes = m["data"].([]interface{})
		}
	}

	for _, i := range []int{1, 2} {
		color := volumes[i].(map[string]interface{})["itemStyle"].(map[string]interface{})["color"]
		if color != palette.Neutral {
			t.Errorf("bar %d color = %v, want neutral for absent open/close", i, color)
		}
	}
}

func TestBuildRSISkipsWhenAbsent(t *testing.T) {
	builder := NewChartBuilderService(DefaultPalette())

	detail := sampleDetail()
	detail.Indicators.RSI = nil
	if handle := builder.BuildRSI("chart-rsi", detail); handle != nil {
		t.Error("expected nil handle when rsi series absent")
	}

	detail.Indicators = nil
	if handle := builder.BuildRSI("chart-rsi", detail); handle != nil {
		t.Error("expected nil handle when indicators absent")
	}
}

func TestBuildMACDHistogramColorsBySign(t *testing.T) {
	palette := DefaultPalette()
	builder := NewChartBuilderService(palette)
	handle := builder.BuildMACD("chart-macd", sampleDetail())
	if handle == nil {
		t.Fatal("expected macd handle")
	}

	series := handle.Option["series"].([]interface{})
	histogram := series[0].(map[string]interface{})["data"].([]interface{})

	first := histogram[0].(map[string]interface{})["itemStyle"].(map[string]interface{})["color"]
	second := histogram[1].(map[string]interface{})["itemStyle"].(map[string]interface{})["color"]
	if first != palette.Up || second != palette.Down {
		t.Errorf("histogram colors = %v/%v, want up/down", first, second)
	}
}

func TestBuildBollingerSkipsWhenAbsent(t *testing.T) {
	builder := NewChartBuilderService(DefaultPalette())

	// sampleDetail has no bollinger sub-object at all.
	if handle := builder.BuildBollinger("chart-bollinger", sampleDetail()); handle != nil {
		t.Error("expected nil handle when bollinger absent")
	}

	detail := sampleDetail()
	detail.Indicators.Bollinger = &models.BollingerSeries{
		Upper:  []*float64{fp(110), fp(111), fp(112)},
		Middle: []*float64{fp(105), fp(105), fp(106)},
		Lower:  []*float64{fp(100), fp(99), fp(100)},
	}
	if handle := builder.BuildBollinger("chart-bollinger", detail); handle == nil {
		t.Error("expected handle when bollinger present")
	}
}

func TestChartHandleDisposeIsIdempotent(t *testing.T) {
	handle := &ChartHandle{ContainerID: "spark-AAA"}

	if !handle.Dispose() {
		t.Error("first dispose should free the handle")
	}
	if handle.Dispose() {
		t.Error("second dispose should be a no-op")
	}
	if !handle.Disposed() {
		t.Error("handle should report disposed")
	}
}

func TestRegistryDisposeAllClearsHandles(t *testing.T) {
	registry := NewChartRegistry()
	builder := NewChartBuilderService(DefaultPalette())

	for i := 0; i < 5; i++ {
		registry.Register(builder.BuildSparkline(SparklineContainerID("AAA"), []*float64{fp(1), fp(2)}))
	}
	if registry.Live() != 5 {
		t.Fatalf("live = %d, want 5", registry.Live())
	}

	if freed := registry.DisposeAll(); freed != 5 {
		t.Errorf("freed = %d, want 5", freed)
	}
	if registry.Live() != 0 {
		t.Errorf("live after dispose = %d, want 0", registry.Live())
	}

	// Registering nil is a no-op.
	registry.Register(nil)
	if registry.Live() != 0 {
		t.Error("nil handle must not be registered")
	}
}
