package models

// StockMetrics holds the precomputed YTD return/risk figures for one stock.
type StockMetrics struct {
	YtdReturn     *float64 `json:"ytdReturn"`
	MaxDrawdown   *float64 `json:"maxDrawdown"`
	Volatility    *float64 `json:"volatility"`
	AvgVolume     int64    `json:"avgVolume"`
	CurrentPrice  *float64 `json:"currentPrice"`
	High52w       *float64 `json:"high52w"`
	Low52w        *float64 `json:"low52w"`
	LastChange    *float64 `json:"lastChange"`
	YtdStartPrice *float64 `json:"ytdStartPrice"`
}

// StockTechnicals holds the current technical status.
type StockTechnicals struct {
	RSI        *float64 `json:"rsi"`
	MacdSignal string   `json:"macdSignal"`
	AboveMa50  *bool    `json:"aboveMa50"`
	AboveMa200 *bool    `json:"aboveMa200"`
}

// PriceBar is one OHLCV trading day.
type PriceBar struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume int64    `json:"volume"`
}

// MacdSeries carries the MACD line, signal line and histogram, aligned to
// the indicator date axis.
type MacdSeries struct {
	Macd      []*float64 `json:"macd"`
	Signal    []*float64 `json:"signal"`
	Histogram []*float64 `json:"histogram"`
}

// BollingerSeries carries the three Bollinger band lines.
type BollingerSeries struct {
	Upper  []*float64 `json:"upper"`
	Middle []*float64 `json:"middle"`
	Lower  []*float64 `json:"lower"`
}

// IndicatorSet holds the per-day indicator series. Series elements are nil
// where the rolling window had not filled yet. Sub-objects may be absent
// entirely; consumers must skip the corresponding chart.
type IndicatorSet struct {
	Dates     []string         `json:"dates"`
	Ma5       []*float64       `json:"ma5,omitempty"`
	Ma10      []*float64       `json:"ma10,omitempty"`
	Ma20      []*float64       `json:"ma20,omitempty"`
	Ma50      []*float64       `json:"ma50,omitempty"`
	Ma200     []*float64       `json:"ma200,omitempty"`
	RSI       []*float64       `json:"rsi,omitempty"`
	Macd      *MacdSeries      `json:"macd,omitempty"`
	Bollinger *BollingerSeries `json:"bollinger,omitempty"`
}

// StockDetail is the full per-symbol document (data/stocks/SYMBOL.json).
type StockDetail struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Sector       string          `json:"sector"`
	MarketCap    *float64        `json:"marketCap"`
	AnalysisDate string          `json:"analysisDate"`
	Metrics      StockMetrics    `json:"metrics"`
	Technicals   StockTechnicals `json:"technicals"`
	PriceHistory []PriceBar      `json:"priceHistory"`
	Indicators   *IndicatorSet   `json:"indicators"`
}

// TradingDays returns the number of price bars in the YTD window.
func (d *StockDetail) TradingDays() int {
	return len(d.PriceHistory)
}

// ClosePrices extracts the close series from the price history.
func (d *StockDetail) ClosePrices() []*float64 {
	closes := make([]*float64, len(d.PriceHistory))
	for i, bar := range d.PriceHistory {
		closes[i] = bar.Close
	}
	return closes
}

// Dates extracts the date axis from the price history.
func (d *StockDetail) Dates() []string {
	dates := make([]string, len(d.PriceHistory))
	for i, bar := range d.PriceHistory {
		dates[i] = bar.Date
	}
	return dates
}
