package models

import (
	"encoding/json"
	"fmt"
)

// MacdSignal values as emitted by the analysis pipeline.
const (
	SignalBullish = "bullish"
	SignalBearish = "bearish"
	SignalNeutral = "neutral"
)

// StockSummary is one per-stock record from the summary document.
// Nullable fields use pointers: the analyzer emits null for indicators it
// could not compute (short history, missing volume data).
type StockSummary struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector"`
	CurrentPrice *float64 `json:"currentPrice"`
	LastChange   *float64 `json:"lastChange"`
	YtdReturn    *float64 `json:"ytdReturn"`
	RSI          *float64 `json:"rsi"`
	MacdSignal   string   `json:"macdSignal"`
	AboveMa50    *bool    `json:"aboveMa50"`
	AboveMa200   *bool    `json:"aboveMa200"`
	MarketCap    *float64 `json:"marketCap,omitempty"`
}

// MarketOverview holds the market-wide aggregate stats.
type MarketOverview struct {
	AvgYtdReturn    float64 `json:"avgYtdReturn"`
	MedianYtdReturn float64 `json:"medianYtdReturn"`
	BullishCount    int     `json:"bullishCount"`
	BearishCount    int     `json:"bearishCount"`
	AboveMa50Count  int     `json:"aboveMa50Count"`
	AboveMa200Count int     `json:"aboveMa200Count"`
	TotalStocks     int     `json:"totalStocks"`
	AnalysisDate    string  `json:"analysisDate"`
}

// BestPerformer is the per-sector best/worst entry. Older dataset versions
// wrote a bare symbol string, newer ones an object with the symbol and its
// YTD return; both decode into the same resolved form.
type BestPerformer struct {
	Symbol    string   `json:"symbol"`
	YtdReturn *float64 `json:"ytdReturn,omitempty"`
}

func (b *BestPerformer) UnmarshalJSON(data []byte) error {
	var symbol string
	if err := json.Unmarshal(data, &symbol); err == nil {
		b.Symbol = symbol
		b.YtdReturn = nil
		return nil
	}

	type alias BestPerformer
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("best performer is neither string nor object: %w", err)
	}
	*b = BestPerformer(obj)
	return nil
}

// SectorStat aggregates one sector's members.
type SectorStat struct {
	Count          int            `json:"count"`
	AvgYtdReturn   float64        `json:"avgYtdReturn"`
	BestPerformer  *BestPerformer `json:"bestPerformer"`
	WorstPerformer *BestPerformer `json:"worstPerformer,omitempty"`
}

// Rankings holds the top/bottom YTD performers, worst loser first.
type Rankings struct {
	TopGainers []StockSummary `json:"topGainers"`
	TopLosers  []StockSummary `json:"topLosers"`
}

// RSIExtreme is one entry of the overbought/oversold watch lists.
type RSIExtreme struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	RSI       float64  `json:"rsi"`
	YtdReturn *float64 `json:"ytdReturn"`
}

// Summary is the consolidated analysis document (data/summary.json).
// Read-only once loaded.
type Summary struct {
	Stocks         []StockSummary        `json:"stocks"`
	Rankings       Rankings              `json:"rankings"`
	SectorStats    map[string]SectorStat `json:"sectorStats"`
	MarketOverview MarketOverview        `json:"marketOverview"`
	Overbought     []RSIExtreme          `json:"overbought,omitempty"`
	Oversold       []RSIExtreme          `json:"oversold,omitempty"`
}
