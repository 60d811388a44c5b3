package models

// View models consumed by the HTML templates. Built by the view service from
// loaded data plus the formatting rules; templates only interpolate.

// OverviewCard is one of the six fixed dashboard metrics.
type OverviewCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Class string `json:"class"`
}

// HeatmapTile is one sector tile, background scaled by average YTD return.
type HeatmapTile struct {
	Sector        string `json:"sector"`
	Count         int    `json:"count"`
	AvgReturn     string `json:"avg_return"`
	AvgClass      string `json:"avg_class"`
	Background    string `json:"background"`
	BestPerformer string `json:"best_performer"`
}

// PerformerBar is one entry of the gainers/losers bar lists.
type PerformerBar struct {
	Rank      int     `json:"rank"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Return    string  `json:"return"`
	Class     string  `json:"class"`
	BarWidth  float64 `json:"bar_width"`
	DetailURL string  `json:"detail_url"`
}

// TableRow is one filtered/sorted stock table row.
type TableRow struct {
	Rank        int    `json:"rank"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Price       string `json:"price"`
	Change      string `json:"change"`
	ChangeClass string `json:"change_class"`
	YtdReturn   string `json:"ytd_return"`
	YtdClass    string `json:"ytd_class"`
	RSI         string `json:"rsi"`
	RSIClass    string `json:"rsi_class"`
	Signal      string `json:"signal"`
	SignalClass string `json:"signal_class"`
	Ma50        string `json:"ma50"`
	Ma50Class   string `json:"ma50_class"`
	Ma200       string `json:"ma200"`
	Ma200Class  string `json:"ma200_class"`
	SparklineID string `json:"sparkline_id"`
	DetailURL   string `json:"detail_url"`
}

// MetricCard is one of the headline cards on the detail page.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Class string `json:"class"`
}

// KeyStat is one cell of the detail-page key statistics grid.
type KeyStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// WatchEntry is one overbought/oversold watch list entry.
type WatchEntry struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	RSI       string `json:"rsi"`
	Return    string `json:"return"`
	Class     string `json:"class"`
	DetailURL string `json:"detail_url"`
}
