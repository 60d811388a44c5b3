package shared

import (
	"fmt"
	"math"
)

// Display formatting for precomputed metric values. All helpers accept the
// nullable form the dataset uses and fall back to "N/A" for absent values.

const notAvailable = "N/A"

// FormatPercent formats a fractional rate as a signed percentage,
// e.g. 0.1234 -> "+12.34%", -0.05 -> "-5.00%".
func FormatPercent(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%+.2f%%", *v*100)
}

// FormatPrice formats a dollar price as $X.XX.
func FormatPrice(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatVolume formats a share count with B/M/K suffixes,
// e.g. 1500000 -> "1.50M".
func FormatVolume(v int64) string {
	f := float64(v)
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.2fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.2fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.2fK", f/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// FormatMarketCap formats a market capitalization with T/B/M suffixes,
// e.g. 2.5e12 -> "$2.50T".
func FormatMarketCap(v *float64) string {
	if v == nil {
		return notAvailable
	}
	switch {
	case *v >= 1e12:
		return fmt.Sprintf("$%.2fT", *v/1e12)
	case *v >= 1e9:
		return fmt.Sprintf("$%.2fB", *v/1e9)
	case *v >= 1e6:
		return fmt.Sprintf("$%.2fM", *v/1e6)
	default:
		return fmt.Sprintf("$%.0f", *v)
	}
}

// FormatRSI formats an RSI reading with one decimal.
func FormatRSI(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", *v)
}

// FormatCount formats a plain integer metric.
func FormatCount(n int) string {
	return fmt.Sprintf("%d", n)
}

// ChangeClass maps a signed rate to its display class.
func ChangeClass(v *float64) string {
	if v == nil {
		return "neutral"
	}
	switch {
	case *v > 0:
		return "gain"
	case *v < 0:
		return "loss"
	default:
		return "neutral"
	}
}

// RSIClass classifies an RSI reading: >=70 overbought, <=30 oversold.
func RSIClass(v *float64) string {
	if v == nil {
		return "neutral"
	}
	switch {
	case *v >= 70:
		return "overbought"
	case *v <= 30:
		return "oversold"
	default:
		return "neutral"
	}
}

// SignalClass maps a MACD signal string to its badge class.
func SignalClass(signal string) string {
	switch signal {
	case "bullish":
		return "gain"
	case "bearish":
		return "loss"
	default:
		return "neutral"
	}
}

// MAPosition renders a tri-state moving-average position.
func MAPosition(above *bool) (label, class string) {
	if above == nil {
		return notAvailable, "neutral"
	}
	if *above {
		return "Above", "gain"
	}
	return "Below", "loss"
}

// HeatmapColor builds the rgba background for a sector tile. Intensity
// scales with the average YTD return, capped at 0.4 alpha; hue by sign.
func HeatmapColor(avgYtdReturn float64) string {
	alpha := math.Min(math.Abs(avgYtdReturn)*3, 0.4)
	if avgYtdReturn >= 0 {
		return fmt.Sprintf("rgba(16, 185, 129, %.3f)", alpha)
	}
	return fmt.Sprintf("rgba(239, 68, 68, %.3f)", alpha)
}
