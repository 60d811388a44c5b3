package services

import (
	"sort"
	"strings"

	"github.com/quantview/stock-dashboard/models"
)

// SortDirection of a screener sort spec.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ScreenerCriteria captures the dashboard's filter and sort controls.
// Empty string criteria mean "no filter".
type ScreenerCriteria struct {
	Search  string
	Sector  string
	Signal  string
	SortKey string
	SortDir SortDirection
}

// DefaultCriteria matches the dashboard's initial control state.
func DefaultCriteria() ScreenerCriteria {
	return ScreenerCriteria{SortKey: "ytdReturn", SortDir: SortDesc}
}

// ParseSortSpec splits a combined "field-direction" control value, e.g.
// "ytdReturn-desc". Unrecognized input falls back to the default spec.
func ParseSortSpec(spec string) (string, SortDirection) {
	idx := strings.LastIndex(spec, "-")
	if idx <= 0 || idx == len(spec)-1 {
		return "ytdReturn", SortDesc
	}
	key := spec[:idx]
	switch SortDirection(spec[idx+1:]) {
	case SortAsc:
		return key, SortAsc
	case SortDesc:
		return key, SortDesc
	default:
		return "ytdReturn", SortDesc
	}
}

// ScreenerService computes the visible row set: the filtered, ordered
// subsequence of the full stock list for the current criteria.
type ScreenerService struct{}

func NewScreenerService() *ScreenerService {
	return &ScreenerService{}
}

// Apply filters conjunctively, then sorts. The input slice is not mutated.
func (s *ScreenerService) Apply(stocks []models.StockSummary, criteria ScreenerCriteria) []models.StockSummary {
	filtered := make([]models.StockSummary, 0, len(stocks))
	for _, stock := range stocks {
		if s.matches(stock, criteria) {
			filtered = append(filtered, stock)
		}
	}
	s.sortStocks(filtered, criteria)
	return filtered
}

// matches applies the three independently togglable filters; a record must
// pass every active one.
func (s *ScreenerService) matches(stock models.StockSummary, criteria ScreenerCriteria) bool {
	if criteria.Search != "" {
		needle := strings.ToLower(criteria.Search)
		if !strings.Contains(strings.ToLower(stock.Symbol), needle) &&
			!strings.Contains(strings.ToLower(stock.Name), needle) {
			return false
		}
	}
	if criteria.Sector != "" && stock.Sector != criteria.Sector {
		return false
	}
	if criteria.Signal != "" && stock.MacdSignal != criteria.Signal {
		return false
	}
	return true
}

func (s *ScreenerService) sortStocks(stocks []models.StockSummary, criteria ScreenerCriteria) {
	key := criteria.SortKey
	if key == "" {
		key = "ytdReturn"
	}
	dir := criteria.SortDir
	if dir == "" {
		dir = SortDesc
	}

	// Absent values sort last under both directions; ties break on symbol
	// ascending so the order is reproducible across runs regardless of the
	// underlying sort algorithm.
	sort.SliceStable(stocks, func(i, j int) bool {
		iAbsent, jAbsent := keyAbsent(stocks[i], key), keyAbsent(stocks[j], key)
		if iAbsent != jAbsent {
			return jAbsent
		}
		cmp := compareByKey(stocks[i], stocks[j], key)
		if cmp == 0 {
			return stocks[i].Symbol < stocks[j].Symbol
		}
		if dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// keyAbsent reports whether a record has no value for a numeric sort key.
// String keys are always present.
func keyAbsent(stock models.StockSummary, key string) bool {
	switch key {
	case "currentPrice":
		return stock.CurrentPrice == nil
	case "lastChange":
		return stock.LastChange == nil
	case "rsi":
		return stock.RSI == nil
	case "marketCap":
		return stock.MarketCap == nil
	case "ytdReturn":
		return stock.YtdReturn == nil
	default:
		return false
	}
}

// compareByKey three-way compares two records on a sort key. Strings compare
// case-insensitively.
func compareByKey(a, b models.StockSummary, key string) int {
	switch key {
	case "symbol":
		return compareStrings(a.Symbol, b.Symbol)
	case "name":
		return compareStrings(a.Name, b.Name)
	case "sector":
		return compareStrings(a.Sector, b.Sector)
	case "currentPrice":
		return compareFloats(a.CurrentPrice, b.CurrentPrice)
	case "lastChange":
		return compareFloats(a.LastChange, b.LastChange)
	case "rsi":
		return compareFloats(a.RSI, b.RSI)
	case "marketCap":
		return compareFloats(a.MarketCap, b.MarketCap)
	default: // ytdReturn
		return compareFloats(a.YtdReturn, b.YtdReturn)
	}
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareFloats three-way compares two nullable values. Nil placement is
// handled by the caller; a lone nil still compares below any present value.
func compareFloats(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a > *b:
		return 1
	case *a < *b:
		return -1
	default:
		return 0
	}
}
