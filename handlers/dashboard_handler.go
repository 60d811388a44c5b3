package handlers

import (
	"bytes"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/models"
	"github.com/quantview/stock-dashboard/services"
	"github.com/quantview/stock-dashboard/templates"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	Store    *services.MarketStoreService
	Screener *services.ScreenerService
	Views    *services.ViewService
}

func NewDashboardHandler(store *services.MarketStoreService, screener *services.ScreenerService, views *services.ViewService) *DashboardHandler {
	return &DashboardHandler{Store: store, Screener: screener, Views: views}
}

// GetDashboard renders the main page. The overview, heatmap and performer
// sections render from the summary alone; table sparklines degrade per
// symbol when a detail document failed to load.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	if snap == nil {
		return renderErrorPage(c, fiber.StatusServiceUnavailable, templates.ErrorData{
			Title:   "Market data unavailable",
			Message: "Failed to load analysis data. Please try again later.",
		})
	}

	criteria := criteriaFromQuery(c)
	filtered := h.Screener.Apply(snap.Summary.Stocks, criteria)
	rows, sparklines := h.Views.BuildTableRows(filtered, snap.Details)

	data := templates.DashboardData{
		Title:        "Market Analysis Dashboard",
		AnalysisDate: snap.Summary.MarketOverview.AnalysisDate,
		SnapshotID:   snap.ID.String(),
		Search:       criteria.Search,
		Sector:       criteria.Sector,
		Signal:       criteria.Signal,
		SortSpec:     criteria.SortKey + "-" + string(criteria.SortDir),
		Sectors:      sectorNames(snap.Summary.SectorStats),
		Cards:        h.Views.BuildOverviewCards(snap.Summary.MarketOverview),
		Tiles:        h.Views.BuildHeatmapTiles(snap.Summary.SectorStats),
		Gainers:      h.Views.BuildPerformerBars(snap.Summary.Rankings.TopGainers),
		Losers:       h.Views.BuildPerformerBars(snap.Summary.Rankings.TopLosers),
		Rows:         rows,
		Overbought:   h.Views.BuildWatchEntries(snap.Summary.Overbought),
		Oversold:     h.Views.BuildWatchEntries(snap.Summary.Oversold),
		Sparklines:   sparklines,
	}

	var buf bytes.Buffer
	if err := templates.RenderDashboard(&buf, data); err != nil {
		logrus.Errorf("Dashboard render failed: %v", err)
		return renderErrorPage(c, fiber.StatusInternalServerError, templates.ErrorData{
			Title:   "Render error",
			Message: "The dashboard could not be rendered.",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// criteriaFromQuery rebuilds the screener criteria from the control values
// carried on the query string.
func criteriaFromQuery(c *fiber.Ctx) services.ScreenerCriteria {
	criteria := services.DefaultCriteria()
	criteria.Search = c.Query("search")
	criteria.Sector = c.Query("sector")
	criteria.Signal = c.Query("signal")
	if spec := c.Query("sort"); spec != "" {
		criteria.SortKey, criteria.SortDir = services.ParseSortSpec(spec)
	}
	return criteria
}

func sectorNames(stats map[string]models.SectorStat) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderErrorPage(c *fiber.Ctx, status int, data templates.ErrorData) error {
	var buf bytes.Buffer
	if err := templates.RenderError(&buf, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(data.Message)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
