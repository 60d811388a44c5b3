package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/services"
	"github.com/quantview/stock-dashboard/templates"
	"github.com/sirupsen/logrus"
)

type StockHandler struct {
	Store  *services.MarketStoreService
	Loader *services.DataLoaderService
	Views  *services.ViewService
	Charts *services.ChartBuilderService
}

func NewStockHandler(store *services.MarketStoreService, loader *services.DataLoaderService, views *services.ViewService, charts *services.ChartBuilderService) *StockHandler {
	return &StockHandler{Store: store, Loader: loader, Views: views, Charts: charts}
}

// GetStock renders the per-symbol detail page. A missing symbol parameter or
// a missing detail document yields a message page with a link back; absent
// indicator sub-objects only drop the corresponding chart.
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	symbol := c.Query("symbol")
	if symbol == "" {
		return renderErrorPage(c, fiber.StatusBadRequest, templates.ErrorData{
			Title:    "No stock selected",
			Message:  "The page was opened without a stock symbol.",
			BackLink: "/",
		})
	}

	detail := h.Store.Detail(symbol)
	if detail == nil {
		// Not in the snapshot (batch load may have missed it); try a
		// direct fetch before giving up.
		detail, _ = h.Loader.LoadStockData(c.Context(), symbol)
	}
	if detail == nil {
		return renderErrorPage(c, fiber.StatusNotFound, templates.ErrorData{
			Title:    "Stock not found",
			Message:  "No analysis data is available for \"" + symbol + "\".",
			BackLink: "/",
		})
	}

	charts := make([]*services.ChartHandle, 0, 4)
	for _, handle := range []*services.ChartHandle{
		h.Charts.BuildCandlestick("chart-price", detail),
		h.Charts.BuildRSI("chart-rsi", detail),
		h.Charts.BuildMACD("chart-macd", detail),
		h.Charts.BuildBollinger("chart-bollinger", detail),
	} {
		if handle != nil {
			charts = append(charts, handle)
		}
	}

	data := templates.StockData{
		Title:        detail.Symbol + " - Stock Analysis",
		Symbol:       detail.Symbol,
		Name:         detail.Name,
		Sector:       detail.Sector,
		AnalysisDate: detail.AnalysisDate,
		MetricCards:  h.Views.BuildMetricCards(detail),
		KeyStats:     h.Views.BuildKeyStats(detail),
		Charts:       charts,
	}

	var buf bytes.Buffer
	if err := templates.RenderStock(&buf, data); err != nil {
		logrus.Errorf("Stock page render failed for %s: %v", symbol, err)
		return renderErrorPage(c, fiber.StatusInternalServerError, templates.ErrorData{
			Title:    "Render error",
			Message:  "The stock page could not be rendered.",
			BackLink: "/",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
