package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/services"
)

// APIHandler serves the JSON mirror of the dashboard data for programmatic
// consumers.
type APIHandler struct {
	Store    *services.MarketStoreService
	Screener *services.ScreenerService
}

func NewAPIHandler(store *services.MarketStoreService, screener *services.ScreenerService) *APIHandler {
	return &APIHandler{Store: store, Screener: screener}
}

func (h *APIHandler) snapshotOrError(c *fiber.Ctx) (*services.DatasetSnapshot, error) {
	snap := h.Store.Snapshot()
	if snap == nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "market data not loaded",
		})
	}
	return snap, nil
}

// GetStocks returns the filtered/sorted stock list; it accepts the same
// query parameters as the dashboard page.
func (h *APIHandler) GetStocks(c *fiber.Ctx) error {
	snap, err := h.snapshotOrError(c)
	if snap == nil {
		return err
	}
	criteria := criteriaFromQuery(c)
	stocks := h.Screener.Apply(snap.Summary.Stocks, criteria)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stocks,
	})
}

// GetStockBySymbol returns one per-symbol detail document.
func (h *APIHandler) GetStockBySymbol(c *fiber.Ctx) error {
	snap, err := h.snapshotOrError(c)
	if snap == nil {
		return err
	}
	symbol := c.Params("symbol")
	detail := snap.Details[symbol]
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "stock not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    detail,
	})
}

// GetOverview returns the market-wide aggregate stats.
func (h *APIHandler) GetOverview(c *fiber.Ctx) error {
	snap, err := h.snapshotOrError(c)
	if snap == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap.Summary.MarketOverview,
	})
}

// GetSectors returns the per-sector aggregates.
func (h *APIHandler) GetSectors(c *fiber.Ctx) error {
	snap, err := h.snapshotOrError(c)
	if snap == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap.Summary.SectorStats,
	})
}

// GetRankings returns the top gainers and losers.
func (h *APIHandler) GetRankings(c *fiber.Ctx) error {
	snap, err := h.snapshotOrError(c)
	if snap == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap.Summary.Rankings,
	})
}
