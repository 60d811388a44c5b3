package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/services"
)

// PerformanceHandler exposes service metrics for operations.
type PerformanceHandler struct {
	Store  *services.MarketStoreService
	Loader *services.DataLoaderService
	Views  *services.ViewService
}

func NewPerformanceHandler(store *services.MarketStoreService, loader *services.DataLoaderService, views *services.ViewService) *PerformanceHandler {
	return &PerformanceHandler{Store: store, Loader: loader, Views: views}
}

// GetPerformanceMetrics reports loader metrics and snapshot freshness.
func (h *PerformanceHandler) GetPerformanceMetrics(c *fiber.Ctx) error {
	loaderMetrics := h.Loader.Metrics.GetSnapshot()

	snapshotInfo := fiber.Map{"loaded": false}
	if snap := h.Store.Snapshot(); snap != nil {
		snapshotInfo = fiber.Map{
			"loaded":      true,
			"snapshot_id": snap.ID.String(),
			"loaded_at":   snap.LoadedAt,
			"age_seconds": int64(time.Since(snap.LoadedAt).Seconds()),
			"stocks":      len(snap.Summary.Stocks),
			"details":     len(snap.Details),
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"loader":          loaderMetrics,
			"loader_success":  h.Loader.Metrics.GetSuccessRate(),
			"snapshot":        snapshotInfo,
			"live_sparklines": h.Views.Registry().Live(),
		},
	})
}
