package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quantview/stock-dashboard/services"
)

// healthCheck reports process liveness and dataset freshness.
func healthCheck(store *services.MarketStoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"dataset":   "not loaded",
		}
		if snap := store.Snapshot(); snap != nil {
			status["dataset"] = "loaded"
			status["snapshot_id"] = snap.ID.String()
			status["loaded_at"] = snap.LoadedAt
		}
		return c.JSON(status)
	}
}
