package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/quantview/stock-dashboard/config"
	"github.com/quantview/stock-dashboard/handlers"
	"github.com/quantview/stock-dashboard/jobs"
	"github.com/quantview/stock-dashboard/services"
	"github.com/quantview/stock-dashboard/shared"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", cfg.LogLevel)
	}

	// Initialize services
	clientFactory := shared.NewHTTPClientFactory(cfg.GetFetchTimeout())
	defer clientFactory.CleanupAllClients()

	loader := services.NewDataLoaderService(cfg.DataBaseURL, clientFactory, cfg.GetFetchTimeout())
	store := services.NewMarketStoreService(loader)
	screener := services.NewScreenerService()
	chartBuilder := services.NewChartBuilderService(services.DefaultPalette())
	views := services.NewViewService(chartBuilder, services.NewChartRegistry())

	logrus.Info("Stock dashboard services initialized:")
	logrus.Infof("  - Data loader (base URL: %s, timeout: %v)", cfg.DataBaseURL, cfg.GetFetchTimeout())
	logrus.Infof("  - Dataset refresh interval: %v", cfg.GetRefreshInterval())

	// Initial dataset load. A failure is tolerated: the server starts and
	// pages show the data-unavailable message until a refresh succeeds.
	if err := store.Refresh(context.Background()); err != nil {
		logrus.Errorf("Initial dataset load failed: %v", err)
	}

	// Start background refresh
	refreshJob := jobs.NewDataRefreshJob(store, cfg.GetRefreshInterval())
	refreshJob.Start()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(store, screener, views)
	stockHandler := handlers.NewStockHandler(store, loader, views, chartBuilder)
	apiHandler := handlers.NewAPIHandler(store, screener)
	performanceHandler := handlers.NewPerformanceHandler(store, loader, views)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", healthCheck(store))

	// Pages
	app.Get("/", dashboardHandler.GetDashboard)
	app.Get("/stock", stockHandler.GetStock)

	// JSON API
	api := app.Group("/api/v1")
	api.Get("/stocks", apiHandler.GetStocks)
	api.Get("/stocks/:symbol", apiHandler.GetStockBySymbol)
	api.Get("/overview", apiHandler.GetOverview)
	api.Get("/sectors", apiHandler.GetSectors)
	api.Get("/rankings", apiHandler.GetRankings)
	api.Get("/performance/metrics", performanceHandler.GetPerformanceMetrics)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
