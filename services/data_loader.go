package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/quantview/stock-dashboard/models"
	"github.com/quantview/stock-dashboard/shared"
	"github.com/sirupsen/logrus"
)

// DataLoaderService fetches the two-tier analysis dataset: the consolidated
// summary document and the per-symbol detail documents. There are no retries;
// a failed fetch is logged and the record omitted.
type DataLoaderService struct {
	baseURL string
	client  *http.Client
	Metrics *shared.ServiceMetrics
}

// NewDataLoaderService creates a loader against the given data host.
func NewDataLoaderService(baseURL string, factory *shared.HTTPClientFactory, timeout time.Duration) *DataLoaderService {
	return &DataLoaderService{
		baseURL: baseURL,
		client:  factory.CreateOptimizedHTTPClient(timeout),
		Metrics: shared.NewServiceMetrics("DataLoaderService"),
	}
}

// LoadSummary fetches data/summary.json. Returns nil on any failure.
func (s *DataLoaderService) LoadSummary(ctx context.Context) (*models.Summary, error) {
	var summary models.Summary
	if err := s.fetchJSON(ctx, s.baseURL+"/data/summary.json", &summary); err != nil {
		serviceErr := shared.WrapError(err, shared.ErrorCategoryNetwork, "SUMMARY_LOAD_FAILED", "DataLoaderService", "LoadSummary")
		serviceErr.LogError()
		return nil, serviceErr
	}
	if len(summary.Stocks) == 0 {
		serviceErr := shared.NewServiceError(shared.ErrorCategoryValidation, "SUMMARY_EMPTY",
			"summary document contains no stocks", "DataLoaderService", "LoadSummary", nil)
		serviceErr.LogError()
		return nil, serviceErr
	}
	return &summary, nil
}

// LoadStockData fetches one per-symbol detail document. Returns nil on
// failure; the caller decides whether that is fatal (detail page) or a
// degraded render (missing sparkline).
func (s *DataLoaderService) LoadStockData(ctx context.Context, symbol string) (*models.StockDetail, error) {
	var detail models.StockDetail
	url := fmt.Sprintf("%s/data/stocks/%s.json", s.baseURL, symbol)
	if err := s.fetchJSON(ctx, url, &detail); err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "DataLoaderService",
			"symbol":    symbol,
		}).Warnf("Failed to load stock detail: %v", err)
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "STOCK_LOAD_FAILED", "DataLoaderService", "LoadStockData")
	}
	return &detail, nil
}

// LoadAllStockData fetches the detail document for every stock listed in the
// summary, all requests in flight at once. Each failure is caught
// independently and that symbol omitted from the result; order of the
// returned map carries no meaning. The dataset is bounded by the index
// constituent count, so no concurrency cap is applied.
func (s *DataLoaderService) LoadAllStockData(ctx context.Context, summary *models.Summary) map[string]*models.StockDetail {
	results := make(map[string]*models.StockDetail, len(summary.Stocks))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, stock := range summary.Stocks {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			detail, err := s.LoadStockData(ctx, symbol)
			if err != nil {
				return // already logged as a warning
			}
			mu.Lock()
			results[symbol] = detail
			mu.Unlock()
		}(stock.Symbol)
	}
	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"component": "DataLoaderService",
		"requested": len(summary.Stocks),
		"loaded":    len(results),
	}).Info("Batch stock detail load complete")

	return results
}

func (s *DataLoaderService) fetchJSON(ctx context.Context, url string, out interface{}) error {
	startTime := time.Now()
	success := false
	defer func() {
		s.Metrics.RecordRequest(success, time.Since(startTime))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	shared.SetJSONRequestHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", url, err)
	}

	success = true
	return nil
}
