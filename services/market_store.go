package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantview/stock-dashboard/models"
	"github.com/sirupsen/logrus"
)

// DatasetSnapshot is one immutable loaded generation of the dataset. The
// summary and detail documents are never mutated after the swap; a refresh
// builds a complete new snapshot and replaces the pointer.
type DatasetSnapshot struct {
	ID       uuid.UUID
	Summary  *models.Summary
	Details  map[string]*models.StockDetail
	LoadedAt time.Time
}

// MarketStoreService owns the current dataset snapshot. It is the explicit
// home of what a page would otherwise keep as module-level globals: readers
// get a whole snapshot and never observe a half-refreshed state.
type MarketStoreService struct {
	loader    *DataLoaderService
	mutex     sync.RWMutex
	current   *DatasetSnapshot
	refreshMu sync.Mutex // one refresh at a time
}

// NewMarketStoreService creates an empty store; Refresh populates it.
func NewMarketStoreService(loader *DataLoaderService) *MarketStoreService {
	return &MarketStoreService{loader: loader}
}

// Snapshot returns the current dataset generation, or nil before the first
// successful refresh.
func (s *MarketStoreService) Snapshot() *DatasetSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.current
}

// Detail returns one symbol's detail document from the current snapshot.
func (s *MarketStoreService) Detail(symbol string) *models.StockDetail {
	snap := s.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Details[symbol]
}

// Refresh loads a complete new snapshot and swaps it in. A summary failure
// aborts the refresh and keeps the previous snapshot serving; individual
// detail failures only cost that symbol its sparkline.
func (s *MarketStoreService) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	summary, err := s.loader.LoadSummary(ctx)
	if err != nil {
		return err
	}

	details := s.loader.LoadAllStockData(ctx, summary)

	snapshot := &DatasetSnapshot{
		ID:       uuid.New(),
		Summary:  summary,
		Details:  details,
		LoadedAt: time.Now(),
	}

	s.mutex.Lock()
	s.current = snapshot
	s.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component":   "MarketStoreService",
		"snapshot_id": snapshot.ID,
		"stocks":      len(summary.Stocks),
		"details":     len(details),
	}).Info("Dataset snapshot refreshed")

	return nil
}
