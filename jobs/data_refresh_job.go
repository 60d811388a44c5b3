package jobs

import (
	"context"
	"time"

	"github.com/quantview/stock-dashboard/services"
	"github.com/sirupsen/logrus"
)

// DataRefreshJob periodically reloads the dataset snapshot. The upstream
// analysis pipeline regenerates the JSON files on its own schedule; this job
// just keeps the served snapshot from going stale.
type DataRefreshJob struct {
	Store    *services.MarketStoreService
	Interval time.Duration
}

func NewDataRefreshJob(store *services.MarketStoreService, interval time.Duration) *DataRefreshJob {
	return &DataRefreshJob{Store: store, Interval: interval}
}

func (j *DataRefreshJob) Start() {
	logrus.Infof("Starting Data Refresh Job (runs every %v)...", j.Interval)
	ticker := time.NewTicker(j.Interval)

	go func() {
		for range ticker.C {
			j.Run()
		}
	}()
}

// Run refreshes the snapshot once. A failure keeps the previous snapshot
// serving.
func (j *DataRefreshJob) Run() {
	startTime := time.Now()
	logrus.Info("Running Data Refresh Job...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := j.Store.Refresh(ctx); err != nil {
		logrus.Errorf("Data Refresh Job failed: %v", err)
		return
	}

	logrus.Infof("Data Refresh Job completed successfully (took %v)", time.Since(startTime))
}
