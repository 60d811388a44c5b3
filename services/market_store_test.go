package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestStoreEmptyBeforeFirstRefresh(t *testing.T) {
	loader := newTestLoader("http://127.0.0.1:0")
	store := NewMarketStoreService(loader)

	if store.Snapshot() != nil {
		t.Error("expected nil snapshot before first refresh")
	}
	if store.Detail("AAA") != nil {
		t.Error("expected nil detail before first refresh")
	}
}

func TestRefreshSwapsSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/summary.json":
			w.Write([]byte(summaryFixture))
		case "/data/stocks/AAA.json", "/data/stocks/BBB.json":
			w.Write([]byte(detailFixture))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	store := NewMarketStoreService(newTestLoader(server.URL))

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	first := store.Snapshot()
	if first == nil {
		t.Fatal("expected snapshot after refresh")
	}
	if len(first.Summary.Stocks) != 2 || len(first.Details) != 2 {
		t.Errorf("snapshot holds %d stocks / %d details", len(first.Summary.Stocks), len(first.Details))
	}
	if store.Detail("AAA") == nil {
		t.Error("expected detail lookup to hit the snapshot")
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	second := store.Snapshot()
	if second.ID == first.ID {
		t.Error("expected a new snapshot generation id")
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	var mu sync.Mutex
	failing := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		down := failing
		mu.Unlock()
		if down {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/data/summary.json":
			w.Write([]byte(summaryFixture))
		default:
			w.Write([]byte(detailFixture))
		}
	}))
	defer server.Close()

	store := NewMarketStoreService(newTestLoader(server.URL))
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("initial Refresh: %v", err)
	}
	before := store.Snapshot()

	mu.Lock()
	failing = true
	mu.Unlock()

	if err := store.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to fail while the data host is down")
	}

	after := store.Snapshot()
	if after == nil || after.ID != before.ID {
		t.Error("failed refresh must keep the previous snapshot serving")
	}
}
