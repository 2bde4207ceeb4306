package cache

import (
	"sync/atomic"
	"time"
)

// Stats 缓存函数运行计数
type Stats struct {
	hits          atomic.Int64
	misses        atomic.Int64
	staleHits     atomic.Int64
	refreshes     atomic.Int64
	refreshErrors atomic.Int64
	lastRefresh   atomic.Int64 // unix nano
}

// StatsSnapshot 某一时刻的计数快照
type StatsSnapshot struct {
	Hits          int64     `json:"hits"`
	Misses        int64     `json:"misses"`
	StaleHits     int64     `json:"stale_hits"`
	Refreshes     int64     `json:"refreshes"`
	RefreshErrors int64     `json:"refresh_errors"`
	LastRefresh   time.Time `json:"last_refresh"`
}

func (s *Stats) hit() { s.hits.Add(1) }
func (s *Stats) miss() { s.misses.Add(1) }
func (s *Stats) staleHit() { s.staleHits.Add(1) }
func (s *Stats) failed() { s.refreshErrors.Add(1) }

func (s *Stats) refreshed(at time.Time) {
	s.refreshes.Add(1)
	s.lastRefresh.Store(at.UnixNano())
}

func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		StaleHits:     s.staleHits.Load(),
		Refreshes:     s.refreshes.Load(),
		RefreshErrors: s.refreshErrors.Load(),
	}
	if ns := s.lastRefresh.Load(); ns != 0 {
		snap.LastRefresh = time.Unix(0, ns)
	}
	return snap
}
