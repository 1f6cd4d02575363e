package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTTL is how long a game is retained after creation, finished or
	// not. There is no grace period and no archival: the reaper is a memory
	// bound, not an audit mechanism.
	DefaultTTL = 4 * time.Hour

	// DefaultSweepInterval is how often the reaper scans for expired games.
	DefaultSweepInterval = 30 * time.Minute
)

// Reaper periodically evicts expired games from a Store. It only operates
// through the store's public eviction interface.
type Reaper struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	logger   zerolog.Logger
}

// NewReaper creates a reaper for the given store. Non-positive ttl or
// interval fall back to the defaults.
func NewReaper(store *Store, ttl, interval time.Duration, logger zerolog.Logger) *Reaper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reaper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a fixed interval until ctx is canceled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(time.Now()); removed > 0 {
				r.logger.Info().Int("removed", removed).Msg("evicted expired games")
			}
		}
	}
}

// Sweep removes every game older than the retention window and returns how
// many were evicted.
func (r *Reaper) Sweep(now time.Time) int {
	removed := 0
	r.store.ForEachExpired(now, r.ttl, func(id string) {
		r.store.Remove(id)
		removed++
	})
	return removed
}
