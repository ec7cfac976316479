package worker

import (
	"context"
	"log"
	"time"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/ports"
)

// sweepBatch bounds how many expired artifacts one tick queues.
const sweepBatch = 100

// Sweeper periodically queues expired artifacts on a Pool.
type Sweeper struct {
	repo     ports.ArtifactRepository
	pool     *Pool
	interval time.Duration
	now      func() time.Time
}

// NewSweeper returns a Sweeper ticking every interval.
func NewSweeper(repo ports.ArtifactRepository, pool *Pool, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{repo: repo, pool: pool, interval: interval, now: time.Now}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep queues every currently expired artifact and returns how many were
// accepted by the pool.
func (s *Sweeper) Sweep(ctx context.Context) int {
	expired, err := s.repo.ListExpired(ctx, s.now(), sweepBatch)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("WARN worker: listing expired artifacts failed: %v", err)
		}
		return 0
	}
	queued := 0
	for _, art := range expired {
		if s.pool.Submit(Job{ArtifactID: art.ID, Path: art.Path}) {
			queued++
		}
	}
	return queued
}
