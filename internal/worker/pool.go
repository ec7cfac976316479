// Package worker removes expired BGM artifacts in the background.
package worker

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/ports"
)

// Job is the removal of one artifact's file and record.
type Job struct {
	ArtifactID string
	Path       string
}

// Pool manages background workers for async jobs.
type Pool struct {
	repo    ports.ArtifactRepository
	jobs    chan Job
	workers int
	wg      sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewPool creates a worker pool with the given worker count and queue size.
func NewPool(repo ports.ArtifactRepository, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		repo:     repo,
		jobs:     make(chan Job, queueSize),
		workers:  workers,
		inflight: make(map[string]struct{}),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. It reports false when the job was
// dropped because the queue is full or the artifact is already queued.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	if _, dup := p.inflight[job.ArtifactID]; dup {
		p.mu.Unlock()
		return false
	}
	p.inflight[job.ArtifactID] = struct{}{}
	p.mu.Unlock()

	select {
	case p.jobs <- job:
		return true
	default:
		p.done(job.ArtifactID)
		log.Printf("WARN worker: dropping cleanup for %s", job.ArtifactID)
		return false
	}
}

func (p *Pool) done(id string) {
	p.mu.Lock()
	delete(p.inflight, id)
	p.mu.Unlock()
}

func (p *Pool) processJob(job Job) {
	defer p.done(job.ArtifactID)

	if job.Path != "" {
		if err := os.Remove(job.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN worker: failed to remove %s: %v", job.Path, err)
			return
		}
	}
	if err := p.repo.Delete(context.Background(), job.ArtifactID); err != nil {
		log.Printf("WARN worker: failed to delete artifact %s: %v", job.ArtifactID, err)
		return
	}
	log.Printf("🧹 Removed expired artifact %s", job.ArtifactID)
}
