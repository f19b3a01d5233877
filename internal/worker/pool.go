// Package worker provides background listening sync for users.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

var (
	// ErrQueueFull is returned when a job cannot be queued without blocking.
	ErrQueueFull = errors.New("worker: queue full")
	// ErrStopped is returned when submitting to a stopped pool.
	ErrStopped = errors.New("worker: pool stopped")
)

// DefaultJobTimeout bounds a single sync run.
const DefaultJobTimeout = 2 * time.Minute

// Syncer is the service operation a sync job runs.
type Syncer interface {
	SyncListening(ctx context.Context, userID string) ([]domain.DailyListening, error)
}

// Job represents a queued listening sync for one user.
type Job struct {
	ID         string
	UserID     string
	EnqueuedAt time.Time
}

// Pool manages background workers for sync jobs.
type Pool struct {
	syncer  Syncer
	jobs    chan Job
	timeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	// done is called after each job with its result; used by tests.
	done func(Job, error)
}

// Option configures a Pool.
type Option func(*Pool)

// WithJobTimeout overrides DefaultJobTimeout.
func WithJobTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithJobDone registers a callback invoked after every processed job.
func WithJobDone(fn func(Job, error)) Option {
	return func(p *Pool) {
		p.done = fn
	}
}

// NewPool creates a worker pool with the given queue size.
func NewPool(syncer Syncer, queueSize int, opts ...Option) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	p := &Pool{
		syncer:  syncer,
		jobs:    make(chan Job, queueSize),
		timeout: DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for queued jobs to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a sync for userID without blocking.
func (p *Pool) Submit(userID string) (Job, error) {
	job := Job{ID: uuid.NewString(), UserID: userID, EnqueuedAt: time.Now()}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return Job{}, ErrStopped
	}
	select {
	case p.jobs <- job:
		return job, nil
	default:
		log.Printf("WARN worker: dropping sync job for %s", userID)
		return Job{}, ErrQueueFull
	}
}

// RunPeriodic submits a sync for every user returned by users on each tick
// until ctx is done.
func (p *Pool) RunPeriodic(ctx context.Context, interval time.Duration, users func() []string) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, userID := range users() {
				if _, err := p.Submit(userID); err != nil {
					log.Printf("WARN worker: periodic sync for %s not queued: %v", userID, err)
				}
			}
		}
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	days, err := p.syncer.SyncListening(ctx, job.UserID)
	if err != nil {
		log.Printf("WARN worker: sync %s for %s failed: %v", job.ID, job.UserID, err)
	} else {
		log.Printf("DEBUG worker: sync %s for %s aggregated %d day(s) in %s", job.ID, job.UserID, len(days), time.Since(job.EnqueuedAt).Round(time.Millisecond))
	}
	if p.done != nil {
		p.done(job, err)
	}
}
