// Package worker defines worker contracts for asynchronously evaluating
// shared builds and ranking them in the community vault.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/kitforge/kitforge/internal/domain/model"
	"github.com/kitforge/kitforge/pkg/logger"
	"github.com/kitforge/kitforge/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Event is what workers read off the queue.
type Event = model.ShareEvent

// Evaluator re-runs the recommendation pipeline for a submitted request.
// Client-supplied builds and scores are never trusted; the worker evaluates
// server-side and ranks the result.
type Evaluator interface {
	Evaluate(ctx context.Context, req model.BuildRequest) (*model.Build, error)
}

// Ranker records an evaluated build in the community vault.
type Ranker interface {
	Submit(ctx context.Context, buildID string, score int, class model.Class, activity model.Activity, tier string) (bool, error)
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes share submissions until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	ranker    Ranker
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, ranker Ranker, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		ranker:    ranker,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processSubmission(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing submission", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker. Safe to call more than once.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processSubmission evaluates a single shared build and ranks it.
func (w *InMemoryWorker) processSubmission(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	build, err := w.evaluator.Evaluate(ctx, event.Request)
	if err != nil {
		metrics.RecordWorkerError("evaluate")
		w.logger.Error(ctx, "evaluation failed for submission",
			logger.String("submissionID", event.SubmissionID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to evaluate submission %s: %w", event.SubmissionID, err)
	}

	updated, err := w.ranker.Submit(ctx, event.BuildID, build.Score.Total, build.Class, build.Activity, build.Score.Tier)
	if err != nil {
		metrics.RecordWorkerError("rank")
		w.logger.Error(ctx, "vault update failed for submission",
			logger.String("submissionID", event.SubmissionID),
			logger.Error(err),
		)
		return fmt.Errorf("vault update failed: %w", err)
	}
	if updated {
		metrics.RecordVaultUpdate()
	}
	return nil
}

// Pool manages multiple workers. Lifecycle is per worker: each worker owns
// its shutdown channel, and Stop/Shutdown fan out to them.
type Pool struct {
	workers []*InMemoryWorker
	logger  logger.Logger
}

// NewPool creates a worker pool. A non-positive count defaults to a multiple
// of the CPU count.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, ranker Ranker) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			evaluator,
			ranker,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers, bounded per worker.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
}

// Shutdown stops the pool, waiting for in-flight submissions up to the pool
// timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
