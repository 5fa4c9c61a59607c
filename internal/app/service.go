// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	sharequeue "github.com/kitforge/kitforge/internal/adapters/mq/queue"
	workerpool "github.com/kitforge/kitforge/internal/adapters/mq/worker"
	repository "github.com/kitforge/kitforge/internal/adapters/repository"
	"github.com/kitforge/kitforge/internal/domain/alternatives"
	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/compose"
	"github.com/kitforge/kitforge/internal/domain/dedupe"
	"github.com/kitforge/kitforge/internal/domain/intent"
	"github.com/kitforge/kitforge/internal/domain/model"
	"github.com/kitforge/kitforge/internal/domain/scoring"
	"github.com/kitforge/kitforge/internal/domain/synergy"
	"github.com/kitforge/kitforge/pkg/logger"
	"github.com/kitforge/kitforge/pkg/metrics"
)

// CatalogProvider serves the active catalog snapshot.
type CatalogProvider interface {
	Snapshot() catalog.View
	Len() int
}

// RecommendInput is a recommendation request before intent resolution.
// RawText and Filters may both be set; structured filters win. Options
// apply on top of the resolved request regardless of the input path.
type RecommendInput struct {
	RawText string
	Filters *model.Filters
	Options *RecommendOptions
}

// RecommendOptions carries per-request tuning that layers over the
// resolved intent: a locked exotic, inventory constraints, and control
// over how many alternatives the response carries.
type RecommendOptions struct {
	LockedExotic        string             `json:"locked_exotic,omitempty"`
	Constraints         *model.Constraints `json:"constraints,omitempty"`
	IncludeAlternatives *bool              `json:"include_alternatives,omitempty"`
	AlternativesCount   int                `json:"alternatives_count,omitempty"`
}

// Recommendation is the primary build plus ranked alternatives.
type Recommendation struct {
	Build        *model.Build   `json:"build"`
	Alternatives []*model.Build `json:"alternatives"`
}

// Service implements the API dependencies for the recommendation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   CatalogProvider
	parser    *intent.Parser
	composer  *compose.Composer
	detector  *synergy.Detector
	scorer    *scoring.Engine
	generator *alternatives.Generator
	vault     repository.Store
	deduper   dedupe.Deduper
	queue     sharequeue.Queue
	pool      *workerpool.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	alternativeCount int
	categoryWeights  map[string]float64
	statTargetBase   int
	statTargetFav    int
	statTargetFocus  int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the catalog provider. Required before Start.
func WithCatalog(provider CatalogProvider) Option {
	return func(s *Service) {
		s.catalog = provider
	}
}

// WithWorkerCount sets the number of share evaluation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the share submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the submission deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithAlternativeCount sets how many alternatives a recommendation carries.
func WithAlternativeCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.alternativeCount = count
		}
	}
}

// WithCategoryWeights overrides score category weights.
func WithCategoryWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.categoryWeights = weights
	}
}

// WithStatTargets steers the composer's per-stat investment targets.
func WithStatTargets(base, favored, focus int) Option {
	return func(s *Service) {
		if base >= 0 && favored >= base && focus >= favored {
			s.statTargetBase = base
			s.statTargetFav = favored
			s.statTargetFocus = focus
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		parser:           intent.New(),
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10_000,
		dedupeSize:       50_000,
		alternativeCount: 3,
		statTargetBase:   40,
		statTargetFav:    100,
		statTargetFocus:  140,
		stopCh:           make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.catalog == nil {
		return ErrNoCatalog
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.composer = compose.New(
		compose.WithStatTargets(s.statTargetBase, s.statTargetFav, s.statTargetFocus),
	)
	s.detector = synergy.New()
	s.scorer = scoring.New(
		scoring.WithCategoryWeightsFromConfig(s.categoryWeights),
	)
	s.generator = alternatives.New(s.composer, s.detector, s.scorer,
		alternatives.WithMaxCount(s.alternativeCount),
	)

	s.vault = repository.NewTreapStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = sharequeue.NewInMemoryQueue(
		sharequeue.WithCapacity(s.queueSize),
		sharequeue.WithBufferSize(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, s.vault)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("catalogItems", s.catalog.Len()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if s.pool != nil {
		s.pool.Stop()
	}
	if s.vault != nil {
		if closer, ok := s.vault.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
	if q, ok := s.queue.(*sharequeue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Resolve turns a raw recommendation input into a normalized build request.
// Per-request options override whatever the text or filters resolved to.
func (s *Service) Resolve(input RecommendInput) model.BuildRequest {
	var req model.BuildRequest
	if input.Filters != nil {
		req = s.parser.ParseStructured(*input.Filters)
		req.RawText = input.RawText
	} else {
		req = s.parser.Parse(input.RawText)
	}
	if opts := input.Options; opts != nil {
		if opts.LockedExotic != "" {
			req.LockedExotic = opts.LockedExotic
		}
		if opts.Constraints != nil {
			req.Constraints = *opts.Constraints
		}
	}
	return req
}

// Recommend resolves intent, composes the primary build, and generates
// ranked alternatives.
func (s *Service) Recommend(ctx context.Context, input RecommendInput) (*Recommendation, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	start := time.Now()
	defer func() {
		metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	}()

	req := s.Resolve(input)
	view := s.catalog.Snapshot()

	build, err := s.composer.Compose(req, view)
	if err != nil {
		metrics.RecordComposeError(composeErrorReason(err))
		return nil, fmt.Errorf("failed to compose build: %w", err)
	}
	build.ID = uuid.NewString()
	build.Synergies = s.detector.Detect(build)
	score := s.scorer.Score(build, req)
	build.Score = &score

	altCount := s.alternativeCount
	if opts := input.Options; opts != nil {
		if opts.IncludeAlternatives != nil && !*opts.IncludeAlternatives {
			altCount = 0
		} else if opts.AlternativesCount > 0 {
			altCount = opts.AlternativesCount
		}
	}
	alts, err := s.generator.Generate(ctx, req, view, altCount)
	if err != nil {
		return nil, fmt.Errorf("failed to generate alternatives: %w", err)
	}
	for _, alt := range alts {
		alt.ID = uuid.NewString()
	}

	metrics.RecordRecommendation(score.Tier)
	s.logger.Debug(ctx, "recommendation produced",
		logger.String("buildID", build.ID),
		logger.Int("score", score.Total),
		logger.String("tier", score.Tier),
		logger.Int("alternatives", len(alts)),
	)

	return &Recommendation{Build: build, Alternatives: alts}, nil
}

// Evaluate re-runs composition and scoring for a shared request. It backs
// the worker pool, which never trusts client-submitted scores.
func (s *Service) Evaluate(ctx context.Context, req model.BuildRequest) (*model.Build, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	build, err := s.composer.Compose(req, s.catalog.Snapshot())
	if err != nil {
		metrics.RecordComposeError(composeErrorReason(err))
		return nil, err
	}
	build.Synergies = s.detector.Detect(build)
	score := s.scorer.Score(build, req)
	build.Score = &score
	return build, nil
}

// Share accepts a community share submission for asynchronous ranking.
// Returns the assigned build id; duplicate reports whether the submission
// was already seen, accepted whether it was enqueued.
func (s *Service) Share(ctx context.Context, submissionID string, input RecommendInput) (buildID string, duplicate, accepted bool) {
	if !s.isStarted() {
		return "", false, false
	}
	if s.deduper.SeenAndRecord(ctx, submissionID) {
		metrics.RecordShareDuplicate()
		return "", true, false
	}

	req := s.Resolve(input)
	buildID = uuid.NewString()
	event := model.ShareEvent{
		SubmissionID: submissionID,
		BuildID:      buildID,
		Request:      req,
		TS:           time.Now(),
	}

	if !s.queue.Enqueue(ctx, event) {
		// Let the client retry the same submission id.
		s.deduper.Unrecord(ctx, submissionID)
		return "", false, false
	}

	metrics.RecordShareAccepted()
	return buildID, false, true
}

// TopN returns the top N community builds.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.vault.TopN(ctx, n)
}

// Rank returns the rank entry for a given build id.
func (s *Service) Rank(ctx context.Context, buildID string) (repository.Entry, error) {
	if !s.isStarted() {
		return repository.Entry{}, ErrNotStarted
	}
	return s.vault.Rank(ctx, buildID)
}

// isStarted reports whether Start has completed and Stop has not run since.
func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalBuilds := s.vault.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalBuilds"] = totalBuilds
		stats["catalogItems"] = s.catalog.Len()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateVaultBuildsTotal(totalBuilds)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// composeErrorReason maps composition failures to a metric label.
func composeErrorReason(err error) string {
	switch {
	case errors.Is(err, compose.ErrExoticConflict):
		return "exotic_conflict"
	case errors.Is(err, compose.ErrLockedItemNotFound):
		return "locked_item_not_found"
	case errors.Is(err, compose.ErrLockedClassMismatch):
		return "locked_class_mismatch"
	default:
		return "other"
	}
}
