// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	eventqueue "github.com/okian/dhand/internal/adapters/mq/queue"
	workerpool "github.com/okian/dhand/internal/adapters/mq/worker"
	"github.com/okian/dhand/internal/domain/dedupe"
	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/pkg/logger"
	"github.com/okian/dhand/pkg/metrics"
)

// Service hosts one handedness scorer. Start attaches the tap pipeline
// and Stop detaches it; the tally outlives both unless reset on stop.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer     *handedness.Scorer
	deduper    dedupe.Deduper
	eventQueue *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	resetOnStop   bool
	scorerOptions []handedness.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the tap queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
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

// WithScorerOptions configures the classifier thresholds.
func WithScorerOptions(opts ...handedness.Option) Option {
	return func(s *Service) {
		s.scorerOptions = append(s.scorerOptions, opts...)
	}
}

// WithResetOnStop discards the tally every time the service stops.
func WithResetOnStop(reset bool) Option {
	return func(s *Service) {
		s.resetOnStop = reset
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 1,
		queueSize:   10_000,
		dedupeSize:  50_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.scorer = handedness.New(s.scorerOptions...)
	s.deduper = newDeduper(s.dedupeSize)
	return s
}

func newDeduper(size int) dedupe.Deduper {
	return dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(size))
}

// Start begins observing taps. Calling it on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting handedness service...")

	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.scorer)
	// Workers live until Stop, not until the caller's ctx ends.
	s.workerPool.Start(context.WithoutCancel(ctx))

	s.started = true
	cfg := s.scorer.Config()
	s.logger.Info(ctx, "handedness service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Float64("maximumScreenWidth", cfg.MaximumScreenWidth),
		logger.Float64("fullWidthThreshold", cfg.FullWidthThreshold),
		logger.Float64("centerDiscardThreshold", cfg.CenterDiscardThreshold),
		logger.Bool("touchEventsOnly", cfg.TouchEventsOnly),
	)

	return nil
}

// Stop stops observing, draining taps already queued. It is safe to call
// on every exit path.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping handedness service...")

	// The pool closes the queue before waiting on its workers.
	s.workerPool.Stop()

	if s.resetOnStop {
		s.scorer.Reset()
		s.deduper = newDeduper(s.dedupeSize)
		metrics.UpdateTally(0, 0, 0)
	}

	s.started = false
	tally := s.scorer.Tally()
	s.logger.Info(ctx, "handedness service stopped",
		logger.Int("tapCount", tally.Count),
		logger.Float64("score", tally.Score),
	)
}

// SeenAndRecord atomically checks if a tap id was seen and records it if not.
// Returns true if the tap was already seen. Seen ids live as long as the
// tally: they survive Stop unless the service resets on stop.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()

	seen := d.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordTapDuplicate()
	}
	return seen
}

// Unrecord removes a tap id from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()
	d.Unrecord(ctx, id)
}

// Enqueue submits a tap for asynchronous scoring. It returns false under
// backpressure or when the service is not observing.
func (s *Service) Enqueue(ctx context.Context, t model.Tap) bool { //nolint:gocritic // hugeParam: Tap is copied into the queue anyway
	metrics.RecordTapReceived()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false
	}

	ok := s.eventQueue.Enqueue(ctx, t)
	if !ok {
		s.logger.Warn(ctx, "tap refused by queue",
			logger.String("eventID", t.EventID),
			logger.Int("queueLength", s.eventQueue.Len(ctx)),
		)
	}
	return ok
}

// Classify runs the filter chain for t without touching the tally.
func (s *Service) Classify(_ context.Context, t *model.Tap) handedness.Decision {
	return s.scorer.Classify(t.PointerEvent(), t.Environment())
}

// Tally returns the accumulated score.
func (s *Service) Tally(_ context.Context) handedness.Tally {
	return s.scorer.Tally()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	tally := s.scorer.Tally()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"resetOnStop": s.resetOnStop,
		"tapCount":    tally.Count,
		"score":       tally.Score,
		"seenTaps":    s.deduper.Size(),
	}

	if s.eventQueue != nil {
		stats["queueClosed"] = s.eventQueue.IsClosed()
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		stats["queueLength"] = queueLen

		metrics.UpdateQueue(queueLen, s.eventQueue.Cap())
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}
