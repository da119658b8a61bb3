// Package worker folds queued taps into the handedness scorer.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/dhand/internal/adapters/mq/queue"
	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/pkg/logger"
	"github.com/okian/dhand/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// ErrShutdownTimeout is returned when workers do not drain in time.
var ErrShutdownTimeout = errors.New("worker shutdown timed out")

// Tap abstracts what workers read off the queue.
type Tap = queue.Tap

// Recorder classifies a pointer event and folds it into the tally.
type Recorder interface {
	Record(ev handedness.PointerEvent, env handedness.Environment) (handedness.Decision, handedness.Tally)
}

// Queue defines how workers receive taps.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Tap
}

// Worker drains taps into a Recorder until the queue closes or ctx ends.
type Worker struct {
	queue    Queue
	recorder Recorder
	name     string
	done     chan struct{}
	logger   logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, recorder Recorder, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		recorder: recorder,
		name:     "worker",
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes taps until the queue channel closes or ctx is done.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	taps := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-taps:
			if !ok {
				return
			}
			w.process(ctx, &t)
		}
	}
}

// Done is closed once Run has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) process(ctx context.Context, t *Tap) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	d, tally := w.recorder.Record(t.PointerEvent(), t.Environment())
	metrics.RecordDecision(d.Admitted, string(d.Stage), d.Position)
	metrics.UpdateTally(tally.Count, tally.Sum, tally.Score)

	if d.Admitted {
		w.logger.Debug(ctx, "tap admitted",
			logger.String("eventID", t.EventID),
			logger.Float64("position", d.Position),
			logger.Int("count", tally.Count),
			logger.Float64("score", tally.Score),
		)
		return
	}
	w.logger.Debug(ctx, "tap rejected",
		logger.String("eventID", t.EventID),
		logger.String("stage", string(d.Stage)),
	)
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	queue   Queue
	cancel  context.CancelFunc
	stop    sync.Once
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. Counts below one run a
// single worker, the sequential event-loop case.
func NewPool(workerCount int, q Queue, recorder Recorder, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewWorker(q, recorder, wopts...)
	}
	return p
}

// Start launches every worker. Workers stop when the queue is closed or
// ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(len(p.workers))
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop closes the queue and waits for the workers to drain it.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		p.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
}

// Shutdown closes the queue, lets workers finish what was already queued,
// and cancels them if ctx expires first. It is safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	var err error
	p.stop.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			if cerr := closer.Close(); cerr != nil {
				p.logger.Error(ctx, "error closing queue", logger.Error(cerr))
			}
		}
		for i, w := range p.workers {
			select {
			case <-w.Done():
			case <-ctx.Done():
				p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
				err = fmt.Errorf("%w: %w", ErrShutdownTimeout, ctx.Err())
			}
			if err != nil {
				break
			}
		}
		if p.cancel != nil {
			p.cancel()
		}
		metrics.UpdateWorkerCount(0)
	})
	return err
}
