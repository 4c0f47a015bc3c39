// Package worker analyzes queued diary entries in the background.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/pkg/logger"
	"github.com/okian/diarium/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Analyzer produces the stored analysis for an entry.
type Analyzer interface {
	AnalyzeEntry(ctx context.Context, e model.Entry) (model.EntryAnalysis, error)
}

// Saver persists completed analyses.
type Saver interface {
	Save(ctx context.Context, a model.EntryAnalysis) error
}

// Queue defines how workers receive entries.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Entry
}

// receiver is implemented by queues that track consumption.
type receiver interface {
	Received()
}

// InMemoryWorker analyzes entries one at a time.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	saver    Saver
	name     string
	onDone   func()

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, analyzer Analyzer, saver Saver, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		analyzer: analyzer,
		saver:    saver,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes entries until ctx ends, Shutdown is called or the queue is
// closed and drained.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	entries := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case e, ok := <-entries:
			if !ok {
				return
			}
			if r, ok := w.queue.(receiver); ok {
				r.Received()
			}
			if err := w.process(ctx, e); err != nil {
				w.logger.Error(ctx, "error processing entry", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker after its current entry.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, e model.Entry) error { //nolint:gocritic // hugeParam: entries travel by value
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	a, err := w.analyzer.AnalyzeEntry(ctx, e)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "analysis_error")
		return fmt.Errorf("analyze entry %s: %w", e.EntryID, err)
	}
	if err := w.saver.Save(ctx, a); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("store analysis %s: %w", e.EntryID, err)
	}

	metrics.RecordEntryAnalyzed()
	if w.onDone != nil {
		w.onDone()
	}
	w.logger.Debug(ctx, "entry analyzed",
		logger.String("entryID", e.EntryID),
		logger.String("mood", a.Mood.Primary.Mood.String()),
		logger.String("tier", a.Mood.Tier),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	processed atomic.Int64
	lastTick  time.Time

	logger logger.Logger
}

// NewPool creates workerCount workers; a count below one uses twice the
// number of CPUs.
func NewPool(workerCount int, queue Queue, analyzer Analyzer, saver Saver, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		lastTick: time.Now(),
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(queue, analyzer, saver,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
		w.onDone = func() { p.processed.Add(1) }
		p.workers[i] = w
	}
	p.logger = p.logger.Named("worker-pool")

	metrics.UpdateWorkerActiveCount(workerCount)
	metrics.UpdateWorkerMessagesPerSecond(0)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns the number of entries analyzed since start.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	go p.startMetricsUpdater(ctx)
}

func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	var last int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case now := <-ticker.C:
			total := p.processed.Load()
			if elapsed := now.Sub(p.lastTick).Seconds(); elapsed > 0 {
				metrics.UpdateWorkerMessagesPerSecond(float64(total-last) / elapsed)
			}
			last = total
			p.lastTick = now
		}
	}
}

// Shutdown closes the queue, lets workers drain what is pending and waits
// for them up to a bounded timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
