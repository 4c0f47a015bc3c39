// Package service wires the classifier tiers, the background entry pipeline
// and the analysis store behind the operations the HTTP API needs.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/diarium/internal/adapters/lazymodel"
	"github.com/okian/diarium/internal/adapters/mq/queue"
	"github.com/okian/diarium/internal/adapters/mq/worker"
	"github.com/okian/diarium/internal/adapters/repository"
	"github.com/okian/diarium/internal/adapters/statistical"
	"github.com/okian/diarium/internal/domain/cascade"
	"github.com/okian/diarium/internal/domain/dedupe"
	"github.com/okian/diarium/internal/domain/keyword"
	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/textanalysis"
	"github.com/okian/diarium/pkg/logger"
	"github.com/okian/diarium/pkg/metrics"
)

// warmer and stater are implemented by tiers backed by a lazily loaded
// model.
type warmer interface {
	Warmup(ctx context.Context)
}

type stater interface {
	State() lazymodel.State
}

// Service implements the API dependencies for mood analysis.
type Service struct {
	mu sync.RWMutex

	// Classification
	keyword     *keyword.Classifier
	statistical *statistical.Classifier
	primary     cascade.Tier
	cascade     *cascade.Orchestrator
	text        *textanalysis.Analyzer

	// Entry pipeline
	store   *repository.MemoryStore
	deduper dedupe.Deduper
	queue   *queue.InMemoryQueue
	pool    *worker.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	storeSize       int
	statisticalPath string
	warmup          bool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending entries.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many entry ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreSize bounds the analysis store. Zero keeps everything.
func WithStoreSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.storeSize = size
		}
	}
}

// WithPrimaryTier puts t in front of the statistical tier.
func WithPrimaryTier(t cascade.Tier) Option {
	return func(s *Service) {
		s.primary = t
	}
}

// WithStatisticalModelPath sets the naive Bayes artifact location.
func WithStatisticalModelPath(path string) Option {
	return func(s *Service) {
		s.statisticalPath = path
	}
}

// WithWarmup starts model loads in Start rather than on first use.
func WithWarmup(enabled bool) Option {
	return func(s *Service) {
		s.warmup = enabled
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

// New constructs a Service. Classification works immediately; the entry
// pipeline runs after Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  50_000,
		storeSize:   100_000,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.keyword = keyword.New()
	s.statistical = statistical.New(s.keyword,
		statistical.WithModelPath(s.statisticalPath),
		statistical.WithLogger(s.logger),
	)
	s.text = textanalysis.New()

	cascadeOpts := []cascade.Option{
		cascade.WithStatistical(s.statistical),
		cascade.WithLogger(s.logger),
	}
	if s.primary != nil {
		cascadeOpts = append(cascadeOpts, cascade.WithPrimary(s.primary))
	}
	s.cascade = cascade.New(s.keyword, cascadeOpts...)
	return s
}

// Start creates the entry pipeline and, if configured, begins loading models.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.store = repository.NewMemoryStore(ctx, repository.WithMaxRecords(s.storeSize))
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, s.store, worker.WithPoolLogger(s.logger))
	s.pool.Start(ctx)

	if s.warmup {
		for _, t := range []any{s.primary, s.statistical} {
			if w, ok := t.(warmer); ok {
				w.Warmup(ctx)
			}
		}
	}

	s.started = true
	s.logger.Info(ctx, "mood service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("tiers", fmt.Sprint(s.cascade.Tiers())),
	)
	return nil
}

// Stop drains the entry pipeline and releases background goroutines.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping mood service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "store close", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "mood service stopped")
	return nil
}

// AnalyzeMood runs the classifier cascade. It never fails.
func (s *Service) AnalyzeMood(ctx context.Context, text string) mood.Analysis {
	return s.cascade.Analyze(ctx, text)
}

// AnalyzeText returns temporal focus and life-area categories.
func (s *Service) AnalyzeText(text string) textanalysis.Result {
	metrics.RecordTextAnalysis()
	return s.text.Analyze(text)
}

// AnalyzeEntry produces the stored analysis for e.
func (s *Service) AnalyzeEntry(ctx context.Context, e model.Entry) (model.EntryAnalysis, error) { //nolint:gocritic // hugeParam: entries travel by value
	if err := e.Validate(); err != nil {
		return model.EntryAnalysis{}, fmt.Errorf("entry %s: %w", e.EntryID, err)
	}
	text := s.AnalyzeText(e.Text)
	return model.EntryAnalysis{
		EntryID:    e.EntryID,
		Mood:       s.AnalyzeMood(ctx, e.Text),
		Temporal:   text.Temporal,
		Categories: text.Category,
		AnalyzedAt: time.Now().UTC(),
	}, nil
}

// Submit accepts e for background analysis. It reports duplicate=true
// without queueing when the entry id was already accepted.
func (s *Service) Submit(ctx context.Context, e model.Entry) (bool, error) { //nolint:gocritic // hugeParam: entries travel by value
	if err := e.Validate(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return false, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, e.EntryID) {
		metrics.RecordEntryDuplicate()
		s.logger.Debug(ctx, "duplicate entry", logger.String("entryID", e.EntryID))
		return true, nil
	}
	if e.SubmittedAt.IsZero() {
		e.SubmittedAt = time.Now().UTC()
	}
	if err := s.queue.Enqueue(ctx, e); err != nil {
		s.deduper.Unrecord(ctx, e.EntryID)
		return false, fmt.Errorf("enqueue entry %s: %w", e.EntryID, err)
	}
	metrics.RecordEntrySubmitted()
	return false, nil
}

// Analysis returns the stored analysis for an entry.
func (s *Service) Analysis(ctx context.Context, entryID string) (model.EntryAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return model.EntryAnalysis{}, ErrNotStarted
	}
	return s.store.Get(ctx, entryID)
}

// Recent returns up to n stored analyses, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]model.EntryAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"tiers":       s.cascade.Tiers(),
		"models": map[string]string{
			statistical.Name: s.statistical.State().String(),
		},
	}
	if st, ok := s.primary.(stater); ok {
		stats["models"].(map[string]string)[s.primary.Name()] = st.State().String()
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stored := s.store.Count(ctx)
		stats["queueLength"] = queueLen
		stats["analyzedEntries"] = stored
		stats["processed"] = s.pool.Processed()
		stats["seenEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreRecords(stored)
	}
	return stats
}
