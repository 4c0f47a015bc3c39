package repository

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/pkg/metrics"
)

// MemoryStore keeps analyses in memory in arrival order.
type MemoryStore struct {
	mu    sync.RWMutex
	order *list.List // of model.EntryAnalysis, oldest at the front
	index map[string]*list.Element

	maxRecords            int
	metricsUpdateInterval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMemoryStore creates an empty store and starts its metrics updater,
// which runs until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		order:                 list.New(),
		index:                 make(map[string]*list.Element),
		metricsUpdateInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) Save(_ context.Context, a model.EntryAnalysis) error {
	if a.EntryID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[a.EntryID]; ok {
		el.Value = a
		s.order.MoveToBack(el)
		return nil
	}
	s.index[a.EntryID] = s.order.PushBack(a)

	for s.maxRecords > 0 && s.order.Len() > s.maxRecords {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.index, oldest.Value.(model.EntryAnalysis).EntryID)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, entryID string) (model.EntryAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.index[entryID]
	if !ok {
		return model.EntryAnalysis{}, fmt.Errorf("%s: %w", entryID, ErrNotFound)
	}
	return el.Value.(model.EntryAnalysis), nil
}

func (s *MemoryStore) Recent(_ context.Context, n int) ([]model.EntryAnalysis, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > s.order.Len() {
		n = s.order.Len()
	}
	out := make([]model.EntryAnalysis, 0, n)
	for el := s.order.Back(); el != nil && len(out) < n; el = el.Prev() {
		out = append(out, el.Value.(model.EntryAnalysis))
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateStoreRecords(s.Count(ctx))
			}
		}
	}()
}
