// Package queue buffers diary entries between submission and analysis.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/pkg/metrics"
)

const defaultQueueCapacity = 10000

// Entry is the payload flowing through the queue.
type Entry = model.Entry

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an entry without blocking. It fails with ErrFull when the
	// queue is at capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, e Entry) error

	// Dequeue returns the channel entries are delivered on. The channel is
	// closed after Close once every pending entry was received.
	Dequeue(ctx context.Context) <-chan Entry

	// Len returns the number of pending entries.
	Len(ctx context.Context) int

	// Close stops accepting entries.
	Close() error
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	entries  chan Entry
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.entries = make(chan Entry, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	q.publishSize()
	return q
}

// Capacity returns the configured bound.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

func (q *InMemoryQueue) Enqueue(ctx context.Context, e Entry) error { //nolint:gocritic // hugeParam: entries travel by value
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return q.reject("closed", ErrClosed)
	}
	if err := ctx.Err(); err != nil {
		return q.reject("context_cancelled", fmt.Errorf("enqueue %s: %w", e.EntryID, err))
	}

	select {
	case q.entries <- e:
		metrics.RecordQueueEnqueue()
		q.publishSize()
		return nil
	default:
		return q.reject("queue_full", ErrFull)
	}
}

func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Entry {
	return q.entries
}

// Received records that a consumer took an entry off the channel.
func (q *InMemoryQueue) Received() {
	metrics.RecordQueueDequeue()
	q.publishSize()
}

func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.entries)
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.entries)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) reject(reason string, err error) error {
	metrics.RecordQueueEnqueueError()
	metrics.RecordErrorByComponent("queue", reason)
	return err
}

func (q *InMemoryQueue) publishSize() {
	size := len(q.entries)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
