package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/diarium/pkg/logger"
)

// submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeThrottled = "throttled"
	outcomeFailed    = "failed"
)

// httpClient wraps http.Client with JSON helpers.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

func (c *httpClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *httpClient) post(ctx context.Context, path string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *httpClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// submitEntries posts entries concurrently and returns those the service
// queued. Entries whose index is a multiple of DuplicateMod are posted a
// second time to exercise idempotency.
func submitEntries(ctx context.Context, config *Config, client *httpClient, entries []Entry, stats *Stats) []Entry {
	logger.Get().Info(ctx, "submitting entries",
		logger.Int("entries", len(entries)),
		logger.Int("workers", config.Workers))

	var counts [4]atomic.Int64
	index := map[string]int{
		outcomeAccepted:  0,
		outcomeDuplicate: 1,
		outcomeThrottled: 2,
		outcomeFailed:    3,
	}

	var (
		mu     sync.Mutex
		queued = make(map[string]Entry, len(entries))
	)
	work := make(chan Entry, config.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range work {
				outcome := submitEntry(ctx, client, e)
				counts[index[outcome]].Add(1)
				if outcome == outcomeAccepted {
					mu.Lock()
					queued[e.EntryID] = e
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for i, e := range entries {
			for n := 0; n < copies(config.DuplicateMod, i); n++ {
				select {
				case <-ctx.Done():
					return
				case work <- e:
				}
			}
		}
	}()
	wg.Wait()

	stats.Accepted = int(counts[0].Load())
	stats.Duplicate = int(counts[1].Load())
	stats.Throttled = int(counts[2].Load())
	stats.Failed = int(counts[3].Load())
	stats.Submitted = stats.Accepted + stats.Duplicate + stats.Throttled + stats.Failed

	logger.Get().Info(ctx, "entry submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("throttled", stats.Throttled),
		logger.Int("failed", stats.Failed))

	out := make([]Entry, 0, len(queued))
	for _, e := range entries {
		if _, ok := queued[e.EntryID]; ok {
			out = append(out, e)
		}
	}
	return out
}

func copies(mod, i int) int {
	if mod > 0 && i%mod == 0 {
		return 2
	}
	return 1
}

// submitEntry posts one entry and classifies the reply.
func submitEntry(ctx context.Context, client *httpClient, e Entry) string {
	status, body, err := client.post(ctx, "/api/entries/analyze", map[string]string{
		"entry_id": e.EntryID,
		"text":     e.Text,
	})
	if err != nil {
		return outcomeFailed
	}
	switch status {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		var ack AckResponse
		if json.Unmarshal(body, &ack) == nil && ack.Duplicate {
			return outcomeDuplicate
		}
		return outcomeFailed
	case http.StatusTooManyRequests:
		return outcomeThrottled
	default:
		return outcomeFailed
	}
}

// fetchAnalysis returns the stored analysis, or ok=false while it is pending.
func fetchAnalysis(ctx context.Context, client *httpClient, id string) (Analysis, bool, error) {
	status, body, err := client.get(ctx, "/api/entries/"+id+"/analysis")
	if err != nil {
		return Analysis{}, false, err
	}
	switch status {
	case http.StatusOK:
		var a Analysis
		if err := json.Unmarshal(body, &a); err != nil {
			return Analysis{}, false, fmt.Errorf("decode analysis %s: %w", id, err)
		}
		return a, true, nil
	case http.StatusNotFound:
		return Analysis{}, false, nil
	default:
		return Analysis{}, false, fmt.Errorf("analysis %s: unexpected status %d", id, status)
	}
}
