// Package remote implements the hosted inference tier: a single HTTP call to
// a text classification endpoint whose labels are mapped onto moods.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/taxonomy"
	"github.com/okian/diarium/pkg/logger"
	"github.com/okian/diarium/pkg/metrics"
)

// Name identifies the remote tier in logs and metrics.
const Name = "remote"

// Default configuration constants.
const (
	DefaultEndpoint = "https://api-inference.huggingface.co/models"
	DefaultModel    = "j-hartmann/emotion-english-distilroberta-base"

	topLabels         = 3
	singleScore       = 0.5
	failureConfidence = 0.5
	maxErrorBody      = 512
)

// Classifier is safe for concurrent use.
type Classifier struct {
	client   *http.Client
	endpoint string
	model    string
	token    string
	limiter  *rate.Limiter
	taxonomy *taxonomy.Taxonomy
	logger   logger.Logger
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithEndpoint sets the inference base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Classifier) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithModel sets the hosted model repository.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = strings.Trim(model, "/")
		}
	}
}

// WithToken sets the bearer token sent with each request.
func WithToken(token string) Option {
	return func(c *Classifier) {
		c.token = token
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Classifier) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRateLimit caps outbound calls per second. Zero disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Classifier) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates the remote tier. The default client has no timeout; callers
// bound requests with their context.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		client:   &http.Client{},
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		taxonomy: taxonomy.Emotions,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named(Name)
	return c
}

// Name implements the cascade tier contract.
func (c *Classifier) Name() string { return Name }

// URL returns the full inference URL.
func (c *Classifier) URL() string { return c.endpoint + "/" + c.model }

// Classify sends text to the hosted model. Every failure, including a model
// that is still warming up, is reported as mood.ErrTransientTierFailure.
func (c *Classifier) Classify(ctx context.Context, text string) (mood.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return mood.NeutralAnalysis(0).WithTier(Name), nil
	}
	if c.limiter != nil && !c.limiter.Allow() {
		metrics.RecordRemoteResponse("throttled")
		return mood.Analysis{}, fmt.Errorf("client rate limit reached: %w", mood.ErrTransientTierFailure)
	}

	body, err := c.call(ctx, text)
	if err != nil {
		return mood.Analysis{}, err
	}
	a, err := c.parse(body)
	if err != nil {
		return mood.Analysis{}, err
	}
	return a.WithTier(Name), nil
}

// Analyze never fails: any problem yields neutral at 0.5.
func (c *Classifier) Analyze(ctx context.Context, text string) mood.Analysis {
	a, err := c.Classify(ctx, text)
	if err != nil {
		c.logger.Warn(ctx, "remote inference failed",
			logger.String("model", c.model),
			logger.Error(err),
		)
		return mood.NeutralAnalysis(failureConfidence).WithTier(Name)
	}
	return a
}

func (c *Classifier) call(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordRemoteResponse("error")
		return nil, fmt.Errorf("request failed: %w: %w", mood.ErrTransientTierFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordRemoteResponse("error")
		return nil, fmt.Errorf("read response: %w: %w", mood.ErrTransientTierFailure, err)
	}
	metrics.RecordRemoteResponse(statusClass(resp.StatusCode))

	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, fmt.Errorf("model warming up (%d): %s: %w", resp.StatusCode, msg.String(), mood.ErrTransientTierFailure)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("model warming up: %w", mood.ErrTransientTierFailure)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s: %w",
			resp.StatusCode, truncate(body, maxErrorBody), mood.ErrTransientTierFailure)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed response: %w", mood.ErrTransientTierFailure)
	}
	return body, nil
}

type prediction struct {
	label string
	score float64
}

// parse accepts a nested list, a flat list or a single object.
func (c *Classifier) parse(body []byte) (mood.Analysis, error) {
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		items := root.Array()
		if len(items) > 0 && items[0].IsArray() {
			items = items[0].Array()
		}
		return c.fromList(items), nil
	}
	if root.IsObject() {
		p := readPrediction(root, singleScore)
		return mood.NewAnalysis(mood.Score{
			Mood:        c.taxonomy.Lookup(p.label),
			Confidence:  p.score,
			SourceLabel: p.label,
		}), nil
	}
	return mood.Analysis{}, fmt.Errorf("unexpected response shape %s: %w", root.Type, mood.ErrTransientTierFailure)
}

func (c *Classifier) fromList(items []gjson.Result) mood.Analysis {
	preds := make([]prediction, 0, len(items))
	for _, it := range items {
		if it.IsObject() {
			preds = append(preds, readPrediction(it, 0))
		}
	}
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].score > preds[j].score })
	if len(preds) > topLabels {
		preds = preds[:topLabels]
	}

	scores := make([]mood.Score, len(preds))
	for i, p := range preds {
		scores[i] = mood.Score{
			Mood:        c.taxonomy.Lookup(p.label),
			Confidence:  p.score,
			SourceLabel: p.label,
		}
	}
	return mood.NewAnalysis(scores...)
}

func readPrediction(obj gjson.Result, defaultScore float64) prediction {
	p := prediction{score: defaultScore}
	for _, key := range []string{"label", "emotion", "mood"} {
		if v := obj.Get(key); v.Exists() && v.String() != "" {
			p.label = v.String()
			break
		}
	}
	for _, key := range []string{"score", "confidence"} {
		if v := obj.Get(key); v.Exists() && v.Float() != 0 {
			p.score = v.Float()
			break
		}
	}
	return p
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return strings.TrimSpace(string(b))
}
