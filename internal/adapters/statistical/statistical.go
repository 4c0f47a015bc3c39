// Package statistical implements the trained text classifier tier. The
// model artifact is loaded lazily on first use and shared by all callers.
package statistical

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/diarium/internal/adapters/lazymodel"
	"github.com/okian/diarium/internal/domain/confidence"
	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/taxonomy"
	"github.com/okian/diarium/pkg/logger"
)

// Name identifies the statistical tier in logs and metrics.
const Name = "statistical"

// Default configuration constants.
const (
	DefaultModelPath = "models/mood-classifier.bayes"

	uncertaintyEpsilon = 0.001
)

// Fallback classifies text when the model cannot.
type Fallback interface {
	Analyze(text string) mood.Analysis
}

// Classifier is safe for concurrent use.
type Classifier struct {
	fallback Fallback
	handle   *lazymodel.Handle[Model]
	taxonomy *taxonomy.Taxonomy
	logger   logger.Logger

	modelPath string
	loader    lazymodel.Loader[Model]
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithModelPath sets the artifact location.
func WithModelPath(path string) Option {
	return func(c *Classifier) {
		if path != "" {
			c.modelPath = path
		}
	}
}

// WithLoader replaces the artifact loader.
func WithLoader(load lazymodel.Loader[Model]) Option {
	return func(c *Classifier) {
		if load != nil {
			c.loader = load
		}
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

// New creates the statistical tier. Nothing is loaded until first use.
func New(fallback Fallback, opts ...Option) *Classifier {
	c := &Classifier{
		fallback:  fallback,
		taxonomy:  taxonomy.Emotions,
		logger:    logger.NewNop(),
		modelPath: DefaultModelPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = BayesLoader(c.modelPath)
	}
	c.logger = c.logger.Named(Name)
	c.handle = lazymodel.New(Name, c.loader, lazymodel.WithLogger(c.logger))
	return c
}

// Name implements the cascade tier contract.
func (c *Classifier) Name() string { return Name }

// State reports the model handle state.
func (c *Classifier) State() lazymodel.State { return c.handle.State() }

// Warmup starts loading the artifact without waiting.
func (c *Classifier) Warmup(ctx context.Context) { c.handle.Start(ctx) }

// Classify scores text with the trained model. It fails with
// mood.ErrModelUnavailable when the artifact could not be loaded and with
// mood.ErrUncertainResult when the scores carry no signal.
func (c *Classifier) Classify(ctx context.Context, text string) (mood.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return mood.NeutralAnalysis(0).WithTier(Name), nil
	}
	model, err := c.handle.Wait(ctx)
	if err != nil {
		return mood.Analysis{}, err
	}

	labels := model.Labels()
	scores, err := logScores(model, Tokenize(text))
	if err != nil {
		return mood.Analysis{}, err
	}
	if len(scores) == 0 || len(scores) != len(labels) {
		return mood.Analysis{}, fmt.Errorf("model returned %d scores for %d labels: %w",
			len(scores), len(labels), mood.ErrUncertainResult)
	}
	if uncertain(scores) {
		return mood.Analysis{}, fmt.Errorf("flat score distribution: %w", mood.ErrUncertainResult)
	}

	probs := confidence.Temperature(scores, confidence.StatisticalTemperature)
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return probs[order[i]] > probs[order[j]] })

	ranked := make([]mood.Score, 0, mood.MaxRanked)
	for _, i := range order {
		if len(ranked) == mood.MaxRanked {
			break
		}
		ranked = append(ranked, mood.Score{
			Mood:        c.moodOf(labels[i]),
			Confidence:  probs[i],
			SourceLabel: labels[i],
		})
	}
	return mood.NewAnalysis(ranked...).WithTier(Name), nil
}

// Analyze never fails: on any model problem it returns the fallback result.
func (c *Classifier) Analyze(ctx context.Context, text string) mood.Analysis {
	a, err := c.Classify(ctx, text)
	if err != nil {
		c.logger.Debug(ctx, "using keyword fallback",
			logger.String("reason", mood.Kind(err)),
			logger.Error(err),
		)
		return c.fallback.Analyze(text)
	}
	return a
}

// logScores turns a panicking model into mood.ErrModelUnavailable.
func logScores(m Model, tokens []string) (scores []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v: %w", r, mood.ErrModelUnavailable)
		}
	}()
	return m.LogScores(tokens), nil
}

func (c *Classifier) moodOf(label string) mood.Mood {
	if m, ok := mood.Parse(label); ok {
		return m
	}
	return c.taxonomy.Lookup(label)
}

// uncertain reports whether scores are too flat or too close to zero to
// rank anything.
func uncertain(scores []float64) bool {
	top := scores[0]
	for _, s := range scores[1:] {
		if s > top {
			top = s
		}
	}
	if math.IsNaN(top) || math.IsInf(top, 0) {
		return true
	}
	return math.Abs(top) < uncertaintyEpsilon || confidence.Spread(scores) < uncertaintyEpsilon
}
