// Package ondevice implements the local model tier. A sentiment or emotion
// model runs in process and its labels are merged with keyword detections so
// that several moods can surface from one entry.
package ondevice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/diarium/internal/adapters/lazymodel"
	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/taxonomy"
	"github.com/okian/diarium/pkg/logger"
)

// Name identifies the on-device tier in logs and metrics.
const Name = "ondevice"

// Default configuration constants.
const (
	DefaultModel    = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	DefaultModelDir = "./models"

	// KeywordSource marks scores contributed by the keyword co-detector.
	KeywordSource = "keyword-detected"

	modelLabels       = 3
	confidenceCap     = 0.95
	detectionBoost    = 1.1
	agreementBoost    = 1.05
	failureConfidence = 0.5
)

// Detector lists every mood a text mentions.
type Detector interface {
	Detect(text string) []mood.Score
}

// Classifier is safe for concurrent use.
type Classifier struct {
	detector Detector
	handle   *lazymodel.Handle[Runner]
	taxonomy *taxonomy.Taxonomy
	logger   logger.Logger

	model  string
	dir    string
	loader lazymodel.Loader[Runner]
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithModel sets the model identifier: a Hugging Face repository or "vader".
func WithModel(id string) Option {
	return func(c *Classifier) {
		if id != "" {
			c.model = id
		}
	}
}

// WithModelDir sets where downloaded models are cached.
func WithModelDir(dir string) Option {
	return func(c *Classifier) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithLoader replaces the runtime loader.
func WithLoader(load lazymodel.Loader[Runner]) Option {
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

// New creates the on-device tier. The model is fetched and opened on first
// use.
func New(detector Detector, opts ...Option) *Classifier {
	c := &Classifier{
		detector: detector,
		taxonomy: taxonomy.Sentiment,
		logger:   logger.NewNop(),
		model:    DefaultModel,
		dir:      DefaultModelDir,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = Loader(c.model, c.dir)
	}
	c.logger = c.logger.Named(Name)
	c.handle = lazymodel.New(Name, c.loader, lazymodel.WithLogger(c.logger))
	return c
}

// Name implements the cascade tier contract.
func (c *Classifier) Name() string { return Name }

// Model returns the configured model identifier.
func (c *Classifier) Model() string { return c.model }

// State reports the model handle state.
func (c *Classifier) State() lazymodel.State { return c.handle.State() }

// Warmup starts loading the model without waiting.
func (c *Classifier) Warmup(ctx context.Context) { c.handle.Start(ctx) }

// Classify runs the local model and merges keyword detections into its
// labels. Load failures surface as mood.ErrModelUnavailable and inference
// failures as mood.ErrTransientTierFailure.
func (c *Classifier) Classify(ctx context.Context, text string) (mood.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return mood.NeutralAnalysis(0).WithTier(Name), nil
	}
	runner, err := c.handle.Wait(ctx)
	if err != nil {
		return mood.Analysis{}, err
	}
	labels, err := runner.Run(ctx, text)
	if err != nil {
		return mood.Analysis{}, fmt.Errorf("inference: %w: %w", mood.ErrTransientTierFailure, err)
	}
	return c.merge(labels, c.detector.Detect(text)).WithTier(Name), nil
}

// Analyze never fails: any problem yields neutral at 0.5.
func (c *Classifier) Analyze(ctx context.Context, text string) mood.Analysis {
	a, err := c.Classify(ctx, text)
	if err != nil {
		c.logger.Warn(ctx, "on-device inference failed",
			logger.String("reason", mood.Kind(err)),
			logger.Error(err),
		)
		return mood.NeutralAnalysis(failureConfidence).WithTier(Name)
	}
	return a
}

func (c *Classifier) merge(labels []Label, detected []mood.Score) mood.Analysis {
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Score > labels[j].Score })
	if len(labels) > modelLabels {
		labels = labels[:modelLabels]
	}

	merged := make(map[mood.Mood]*mood.Score, len(labels)+len(detected))
	order := make([]mood.Mood, 0, len(labels)+len(detected))
	put := func(s mood.Score) {
		if _, ok := merged[s.Mood]; !ok {
			order = append(order, s.Mood)
		}
		merged[s.Mood] = &s
	}

	for _, l := range labels {
		m := c.taxonomy.Lookup(l.Name)
		if m == mood.Neutral {
			continue
		}
		put(mood.Score{Mood: m, Confidence: l.Score, SourceLabel: l.Name})
	}

	for _, d := range detected {
		existing, ok := merged[d.Mood]
		if !ok || d.Confidence > existing.Confidence {
			put(mood.Score{
				Mood:        d.Mood,
				Confidence:  min(confidenceCap, d.Confidence*detectionBoost),
				SourceLabel: KeywordSource,
			})
			continue
		}
		existing.Confidence = min(confidenceCap, existing.Confidence*agreementBoost)
	}

	scores := make([]mood.Score, 0, len(order))
	for _, m := range order {
		scores = append(scores, *merged[m])
	}
	return mood.NewAnalysis(scores...)
}
