// Package keyword implements the deterministic lexicon-based mood
// classifier that backs every other tier.
package keyword

import (
	"context"
	"math"
	"sort"

	"github.com/okian/diarium/internal/domain/confidence"
	"github.com/okian/diarium/internal/domain/lexicon"
	"github.com/okian/diarium/internal/domain/mood"
)

// Name identifies the keyword tier in logs and metrics.
const Name = "keyword"

// Co-detector scoring constants.
const (
	detectBase      = 0.5
	detectStep      = 0.1
	detectCeiling   = 0.9
	detectMaxLabels = 5
)

// Classifier scores moods by counting lexicon phrases contained in the text.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	moods    *lexicon.ContainmentMatcher
	detector *lexicon.ContainmentMatcher
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithMoodLexicon replaces the mood vocabulary. Labels must be mood names.
func WithMoodLexicon(set lexicon.Set) Option {
	return func(c *Classifier) {
		if len(set) > 0 {
			c.moods = lexicon.NewContainmentMatcher(set)
		}
	}
}

// WithDetectorLexicon replaces the co-detector vocabulary.
func WithDetectorLexicon(set lexicon.Set) Option {
	return func(c *Classifier) {
		if len(set) > 0 {
			c.detector = lexicon.NewContainmentMatcher(set)
		}
	}
}

// New creates a keyword classifier over the bundled lexicons.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.moods == nil {
		c.moods = lexicon.NewContainmentMatcher(lexicon.Moods)
	}
	if c.detector == nil {
		c.detector = lexicon.NewContainmentMatcher(lexicon.CoDetector)
	}
	return c
}

// Name implements the cascade tier contract.
func (c *Classifier) Name() string { return Name }

// Classify implements the cascade tier contract. It never fails.
func (c *Classifier) Classify(_ context.Context, text string) (mood.Analysis, error) {
	return c.Analyze(text), nil
}

type tally struct {
	mood mood.Mood
	hits int
}

// Analyze ranks moods by phrase hits, keeps the top three and scales them
// to confidences. Text without any hit is neutral with zero confidence.
func (c *Classifier) Analyze(text string) mood.Analysis {
	tallies := c.tallies(c.moods, text)
	sort.SliceStable(tallies, func(i, j int) bool { return tallies[i].hits > tallies[j].hits })
	if len(tallies) > mood.MaxRanked {
		tallies = tallies[:mood.MaxRanked]
	}

	hits := make([]int, len(tallies))
	for i, t := range tallies {
		hits[i] = t.hits
	}
	conf, ok := confidence.ScaleHits(hits)
	if !ok {
		return mood.NeutralAnalysis(0).WithTier(Name)
	}

	scores := make([]mood.Score, len(tallies))
	for i, t := range tallies {
		scores[i] = mood.Score{Mood: t.mood, Confidence: conf[i]}
	}
	return mood.NewAnalysis(scores...).WithTier(Name)
}

// Detect returns every co-detector mood with at least one hit, scored
// min(0.9, 0.5 + 0.1*hits), strongest first, at most five.
func (c *Classifier) Detect(text string) []mood.Score {
	tallies := c.tallies(c.detector, text)
	out := make([]mood.Score, 0, len(tallies))
	for _, t := range tallies {
		if t.hits == 0 {
			continue
		}
		out = append(out, mood.Score{
			Mood:       t.mood,
			Confidence: math.Min(detectCeiling, detectBase+detectStep*float64(t.hits)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if len(out) > detectMaxLabels {
		out = out[:detectMaxLabels]
	}
	return out
}

func (c *Classifier) tallies(m *lexicon.ContainmentMatcher, text string) []tally {
	set := m.Set()
	hits := m.Hits(text)
	out := make([]tally, len(set))
	for i, g := range set {
		md, _ := mood.Parse(g.Label)
		out[i] = tally{mood: md, hits: hits[i]}
	}
	return out
}
