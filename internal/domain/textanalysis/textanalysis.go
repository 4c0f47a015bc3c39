// Package textanalysis scores diary text for temporal focus and life-domain
// categories using whole-word lexicon counts.
package textanalysis

import (
	"github.com/okian/diarium/internal/domain/lexicon"
)

// VisibilityThreshold drops categories whose share is below it.
const VisibilityThreshold = 0.05

// Temporal is the past/present/future distribution. It sums to 1.
type Temporal struct {
	Past    float64 `json:"past"`
	Present float64 `json:"present"`
	Future  float64 `json:"future"`
}

// Categories maps a life-domain category to its share.
type Categories map[string]float64

// Result bundles both distributions.
type Result struct {
	Temporal Temporal   `json:"temporal"`
	Category Categories `json:"category"`
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	temporal   *lexicon.BoundaryMatcher
	categories *lexicon.BoundaryMatcher
	threshold  float64
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithThreshold overrides the category visibility threshold.
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold >= 0 && threshold < 1 {
			a.threshold = threshold
		}
	}
}

// New creates an analyzer over the bundled temporal and category lexicons.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{threshold: VisibilityThreshold}
	for _, opt := range opts {
		opt(a)
	}
	a.temporal = lexicon.NewBoundaryMatcher(lexicon.Temporal)
	a.categories = lexicon.NewBoundaryMatcher(lexicon.Categories)
	return a
}

// Analyze returns both distributions for text.
func (a *Analyzer) Analyze(text string) Result {
	return Result{
		Temporal: a.Temporal(text),
		Category: a.Category(text),
	}
}

// Temporal returns the share of past, present and future references.
// Text without any reference is entirely present.
func (a *Analyzer) Temporal(text string) Temporal {
	counts := a.temporal.Counts(text)
	byLabel := make(map[string]int, len(counts))
	total := 0
	for i, g := range a.temporal.Set() {
		byLabel[g.Label] = counts[i]
		total += counts[i]
	}
	if total == 0 {
		return Temporal{Present: 1}
	}
	t := float64(total)
	return Temporal{
		Past:    float64(byLabel[lexicon.Past]) / t,
		Present: float64(byLabel[lexicon.Present]) / t,
		Future:  float64(byLabel[lexicon.Future]) / t,
	}
}

// Category returns category shares above the visibility threshold. When
// none passes, the single best category is kept. Text without any reference
// is entirely life.
func (a *Analyzer) Category(text string) Categories {
	set := a.categories.Set()
	counts := a.categories.Counts(text)
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return Categories{lexicon.Life: 1}
	}

	out := make(Categories, len(set))
	best := 0
	for i, g := range set {
		if counts[i] > counts[best] {
			best = i
		}
		share := float64(counts[i]) / float64(total)
		if share >= a.threshold {
			out[g.Label] = share
		}
	}
	if len(out) == 0 {
		out[set[best].Label] = float64(counts[best]) / float64(total)
	}
	return out
}
