// Package cascade orders classifier tiers from most to least capable and
// returns the first result that carries a usable signal.
package cascade

import (
	"context"
	"strings"
	"time"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/pkg/logger"
	"github.com/okian/diarium/pkg/metrics"
)

// Cascade constants.
const (
	// AcceptThreshold is the confidence above which even a neutral result
	// is accepted.
	AcceptThreshold = 0.6

	// InputTier tags results decided before any tier ran.
	InputTier = "input"

	reasonLowConfidence = "low_confidence"
)

// Tier is a single classifier stage.
type Tier interface {
	Name() string
	Classify(ctx context.Context, text string) (mood.Analysis, error)
}

// Orchestrator is safe for concurrent use when its tiers are.
type Orchestrator struct {
	primary     Tier
	statistical Tier
	terminal    Tier
	logger      logger.Logger
}

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithPrimary sets the first tier, typically remote or on-device inference.
func WithPrimary(t Tier) Option {
	return func(o *Orchestrator) {
		o.primary = t
	}
}

// WithStatistical sets the tier consulted after the primary.
func WithStatistical(t Tier) Option {
	return func(o *Orchestrator) {
		o.statistical = t
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator ending in terminal, whose result is always
// accepted.
func New(terminal Tier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		terminal: terminal,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.Named("cascade")
	return o
}

// Tiers lists the configured tier names in consultation order.
func (o *Orchestrator) Tiers() []string {
	names := make([]string, 0, 3)
	for _, t := range o.chain() {
		names = append(names, t.Name())
	}
	return append(names, o.terminal.Name())
}

// Accept reports whether a tier result ends the cascade.
func Accept(a mood.Analysis) bool {
	return a.Primary.Confidence > AcceptThreshold || a.Primary.Mood != mood.Neutral
}

// Analyze never fails. Each tier that errors or returns a weak neutral
// result is demoted to the next one.
func (o *Orchestrator) Analyze(ctx context.Context, text string) mood.Analysis {
	if strings.TrimSpace(text) == "" {
		metrics.RecordAnalysis(InputTier)
		return mood.NeutralAnalysis(0).WithTier(InputTier)
	}

	for _, t := range o.chain() {
		a, err := o.run(ctx, t, text)
		if err != nil {
			o.demote(ctx, t.Name(), mood.Kind(err), err)
			continue
		}
		if !Accept(a) {
			o.demote(ctx, t.Name(), reasonLowConfidence, nil)
			continue
		}
		return o.accept(t, a)
	}

	a, err := o.run(ctx, o.terminal, text)
	if err != nil {
		o.logger.Error(ctx, "terminal tier failed",
			logger.String("tier", o.terminal.Name()),
			logger.Error(err),
		)
		metrics.RecordErrorByComponent("cascade", mood.Kind(err))
		a = mood.NeutralAnalysis(0)
	}
	return o.accept(o.terminal, a)
}

func (o *Orchestrator) chain() []Tier {
	out := make([]Tier, 0, 2)
	if o.primary != nil {
		out = append(out, o.primary)
	}
	if o.statistical != nil {
		out = append(out, o.statistical)
	}
	return out
}

func (o *Orchestrator) run(ctx context.Context, t Tier, text string) (mood.Analysis, error) {
	start := time.Now()
	a, err := t.Classify(ctx, text)
	metrics.RecordTierLatency(t.Name(), float64(time.Since(start).Microseconds())/1000)
	return a, err
}

func (o *Orchestrator) accept(t Tier, a mood.Analysis) mood.Analysis {
	if a.Tier == "" {
		a = a.WithTier(t.Name())
	}
	metrics.RecordAnalysis(a.Tier)
	return a
}

func (o *Orchestrator) demote(ctx context.Context, tier, reason string, err error) {
	metrics.RecordTierDemotion(tier, reason)
	fields := []logger.Field{
		logger.String("tier", tier),
		logger.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	o.logger.Debug(ctx, "tier demoted", fields...)
}
