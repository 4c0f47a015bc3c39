// Package mood defines the closed mood vocabulary and the ranked analysis
// value produced by every classifier tier.
package mood

import (
	"math"
	"sort"
	"strings"
)

// MaxRanked bounds the number of distinct moods carried by an Analysis.
const MaxRanked = 3

// Mood is one of the fixed moods known to the diary, plus Neutral.
type Mood string

// Fixed mood set.
const (
	Happy     Mood = "happy"
	Sad       Mood = "sad"
	Angry     Mood = "angry"
	Fearful   Mood = "fearful"
	Bad       Mood = "bad"
	Surprised Mood = "surprised"
	Disgusted Mood = "disgusted"
	Neutral   Mood = "neutral"
)

// All lists the seven non-neutral moods in canonical order. Ties between
// equally scored moods are broken by this order.
var All = []Mood{Happy, Sad, Angry, Fearful, Bad, Surprised, Disgusted} //nolint:gochecknoglobals // closed vocabulary

// Parse returns the Mood named by s and whether it is part of the vocabulary.
func Parse(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if m == Neutral {
		return m, true
	}
	for _, known := range All {
		if m == known {
			return m, true
		}
	}
	return Neutral, false
}

func (m Mood) String() string { return string(m) }

// Score is a single mood with its bounded confidence.
type Score struct {
	Mood        Mood    `json:"mood"`
	Confidence  float64 `json:"confidence"`
	SourceLabel string  `json:"sourceLabel,omitempty"`
}

// Analysis is the ranked outcome of a classification.
// Ranked[0] is always Primary and moods in Ranked are pairwise distinct.
type Analysis struct {
	Primary Score   `json:"primary"`
	Ranked  []Score `json:"moods"`
	Tier    string  `json:"tier,omitempty"`
}

// NewAnalysis ranks scores by confidence (stable for ties), keeps the
// highest confidence per mood, truncates to MaxRanked and collapses an
// empty input to neutral with zero confidence.
func NewAnalysis(scores ...Score) Analysis {
	best := make(map[Mood]int, len(scores))
	ranked := make([]Score, 0, len(scores))
	for _, s := range scores {
		s.Confidence = clamp01(s.Confidence)
		if i, ok := best[s.Mood]; ok {
			if s.Confidence > ranked[i].Confidence {
				ranked[i] = s
			}
			continue
		}
		best[s.Mood] = len(ranked)
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	if len(ranked) > MaxRanked {
		ranked = ranked[:MaxRanked]
	}
	if len(ranked) == 0 {
		ranked = []Score{{Mood: Neutral, Confidence: 0}}
	}
	return Analysis{Primary: ranked[0], Ranked: ranked}
}

// NeutralAnalysis returns the neutral analysis with the given confidence.
func NeutralAnalysis(confidence float64) Analysis {
	return NewAnalysis(Score{Mood: Neutral, Confidence: confidence})
}

// WithTier returns a copy of a tagged with the producing tier.
func (a Analysis) WithTier(tier string) Analysis {
	a.Tier = tier
	return a
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
