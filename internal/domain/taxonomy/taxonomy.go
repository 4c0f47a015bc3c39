// Package taxonomy maps third-party classifier label vocabularies onto the
// fixed mood set.
package taxonomy

import (
	"strings"

	"github.com/okian/diarium/internal/domain/mood"
)

// Entry maps one lower-case external label to a mood.
type Entry struct {
	Label string
	Mood  mood.Mood
}

// Taxonomy is an ordered, read-only label table. Lookup order is the table
// order, so earlier entries win substring ties.
type Taxonomy struct {
	entries []Entry
	exact   map[string]mood.Mood
}

// New builds a taxonomy from entries. When a label appears twice the first
// occurrence keeps both its position and its mood.
func New(entries ...Entry) *Taxonomy {
	t := &Taxonomy{
		entries: make([]Entry, 0, len(entries)),
		exact:   make(map[string]mood.Mood, len(entries)),
	}
	for _, e := range entries {
		label := strings.ToLower(strings.TrimSpace(e.Label))
		if label == "" {
			continue
		}
		if _, dup := t.exact[label]; dup {
			continue
		}
		t.exact[label] = e.Mood
		t.entries = append(t.entries, Entry{Label: label, Mood: e.Mood})
	}
	return t
}

// Lookup resolves label to a mood: exact match first, then the first entry
// whose key contains or is contained in label, then neutral. A blank label
// is neutral.
func (t *Taxonomy) Lookup(label string) mood.Mood {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return mood.Neutral
	}
	if m, ok := t.exact[l]; ok {
		return m
	}
	for _, e := range t.entries {
		if strings.Contains(l, e.Label) || strings.Contains(e.Label, l) {
			return e.Mood
		}
	}
	return mood.Neutral
}

// Entries returns a copy of the table in lookup order.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func emotionEntries(positive, negative []Entry) []Entry {
	out := []Entry{
		{"joy", mood.Happy},
		{"happiness", mood.Happy},
		{"excitement", mood.Happy},
		{"optimism", mood.Happy},
		{"love", mood.Happy},
		{"pride", mood.Happy},
		{"relief", mood.Happy},
		{"amusement", mood.Happy},
		{"approval", mood.Happy},
		{"caring", mood.Happy},
		{"gratitude", mood.Happy},
	}
	out = append(out, positive...)
	out = append(out,
		Entry{"sadness", mood.Sad},
		Entry{"grief", mood.Sad},
		Entry{"disappointment", mood.Sad},
		Entry{"remorse", mood.Sad},
		Entry{"shame", mood.Sad},
	)
	out = append(out, negative...)
	return append(out,
		Entry{"anger", mood.Angry},
		Entry{"annoyance", mood.Angry},
		Entry{"disapproval", mood.Angry},
		Entry{"disgust", mood.Angry},
		Entry{"fear", mood.Fearful},
		Entry{"nervousness", mood.Fearful},
		Entry{"anxiety", mood.Fearful},
		Entry{"boredom", mood.Bad},
		Entry{"tiredness", mood.Bad},
		Entry{"exhaustion", mood.Bad},
		Entry{"surprise", mood.Surprised},
		Entry{"confusion", mood.Surprised},
		Entry{"curiosity", mood.Surprised},
		Entry{"neutral", mood.Neutral},
	)
}

// Emotions covers fine-grained emotion model vocabularies (GoEmotions,
// emotion-english-distilroberta and similar).
var Emotions = New(emotionEntries(nil, nil)...) //nolint:gochecknoglobals // read-only table

// Sentiment extends Emotions with polarity labels produced by binary
// sentiment models.
var Sentiment = New(append( //nolint:gochecknoglobals // read-only table
	emotionEntries(
		[]Entry{{"positive", mood.Happy}},
		[]Entry{{"negative", mood.Sad}},
	),
	Entry{"pos", mood.Happy},
	Entry{"neg", mood.Sad},
	Entry{"positive_sentiment", mood.Happy},
	Entry{"negative_sentiment", mood.Sad},
)...)
