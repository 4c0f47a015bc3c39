package probe

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/diarium/pkg/logger"
)

// sample pairs a diary sentence with the mood it expresses.
type sample struct {
	mood string
	text string
}

// corpus sentences lean on lexicon phrases so the keyword tier alone can
// answer them.
var corpus = []sample{
	{"happy", "What a wonderful day, I feel so grateful and happy"},
	{"happy", "Had an amazing dinner with friends and laughed all night"},
	{"happy", "I can't wait for the trip, so excited and thrilled"},
	{"happy", "A quiet, peaceful evening. I feel calm and relaxed"},
	{"sad", "I feel so sad and lonely tonight, I cried again"},
	{"sad", "Missing my grandmother, everything feels broken and empty"},
	{"angry", "I am furious at my landlord, so angry and annoyed"},
	{"fearful", "I'm really worried about tomorrow's deadline"},
	{"fearful", "So anxious and nervous about the interview, I feel scared"},
	{"bad", "Exhausted after the double shift, completely drained and tired"},
	{"surprised", "Totally shocked by the news, I was caught off guard"},
	{"disgusted", "The kitchen was revolting, I felt disgusted and sick"},
	{"neutral", "Went to the store and bought bread"},
}

// Additional sentence tails mixed in so entry texts are not identical.
var tails = []string{
	"",
	" Wrote this before bed.",
	" **Note to self:** keep writing.",
	" See [my list](https://example.com/list) later.",
	" Tomorrow I will try again.",
	" Yesterday was different.",
}

// generateEntries creates n entries with unique ids.
func generateEntries(ctx context.Context, n int, stats *Stats) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		s := corpus[rand.IntN(len(corpus))]
		entries[i] = Entry{
			EntryID:  uuid.NewString(),
			Text:     s.text + "." + tails[rand.IntN(len(tails))],
			Expected: s.mood,
		}
	}
	stats.Generated = len(entries)
	logger.Get().Info(ctx, "generated entries", logger.Int("count", len(entries)))
	return entries
}

// describe is used in verbose mismatch logs.
func (e Entry) describe() string {
	return fmt.Sprintf("%s (%s)", e.EntryID, e.Expected)
}
