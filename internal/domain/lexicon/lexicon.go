// Package lexicon holds the static trigger-phrase vocabularies and the
// matchers that count them in free text.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Group is one label with its trigger phrases.
type Group struct {
	Label   string
	Phrases []string
}

// Set is an ordered list of groups. Order is significant: it breaks ties.
type Set []Group

// Labels returns the group labels in order.
func (s Set) Labels() []string {
	out := make([]string, len(s))
	for i, g := range s {
		out[i] = g.Label
	}
	return out
}

// normalized returns a copy of s with every phrase normalized and
// de-duplicated within its group.
func (s Set) normalized() Set {
	out := make(Set, len(s))
	for i, g := range s {
		seen := make(map[string]struct{}, len(g.Phrases))
		phrases := make([]string, 0, len(g.Phrases))
		for _, p := range g.Phrases {
			p = Normalize(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			phrases = append(phrases, p)
		}
		out[i] = Group{Label: g.Label, Phrases: phrases}
	}
	return out
}

func foldApostrophe(r rune) rune {
	switch r {
	case '‘', '’', 'ʼ', '＇':
		return '\''
	}
	return r
}

// Normalize lower-cases text, folds Unicode compatibility forms and maps
// typographic apostrophes to ASCII.
func Normalize(text string) string {
	t := transform.Chain(norm.NFKC, runes.Map(foldApostrophe), runes.Map(unicode.ToLower))
	out, _, err := transform.String(t, text)
	if err != nil {
		return strings.ToLower(text)
	}
	return strings.TrimSpace(out)
}
