package lexicon

import (
	"regexp"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// ContainmentMatcher counts, per group, how many distinct phrases occur
// anywhere in the text as substrings. It is not word-boundary aware:
// "mad" is found inside "made".
//
// All phrases of all groups share one Aho-Corasick automaton, so a text is
// scanned once regardless of the size of the lexicon.
type ContainmentMatcher struct {
	set      Set
	matcher  *ahocorasick.Matcher
	keywords []string
	owners   [][]int // keyword index -> group indices
}

// NewContainmentMatcher builds a matcher over set.
func NewContainmentMatcher(set Set) *ContainmentMatcher {
	set = set.normalized()
	m := &ContainmentMatcher{set: set}

	index := make(map[string]int)
	for gi, g := range set {
		for _, p := range g.Phrases {
			ki, ok := index[p]
			if !ok {
				ki = len(m.keywords)
				index[p] = ki
				m.keywords = append(m.keywords, p)
				m.owners = append(m.owners, nil)
			}
			m.owners[ki] = append(m.owners[ki], gi)
		}
	}
	if len(m.keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	}
	return m
}

// Set returns the normalized set backing the matcher.
func (m *ContainmentMatcher) Set() Set { return m.set }

// Hits returns one count per group, in set order.
// Safe for concurrent use.
func (m *ContainmentMatcher) Hits(text string) []int {
	hits := make([]int, len(m.set))
	if m.matcher == nil {
		return hits
	}
	normalized := Normalize(text)
	if normalized == "" {
		return hits
	}
	for _, ki := range m.matcher.MatchThreadSafe([]byte(normalized)) {
		if ki < 0 || ki >= len(m.owners) {
			continue
		}
		for _, gi := range m.owners[ki] {
			hits[gi]++
		}
	}
	return hits
}

// BoundaryMatcher counts every whole-word occurrence of every phrase,
// aggregated per group.
type BoundaryMatcher struct {
	set      Set
	patterns [][]*regexp.Regexp
}

// NewBoundaryMatcher compiles one word-boundary pattern per phrase.
func NewBoundaryMatcher(set Set) *BoundaryMatcher {
	set = set.normalized()
	m := &BoundaryMatcher{set: set, patterns: make([][]*regexp.Regexp, len(set))}
	for gi, g := range set {
		m.patterns[gi] = make([]*regexp.Regexp, 0, len(g.Phrases))
		for _, p := range g.Phrases {
			m.patterns[gi] = append(m.patterns[gi], regexp.MustCompile(`\b`+regexp.QuoteMeta(p)+`\b`))
		}
	}
	return m
}

// Set returns the normalized set backing the matcher.
func (m *BoundaryMatcher) Set() Set { return m.set }

// Counts returns the number of occurrences per group, in set order.
func (m *BoundaryMatcher) Counts(text string) []int {
	counts := make([]int, len(m.set))
	normalized := Normalize(text)
	if normalized == "" {
		return counts
	}
	for gi, patterns := range m.patterns {
		for _, re := range patterns {
			counts[gi] += len(re.FindAllStringIndex(normalized, -1))
		}
	}
	return counts
}
