// Package fuzzy ranks a fixed list of candidates against a query.
//
// Candidates are plain strings or records. For records, the configured keys
// pick the fields that make up the searchable text. Each candidate is scored
// against the lower-cased query, where 0 is a perfect match and 1 is no
// resemblance at all:
//
//   - exact match scores 0
//   - a substring match scores 0.2
//   - a prefix match scores 0.1
//   - anything else scores its normalized Levenshtein distance
//
// The rules are tried in that order and the first one that applies wins, so a
// prefix match is always caught by the substring rule first. Results scoring
// above the threshold are dropped and the rest come back best first.
package fuzzy

import (
	"sort"
	"strings"
)

// DefaultThreshold is the highest score a candidate may have and still match.
const DefaultThreshold = 0.6

// Fixed scores for the non-distance rules.
const (
	scoreExact     = 0.0
	scoreSubstring = 0.2
	scorePrefix    = 0.1
)

// Match is a single search hit.
type Match struct {
	// Item is the candidate as it was passed to New.
	Item any
	// Score is in [0, 1]; lower is better.
	Score float64
	// Index is the candidate's position in the list passed to New.
	Index int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithKeys sets the record fields that are joined into the searchable text.
// Fields are used in the given order.
func WithKeys(keys ...string) Option {
	return func(m *Matcher) { m.keys = append([]string(nil), keys...) }
}

// WithThreshold sets the maximum score a candidate may have to be returned.
func WithThreshold(t float64) Option {
	return func(m *Matcher) { m.threshold = t }
}

// Matcher searches a fixed candidate list. It is immutable after New and safe
// for concurrent use.
type Matcher struct {
	keys      []string
	threshold float64

	items []any
	texts []string // lower-cased searchable text, parallel to items
}

// New builds a Matcher over candidates. The slice is copied; searching a
// different list requires a new Matcher.
func New(candidates []any, opts ...Option) *Matcher {
	m := &Matcher{
		threshold: DefaultThreshold,
		items:     append([]any(nil), candidates...),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.texts = make([]string, len(m.items))
	for i, item := range m.items {
		m.texts[i] = strings.ToLower(searchableText(item, m.keys))
	}
	return m
}

// Strings is a convenience for building a candidate list from plain strings.
func Strings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Search returns the candidates scoring at or below the threshold, best
// first. Candidates with equal scores keep their original order. An empty
// pattern matches nothing.
func (m *Matcher) Search(pattern string) []Match {
	if pattern == "" {
		return nil
	}
	p := strings.ToLower(pattern)

	var out []Match
	for i, text := range m.texts {
		s := score(p, text)
		if s > m.threshold {
			continue
		}
		out = append(out, Match{Item: m.items[i], Score: s, Index: i})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// Len returns the number of candidates.
func (m *Matcher) Len() int { return len(m.items) }

// Threshold returns the configured score threshold.
func (m *Matcher) Threshold() float64 { return m.threshold }

// Keys returns a copy of the configured field names.
func (m *Matcher) Keys() []string { return append([]string(nil), m.keys...) }

// Text returns the lower-cased searchable text derived for candidate i.
func (m *Matcher) Text(i int) string { return m.texts[i] }

// Score scores pattern against text, case-insensitively.
func Score(pattern, text string) float64 {
	return score(strings.ToLower(pattern), strings.ToLower(text))
}

// score expects both arguments already lower-cased.
func score(pattern, text string) float64 {
	if pattern == text {
		return scoreExact
	}
	if strings.Contains(text, pattern) {
		return scoreSubstring
	}
	if strings.HasPrefix(text, pattern) {
		return scorePrefix
	}

	longest := max(runeLen(pattern), runeLen(text))
	if longest == 0 {
		return scoreExact
	}
	return float64(levenshtein(pattern, text)) / float64(longest)
}
