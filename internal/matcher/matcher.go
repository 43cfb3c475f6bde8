// Package matcher finds the occurrences of a rule's source pattern in a word and builds the words
// derived by rewriting exactly one occurrence at a time.
package matcher

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// ErrEmptyPattern is returned by New when the pattern is the empty string. An empty pattern
// would match between every pair of scalars.
var ErrEmptyPattern = emptyPatternError{}

type emptyPatternError struct{}

func (emptyPatternError) Error() string {
	return "pattern must not be empty"
}

// Occurrence is the byte span of a single match.
type Occurrence struct {
	Start int
	End   int
}

// Matcher is a precompiled leftmost-first, non-overlapping search for a single fixed pattern.
// A Matcher must not be used by more than one goroutine at a time.
type Matcher struct {
	automaton ahocorasick.AhoCorasick
	pattern   string
}

// New compiles pattern into a Matcher.
func New(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostFirstMatch,
		DFA:       true,
	})

	return &Matcher{
		automaton: builder.Build([]string{pattern}),
		pattern:   pattern,
	}, nil
}

// Pattern returns the pattern the matcher was compiled from.
func (matcher *Matcher) Pattern() string {
	return matcher.pattern
}

// Occurrences returns the non-overlapping occurrences of the pattern in word, left to right.
// Scanning resumes after the end of every match.
func (matcher *Matcher) Occurrences(word string) []Occurrence {
	if len(word) < len(matcher.pattern) {
		return nil
	}

	matches := matcher.automaton.FindAll(word)
	if len(matches) == 0 {
		return nil
	}

	occurrences := make([]Occurrence, 0, len(matches))
	end := 0

	// the automaton resumes one byte after each match start, so drop the overlapping ones
	for i := range matches {
		if matches[i].Start() < end {
			continue
		}

		end = matches[i].End()
		occurrences = append(occurrences, Occurrence{Start: matches[i].Start(), End: end})
	}

	return occurrences
}

// Rewrite returns one derived word per occurrence of the pattern in word; every derived word has
// exactly that one occurrence replaced by replacement. The results are appended to dst.
func (matcher *Matcher) Rewrite(dst []string, word, replacement string) []string {
	for _, occ := range matcher.Occurrences(word) {
		var sb strings.Builder

		sb.Grow(len(word) - (occ.End - occ.Start) + len(replacement))
		sb.WriteString(word[:occ.Start])
		sb.WriteString(replacement)
		sb.WriteString(word[occ.End:])

		dst = append(dst, sb.String())
	}

	return dst
}
