package closure

import (
	"slices"
)

// Generation holds the statistics of one processed generation.
type Generation struct {
	// Index is the 1-based number of the generation.
	Index int `json:"index"`
	// Frontier is the number of words the rules were applied to.
	Frontier int `json:"frontier"`
	// Derived is the number of words derived, before deduplication.
	Derived int `json:"derived"`
	// Next is the size of the frontier handed to the following generation.
	Next int `json:"next"`
	// Results is the size of the result set after the generation.
	Results int `json:"results"`
}

// Result is the outcome of a derivation.
type Result struct {
	words       map[string]struct{}
	Generations []Generation
	// Iterations is the number of generations processed.
	Iterations int
	// Fixpoint reports whether the frontier was exhausted, as opposed to stopping at the cap.
	Fixpoint bool
}

// Len returns the number of terminal words found.
func (result *Result) Len() int {
	return len(result.words)
}

// Contains reports whether word was derived.
func (result *Result) Contains(word string) bool {
	_, ok := result.words[word]
	return ok
}

// Words returns the terminal words in lexical order.
func (result *Result) Words() []string {
	words := make([]string, 0, len(result.words))
	for word := range result.words {
		words = append(words, word)
	}

	slices.Sort(words)

	return words
}
