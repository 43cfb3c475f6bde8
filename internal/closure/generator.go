package closure

import (
	"github.com/edwloef/chomsky/internal/grammar"
)

// generator computes one generation at a time and owns the result set of a run.
type generator interface {
	// generate applies every rule to every frontier word, moves the terminal-only derived words
	// into the result set and returns the deduplicated next frontier with the number of derived words.
	generate(frontier []string) (next []string, derived int, err error)
	addResult(word string)
	resultCount() int
	results() map[string]struct{}
	close()
}

func newGenerator(g *grammar.Grammar, opts *Options) generator {
	if opts.Scheduler == ParallelScheduler {
		return newParallel(g, opts.Parallelism)
	}

	return newSequential(g)
}

type sequential struct {
	grammar *grammar.Grammar
	words   map[string]struct{}
	buf     []string
}

func newSequential(g *grammar.Grammar) *sequential {
	return &sequential{
		grammar: g,
		words:   make(map[string]struct{}),
	}
}

func (gen *sequential) generate(frontier []string) ([]string, int, error) {
	var (
		next    = make(map[string]struct{})
		derived int
	)

	for _, word := range frontier {
		for _, rule := range gen.grammar.Rules() {
			gen.buf = rule.Apply(gen.buf[:0], word)
			derived += len(gen.buf)

			for _, newWord := range gen.buf {
				if gen.grammar.IsTerminalOnly(newWord) {
					gen.words[newWord] = struct{}{}
				} else {
					next[newWord] = struct{}{}
				}
			}
		}
	}

	nextFrontier := make([]string, 0, len(next))
	for word := range next {
		nextFrontier = append(nextFrontier, word)
	}

	return nextFrontier, derived, nil
}

func (gen *sequential) addResult(word string) {
	gen.words[word] = struct{}{}
}

func (gen *sequential) resultCount() int {
	return len(gen.words)
}

func (gen *sequential) results() map[string]struct{} {
	return gen.words
}

func (gen *sequential) close() {}
