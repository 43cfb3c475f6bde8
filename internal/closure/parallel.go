package closure

import (
	"sync/atomic"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/internal/worker"
	"github.com/puzpuzpuz/xsync/v3"
)

// parallel runs one task per rule against the whole frontier. The frontier slice is shared
// read-only by all tasks; the next frontier and the result set are concurrent maps.
type parallel struct {
	grammar *grammar.Grammar
	pool    *worker.Pool
	words   *xsync.MapOf[string, struct{}]
}

func newParallel(g *grammar.Grammar, parallelism int) *parallel {
	return &parallel{
		grammar: g,
		pool:    worker.NewWorkerPool(parallelism),
		words:   xsync.NewMapOf[string, struct{}](),
	}
}

func (gen *parallel) generate(frontier []string) ([]string, int, error) {
	var (
		next    = xsync.NewMapOf[string, struct{}]()
		derived atomic.Int64
		dropped bool
	)

	for _, rule := range gen.grammar.Rules() {
		submitted := gen.pool.Submit(func() error {
			var newWords []string

			for _, word := range frontier {
				newWords = rule.Apply(newWords, word)
			}

			derived.Add(int64(len(newWords)))

			for _, newWord := range newWords {
				if gen.grammar.IsTerminalOnly(newWord) {
					gen.words.Store(newWord, struct{}{})
				} else {
					next.Store(newWord, struct{}{})
				}
			}

			return nil
		})

		dropped = dropped || !submitted
	}

	// Barrier: the next generation must not start before every rule task has merged its words.
	if err := gen.pool.Wait(); err != nil {
		return nil, 0, err
	}

	if dropped {
		return nil, 0, errors.Errorf("worker pool stopped before all rules of the generation were scheduled")
	}

	nextFrontier := make([]string, 0, next.Size())

	next.Range(func(word string, _ struct{}) bool {
		nextFrontier = append(nextFrontier, word)
		return true
	})

	return nextFrontier, int(derived.Load()), nil
}

func (gen *parallel) addResult(word string) {
	gen.words.Store(word, struct{}{})
}

func (gen *parallel) resultCount() int {
	return gen.words.Size()
}

func (gen *parallel) results() map[string]struct{} {
	words := make(map[string]struct{}, gen.words.Size())

	gen.words.Range(func(word string, _ struct{}) bool {
		words[word] = struct{}{}
		return true
	})

	return words
}

func (gen *parallel) close() {
	gen.pool.Stop()
}
