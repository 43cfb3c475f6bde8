// Package closure derives every terminal word reachable from the start word of a grammar.
//
// The derivation proceeds in generations. Generation 0 classifies the start word. Each following
// generation applies every rule at every occurrence in every frontier word, one derived word per
// occurrence; terminal-only words are collected as results and the rest form the next frontier,
// which replaces the previous one. Words are deduplicated within a frontier and within the result
// set but never against earlier frontiers. The run stops once the frontier is empty or the
// iteration cap is reached.
package closure

import (
	"context"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/internal/telemetry"
	"github.com/edwloef/chomsky/pkg/log"
)

const (
	generationMetricName = "closure_generation"
	derivedMetricName    = "closure_derived_words"
)

// Run derives the terminal words of g. The context is only checked between generations; a
// cancelled run returns the context error and no result.
func Run(ctx context.Context, g *grammar.Grammar, opts ...Option) (*Result, error) {
	options := newOptions(opts...)

	gen := newGenerator(g, options)
	defer gen.close()

	var (
		tlm      = telemetry.TelemeterFromContext(ctx)
		result   = &Result{}
		frontier []string
	)

	if start := g.Start(); g.IsTerminalOnly(start) {
		gen.addResult(start)
	} else {
		frontier = []string{start}
	}

	for len(frontier) > 0 && !options.limitReached(result.Iterations) {
		if err := ctx.Err(); err != nil {
			return nil, errors.New(err)
		}

		index := result.Iterations + 1
		attrs := map[string]any{
			log.FieldKeyGeneration: index,
			"frontier":             len(frontier),
			"scheduler":            options.Scheduler.String(),
		}

		var (
			next    []string
			derived int
		)

		err := tlm.Collect(ctx, generationMetricName, attrs, func(context.Context) error {
			var err error

			next, derived, err = gen.generate(frontier)

			return err
		})
		if err != nil {
			return nil, errors.Errorf("generation %d: %w", index, err)
		}

		tlm.Count(ctx, derivedMetricName, int64(derived), attrs)

		stats := Generation{
			Index:    index,
			Frontier: len(frontier),
			Derived:  derived,
			Next:     len(next),
			Results:  gen.resultCount(),
		}

		options.Logger.WithField(log.FieldKeyGeneration, index).Debugf(
			"Derived %d words from %d, next frontier %d, results %d",
			stats.Derived, stats.Frontier, stats.Next, stats.Results,
		)

		result.Generations = append(result.Generations, stats)
		result.Iterations = index
		frontier = next
	}

	result.Fixpoint = len(frontier) == 0
	result.words = gen.results()

	return result, nil
}
