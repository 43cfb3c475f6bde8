package validate

import (
	"context"
	"fmt"
	"slices"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/options"
	"github.com/mattn/go-zglob"
)

// Run validates every grammar file matching patterns and prints the path of each valid one.
func Run(ctx context.Context, opts *options.Options, patterns ...string) error {
	paths, err := expandPatterns(patterns)
	if err != nil {
		return err
	}

	errs := &errors.MultiError{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return errors.New(err)
		}

		g, err := grammar.Load(ctx, path,
			grammar.WithLogger(opts.Logger),
			grammar.WithStrict(opts.Strict),
			grammar.WithConcurrency(opts.Parallelism),
		)
		if err != nil {
			errs = errs.Append(err)
			continue
		}

		opts.Logger.Debugf("%s: %d rules, %d terminal symbols", path, len(g.Rules()), len(g.TermSymbols()))

		if _, err := fmt.Fprintln(opts.Writer, path); err != nil {
			return errors.New(err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		opts.Logger.Errorf("%d of %d grammar files are invalid", errs.Len(), len(paths))
		return err
	}

	return nil
}

// expandPatterns returns the sorted, deduplicated files matching patterns. A pattern without
// matches is an error.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string

	for _, pattern := range patterns {
		matches, err := zglob.Glob(pattern)
		if err != nil || len(matches) == 0 {
			return nil, errors.New(NoMatchError{Pattern: pattern})
		}

		paths = append(paths, matches...)
	}

	slices.Sort(paths)

	return slices.Compact(paths), nil
}
