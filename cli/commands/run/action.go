package run

import (
	"context"

	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/internal/report"
	"github.com/edwloef/chomsky/internal/telemetry"
	"github.com/edwloef/chomsky/options"
	"github.com/edwloef/chomsky/pkg/log"
	"github.com/edwloef/chomsky/pkg/log/formats"
)

// Run loads the grammar, derives its terminal words and writes the report. Nothing is written
// unless the whole run succeeds.
func Run(ctx context.Context, opts *options.Options) error {
	logger := opts.Logger.WithField(log.FieldKeyGrammar, opts.GrammarPath)

	format, err := report.ParseFormat(opts.OutputFormat)
	if err != nil {
		return err
	}

	scheduler, closureOpts, err := opts.ClosureOptions(logger)
	if err != nil {
		return err
	}

	rpt := report.NewReport(
		opts.GrammarPath,
		report.WithFormat(format),
		report.WithScheduler(scheduler.String()),
		report.WithMaxIters(opts.MaxIters),
		report.WithShouldColor(!opts.NoColor && formats.IsTerminal(opts.ErrWriter)),
	)

	g, err := grammar.Load(ctx, opts.GrammarPath,
		grammar.WithLogger(logger),
		grammar.WithStrict(opts.Strict),
		grammar.WithConcurrency(opts.Parallelism),
	)
	if err != nil {
		return err
	}

	attrs := map[string]any{
		"grammar":   opts.GrammarPath,
		"scheduler": scheduler.String(),
		"max_iters": opts.MaxIters,
		"rules":     len(g.Rules()),
	}

	var result *closure.Result

	err = telemetry.TelemeterFromContext(ctx).Collect(ctx, "closure_run", attrs, func(ctx context.Context) error {
		result, err = closure.Run(ctx, g, closureOpts...)
		return err
	})
	if errors.IsContextCanceled(err) {
		logger.Warnf("Derivation canceled, no report written")
		return errors.ErrorWithExitCode{Err: err, ExitCode: CanceledExitCode}
	}

	if err != nil {
		return err
	}

	logger.Debugf("Derived %d terminal words in %d generations", result.Len(), result.Iterations)

	if err := rpt.Record(result); err != nil {
		return err
	}

	if opts.OutputFile != "" {
		if err := rpt.WriteToFile(opts.OutputFile); err != nil {
			return err
		}
	} else if err := rpt.Write(opts.Writer); err != nil {
		return errors.New(err)
	}

	if opts.Summary {
		return rpt.WriteSummary(opts.ErrWriter)
	}

	return nil
}
