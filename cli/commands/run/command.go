// Package run implements the command that derives the terminal words of a grammar.
package run

import (
	"strconv"

	"github.com/edwloef/chomsky/cli/flags/global"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "run"

	MaxItersFlagName     = "max-iters"
	SchedulerFlagName    = "scheduler"
	ParallelismFlagName  = "parallelism"
	StrictFlagName       = "strict"
	OutputFormatFlagName = "output-format"
	OutputFileFlagName   = "output-file"
	SummaryFlagName      = "summary"

	// UsageExitCode is returned for invalid command line arguments.
	UsageExitCode = 2
	// CanceledExitCode is returned when the derivation is interrupted, as a shell does for SIGINT.
	CanceledExitCode = 130
)

// NewFlags returns the app-level copy of the run flags, which serves the `chomsky <grammar-file>`
// form and reads the env vars.
func NewFlags(opts *options.Options) []cli.Flag {
	return newFlags(opts, global.EnvVars)
}

// The run flags are declared on the app and on the run command, so they carry no destination;
// ApplyFlags copies their values into the options.
func newFlags(opts *options.Options, envVars func(flagName string) []string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    MaxItersFlagName,
			EnvVars: envVars(MaxItersFlagName),
			Usage:   "Maximum number of generations; negative runs until no nonterminal word is left.",
			Value:   opts.MaxIters,
		},
		&cli.StringFlag{
			Name:    SchedulerFlagName,
			EnvVars: envVars(SchedulerFlagName),
			Usage:   "Scheduler of the rule applications: sequential or parallel.",
			Value:   opts.Scheduler,
		},
		&cli.IntFlag{
			Name:    ParallelismFlagName,
			EnvVars: envVars(ParallelismFlagName),
			Usage:   "Number of workers of the parallel scheduler.",
			Value:   opts.Parallelism,
		},
		&cli.BoolFlag{
			Name:    StrictFlagName,
			EnvVars: envVars(StrictFlagName),
			Usage:   "Rejects grammars whose words use symbols missing from var_symbols and term_symbols.",
		},
		&cli.StringFlag{
			Name:    OutputFormatFlagName,
			Aliases: []string{"format"},
			EnvVars: envVars(OutputFormatFlagName),
			Usage:   "Report format: text, json or csv.",
			Value:   opts.OutputFormat,
		},
		&cli.StringFlag{
			Name:    OutputFileFlagName,
			Aliases: []string{"o"},
			EnvVars: envVars(OutputFileFlagName),
			Usage:   "Writes the report to a file instead of stdout.",
		},
		&cli.BoolFlag{
			Name:    SummaryFlagName,
			EnvVars: envVars(SummaryFlagName),
			Usage:   "Writes a summary of the run to stderr.",
		},
	}
}

// noEnvVars keeps the command-level copies from reading env vars, which would otherwise take
// precedence over flags given before the command name.
func noEnvVars(string) []string {
	return nil
}

// NewCommand returns the run command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Derive every terminal word of a grammar.",
		UsageText: "chomsky run [options] <grammar-file> [max-iters]",
		Description: `Applies every rule at every occurrence in every word, generation by generation, starting from
the start symbol. Words consisting of terminal symbols only are reported; the others are
rewritten in the next generation. The run ends when no word is left or the generation cap is reached.

Example:
  chomsky run --scheduler parallel --output-format json grammar.json 10`,
		Flags:  newFlags(opts, noEnvVars),
		Action: errors.WithPanicHandling(Action(opts)),
	}
}

// Action parses the positional arguments into opts and runs the derivation.
func Action(opts *options.Options) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		ApplyFlags(cliCtx, opts)

		if err := ParseArgs(opts, cliCtx.Args().Slice()); err != nil {
			return err
		}

		return Run(cliCtx.Context, opts)
	}
}

// ApplyFlags copies the run flags into opts. Precedence: a flag after `run`, the same flag before
// it, its env var. Unset flags leave opts untouched.
func ApplyFlags(cliCtx *cli.Context, opts *options.Options) {
	if ctx := global.SetIn(cliCtx, MaxItersFlagName); ctx != nil {
		opts.MaxIters = ctx.Int(MaxItersFlagName)
	}

	if ctx := global.SetIn(cliCtx, SchedulerFlagName); ctx != nil {
		opts.Scheduler = ctx.String(SchedulerFlagName)
	}

	if ctx := global.SetIn(cliCtx, ParallelismFlagName); ctx != nil {
		opts.Parallelism = ctx.Int(ParallelismFlagName)
	}

	if ctx := global.SetIn(cliCtx, StrictFlagName); ctx != nil {
		opts.Strict = ctx.Bool(StrictFlagName)
	}

	if ctx := global.SetIn(cliCtx, OutputFormatFlagName); ctx != nil {
		opts.OutputFormat = ctx.String(OutputFormatFlagName)
	}

	if ctx := global.SetIn(cliCtx, OutputFileFlagName); ctx != nil {
		opts.OutputFile = ctx.String(OutputFileFlagName)
	}

	if ctx := global.SetIn(cliCtx, SummaryFlagName); ctx != nil {
		opts.Summary = ctx.Bool(SummaryFlagName)
	}
}

// ParseArgs sets the grammar path and, if given, the generation cap from the positional arguments.
func ParseArgs(opts *options.Options, args []string) error {
	const maxArgs = 2

	switch {
	case len(args) == 0:
		return usageError(errors.Errorf("missing grammar file, usage: chomsky run [options] <grammar-file> [max-iters]"))
	case len(args) > maxArgs:
		return usageError(errors.Errorf("too many arguments: %v", args))
	}

	opts.GrammarPath = args[0]

	if len(args) == maxArgs {
		maxIters, err := strconv.Atoi(args[1])
		if err != nil || maxIters < 0 {
			return usageError(errors.Errorf("invalid max-iters %q: expected a non-negative integer", args[1]))
		}

		opts.MaxIters = maxIters
	}

	return nil
}

func usageError(err error) error {
	return errors.ErrorWithExitCode{Err: err, ExitCode: UsageExitCode}
}
