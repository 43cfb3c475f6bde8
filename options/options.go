// Package options provides the set of options that configure a chomsky run.
package options

import (
	"io"
	"os"
	"runtime"

	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/report"
	"github.com/edwloef/chomsky/internal/telemetry"
	"github.com/edwloef/chomsky/pkg/log"
)

const (
	DefaultLogLevel  = log.InfoLevel
	DefaultLogFormat = "key-value"
)

// Options represents options that configure the behavior of the chomsky program.
type Options struct {
	// Writer receives the report.
	Writer io.Writer
	// ErrWriter receives logs and the summary.
	ErrWriter io.Writer
	Logger    log.Logger
	Telemetry *telemetry.Options
	// GrammarPath is the path of the grammar description.
	GrammarPath string
	// Scheduler is the name of the closure scheduler.
	Scheduler string
	// OutputFormat is the report format, see report.Formats.
	OutputFormat string
	// OutputFile, if set, receives the report instead of Writer.
	OutputFile string
	LogLevel   string
	LogFormat  string
	// MaxIters caps the number of generations; closure.NoLimit runs to fixpoint.
	MaxIters int
	// Parallelism is the worker count of the parallel scheduler and of rule compilation.
	Parallelism int
	// Strict enables validation of every word against the declared alphabet.
	Strict  bool
	NoColor bool
	// Summary writes a human readable summary to ErrWriter after the report.
	Summary bool
}

// NewOptions returns options with the defaults applied.
func NewOptions() *Options {
	return &Options{
		Writer:       os.Stdout,
		ErrWriter:    os.Stderr,
		Logger:       log.New(log.WithOutput(os.Stderr), log.WithLevel(DefaultLogLevel)),
		Telemetry:    new(telemetry.Options),
		Scheduler:    closure.SequentialScheduler.String(),
		OutputFormat: string(report.FormatText),
		LogLevel:     DefaultLogLevel.String(),
		LogFormat:    DefaultLogFormat,
		MaxIters:     closure.NoLimit,
		Parallelism:  runtime.NumCPU(),
	}
}

// NewOptionsWithWriters returns default options writing to the given writers, e.g. for tests.
func NewOptionsWithWriters(writer, errWriter io.Writer) *Options {
	opts := NewOptions()
	opts.Writer = writer
	opts.ErrWriter = errWriter
	opts.Logger.SetOptions(log.WithOutput(errWriter))

	return opts
}

// Clone returns a shallow copy of the options with a cloned logger and telemetry options.
func (opts *Options) Clone() *Options {
	newOpts := *opts
	newOpts.Logger = opts.Logger.Clone()

	if opts.Telemetry != nil {
		telemetryOpts := *opts.Telemetry
		newOpts.Telemetry = &telemetryOpts
	}

	return &newOpts
}

// ClosureOptions converts the options to closure.Run options logging to logger. The parsed
// scheduler is returned alongside so callers can report it.
func (opts *Options) ClosureOptions(logger log.Logger) (closure.Scheduler, []closure.Option, error) {
	scheduler, err := closure.ParseScheduler(opts.Scheduler)
	if err != nil {
		return "", nil, err
	}

	return scheduler, []closure.Option{
		closure.WithLogger(logger),
		closure.WithScheduler(scheduler),
		closure.WithMaxIters(opts.MaxIters),
		closure.WithParallelism(opts.Parallelism),
	}, nil
}
