package closure

import (
	"runtime"
	"strings"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/pkg/log"
)

// NoLimit disables the iteration cap: the derivation runs until the frontier is empty.
const NoLimit = -1

// Scheduler selects how the rule applications of a generation are executed.
type Scheduler string

const (
	// SequentialScheduler applies rules word by word on the calling goroutine.
	SequentialScheduler Scheduler = "sequential"
	// ParallelScheduler fans out one task per rule over a worker pool.
	ParallelScheduler Scheduler = "parallel"
)

// Schedulers lists the supported schedulers.
var Schedulers = []Scheduler{SequentialScheduler, ParallelScheduler}

// ParseScheduler parses a scheduler name, case-insensitively.
func ParseScheduler(name string) (Scheduler, error) {
	for _, scheduler := range Schedulers {
		if strings.EqualFold(name, string(scheduler)) {
			return scheduler, nil
		}
	}

	return "", errors.New(UnknownSchedulerError{Name: name})
}

func (scheduler Scheduler) String() string {
	return string(scheduler)
}

// Options configure Run.
type Options struct {
	Logger      log.Logger
	Scheduler   Scheduler
	MaxIters    int
	Parallelism int
}

// Option is a functional option of Run.
type Option func(*Options)

// WithLogger sets the logger receiving per-generation statistics.
func WithLogger(logger log.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMaxIters caps the number of generations. A negative value means no cap.
func WithMaxIters(maxIters int) Option {
	return func(opts *Options) {
		opts.MaxIters = maxIters
	}
}

// WithScheduler selects the scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return func(opts *Options) {
		opts.Scheduler = scheduler
	}
}

// WithParallelism sets the number of workers of the parallel scheduler.
func WithParallelism(parallelism int) Option {
	return func(opts *Options) {
		opts.Parallelism = parallelism
	}
}

func newOptions(opts ...Option) *Options {
	options := &Options{
		Logger:      log.Default(),
		Scheduler:   SequentialScheduler,
		MaxIters:    NoLimit,
		Parallelism: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.MaxIters < 0 {
		options.MaxIters = NoLimit
	}

	if options.Parallelism <= 0 {
		options.Parallelism = 1
	}

	return options
}

func (opts *Options) limitReached(iterations int) bool {
	return opts.MaxIters != NoLimit && iterations >= opts.MaxIters
}
