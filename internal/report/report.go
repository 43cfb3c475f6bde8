// Package report collects the outcome of a derivation and renders it as text, JSON or CSV, plus a
// short human readable summary.
package report

import (
	"strings"
	"sync"
	"time"

	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/google/uuid"
)

// Format is an output format of the report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatCSV}

// ParseFormat parses a format name, case-insensitively. The empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}

	for _, format := range Formats {
		if strings.EqualFold(name, string(format)) {
			return format, nil
		}
	}

	return "", errors.New(UnsupportedFormatError{Name: name})
}

// Report captures a single derivation run.
type Report struct {
	Started     time.Time
	Ended       time.Time
	Grammar     string
	Scheduler   string
	Words       []string
	Generations []closure.Generation
	MaxIters    int
	Iterations  int
	RunID       uuid.UUID
	format      Format
	mu          sync.RWMutex
	Fixpoint    bool
	shouldColor bool
	recorded    bool
}

// Option configures a Report.
type Option func(*Report)

// WithFormat sets the format used by Write.
func WithFormat(format Format) Option {
	return func(r *Report) {
		r.format = format
	}
}

// WithShouldColor enables ANSI colors in the summary.
func WithShouldColor(shouldColor bool) Option {
	return func(r *Report) {
		r.shouldColor = shouldColor
	}
}

// WithScheduler records the scheduler name.
func WithScheduler(scheduler string) Option {
	return func(r *Report) {
		r.Scheduler = scheduler
	}
}

// WithMaxIters records the iteration cap; closure.NoLimit means no cap.
func WithMaxIters(maxIters int) Option {
	return func(r *Report) {
		r.MaxIters = maxIters
	}
}

// NewReport starts a report for the grammar at grammarPath.
func NewReport(grammarPath string, opts ...Option) *Report {
	r := &Report{
		RunID:    uuid.New(),
		Started:  time.Now(),
		Grammar:  grammarPath,
		MaxIters: closure.NoLimit,
		format:   FormatText,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ErrAlreadyRecorded is returned when Record is called twice.
var ErrAlreadyRecorded = errors.New("result already recorded")

// Record stores the result of the run and marks the report as ended.
func (r *Report) Record(result *closure.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recorded {
		return ErrAlreadyRecorded
	}

	r.Ended = time.Now()
	r.Iterations = result.Iterations
	r.Fixpoint = result.Fixpoint
	r.Words = result.Words()
	r.Generations = result.Generations
	r.recorded = true

	return nil
}

// Duration returns the wall time between start and end of the run, or 0 if it has not ended.
func (r *Report) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Ended.IsZero() {
		return 0
	}

	return r.Ended.Sub(r.Started)
}

// Format returns the format used by Write.
func (r *Report) Format() Format {
	return r.format
}
