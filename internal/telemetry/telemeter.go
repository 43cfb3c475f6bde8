// Package telemetry collects traces and metrics of the derivation. Both signals are off unless an
// exporter is configured, in which case every generation is wrapped in a span and a timer.
package telemetry

import (
	"context"
	"io"

	"github.com/edwloef/chomsky/internal/errors"
)

// Telemeter bundles the tracer and the meter. A zero Telemeter is valid and collects nothing.
type Telemeter struct {
	*Tracer
	*Meter
}

// NewTelemeter initializes the telemetry collector.
func NewTelemeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Telemeter, error) {
	tracer, err := NewTracer(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	meter, err := NewMeter(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	return &Telemeter{
		Tracer: tracer,
		Meter:  meter,
	}, nil
}

// Shutdown flushes and stops both providers.
func (tlm *Telemeter) Shutdown(ctx context.Context) error {
	errs := &errors.MultiError{}

	if tlm.Tracer != nil && tlm.Tracer.provider != nil {
		errs = errs.Append(tlm.Tracer.provider.Shutdown(ctx))
		tlm.Tracer.provider = nil
	}

	if tlm.Meter != nil && tlm.Meter.provider != nil {
		errs = errs.Append(tlm.Meter.provider.Shutdown(ctx))
		tlm.Meter.provider = nil
	}

	return errs.ErrorOrNil()
}

// Enabled reports whether any signal is exported.
func (tlm *Telemeter) Enabled() bool {
	return (tlm.Tracer != nil && tlm.Tracer.provider != nil) || (tlm.Meter != nil && tlm.Meter.provider != nil)
}

// Collect runs fn inside a span and records its duration.
func (tlm *Telemeter) Collect(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	return tlm.Trace(ctx, name, attrs, func(ctx context.Context) error {
		return tlm.Time(ctx, name, attrs, fn)
	})
}
