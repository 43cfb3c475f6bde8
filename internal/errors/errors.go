// Package errors contains helper functions for wrapping errors with stack traces, collecting multiple errors,
// and recovering from panics raised inside worker goroutines.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/urfave/cli/v2"
)

// DefaultExitCode is the exit code used for errors that don't carry one.
const DefaultExitCode = 1

// New creates a new error with a stack trace. If val is already an error it is wrapped,
// any other value is formatted with `%v`. A nil value returns nil.
func New(val any) error {
	if val == nil {
		return nil
	}

	if err, ok := val.(error); ok && ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(val, 1)
}

// Errorf creates a new error from the format specifier and wraps it in an Error type that contains the stack trace.
func Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return goerrors.Wrap(err, 1)
}

// ErrorWithExitCode is used to tell the entrypoint which exit code to use.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}

// ExitCode returns the exit code carried by err, or DefaultExitCode when nothing in the chain carries one.
func ExitCode(err error) int {
	var withCode ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.ExitCode
	}

	var withCodePtr *ErrorWithExitCode
	if errors.As(err, &withCodePtr) && withCodePtr != nil {
		return withCodePtr.ExitCode
	}

	return DefaultExitCode
}

// WithPanicHandling wraps a cli action so that a panic is returned as an error with a stack trace
// instead of crashing the process.
func WithPanicHandling(action cli.ActionFunc) cli.ActionFunc {
	return func(cliCtx *cli.Context) (err error) {
		defer Recover(func(cause error) {
			err = cause
		})

		return action(cliCtx)
	}
}
