package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type stackTracer interface {
	ErrorStack() string
}

// ErrorStack returns the stack traces of every error in err's tree, if any.
func ErrorStack(err error) string {
	var stacks []string

	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if traced, ok := err.(stackTracer); ok {
				stacks = append(stacks, traced.ErrorStack())
			}
		}
	}

	return strings.Join(stacks, "\n")
}

// ContainsStackTrace returns true if the given error already carries a stack trace.
// Used to avoid creating a nested stack trace.
func ContainsStackTrace(err error) bool {
	for _, err := range UnwrapMultiErrors(err) {
		for ; err != nil; err = errors.Unwrap(err) {
			if _, ok := err.(stackTracer); ok {
				return true
			}
		}
	}

	return false
}

// IsContextCanceled returns true if err was caused by `context.Canceled`.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Recover tries to recover from panics, and if it succeeds, calls onPanic with an error that
// explains the cause of the panic. This function should only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec) //nolint:err113
		}

		onPanic(New(err))
	}
}

// UnwrapMultiErrors flattens all nested multi-errors into a slice.
func UnwrapMultiErrors(err error) []error {
	if err == nil {
		return nil
	}

	var (
		queue = []error{err}
		flat  []error
	)

	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]

		multi := findMulti(head)
		if multi == nil {
			flat = append(flat, head)
			continue
		}

		queue = append(queue, multi.Unwrap()...)
	}

	return flat
}

func findMulti(err error) interface{ Unwrap() []error } {
	for ; err != nil; err = errors.Unwrap(err) {
		if multi, ok := err.(interface{ Unwrap() []error }); ok {
			return multi
		}
	}

	return nil
}
