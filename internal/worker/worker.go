// Package worker provides a bounded pool of goroutines used to fan out the rule applications of a
// single generation.
//
// Tasks are submitted without blocking; at most maxWorkers of them run at the same time. Wait is the
// barrier between generations: it returns once every submitted task has finished, together with
// the errors (including recovered panics) of the failed tasks.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/edwloef/chomsky/internal/errors"
)

// Task represents a unit of work that can be executed
type Task func() error

// Pool manages concurrent task execution with a configurable number of workers
type Pool struct {
	semaphore  chan struct{}
	errs       *errors.MultiError
	wg         sync.WaitGroup
	maxWorkers int
	errsMu     sync.Mutex
	stopped    atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified maximum number of concurrent workers
func NewWorkerPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	return &Pool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		errs:       &errors.MultiError{},
	}
}

// MaxWorkers returns the maximum number of concurrently running tasks.
func (wp *Pool) MaxWorkers() int {
	return wp.maxWorkers
}

// Submit starts a goroutine running task as soon as a worker slot is free. Tasks submitted after
// Stop are dropped and Submit returns false.
func (wp *Pool) Submit(task Task) bool {
	if wp.stopped.Load() {
		return false
	}

	wp.wg.Add(1)

	go func() {
		defer wp.wg.Done()

		wp.semaphore <- struct{}{}
		defer func() { <-wp.semaphore }()

		wp.appendError(wp.run(task))
	}()

	return true
}

func (wp *Pool) run(task Task) (err error) {
	defer errors.Recover(func(cause error) {
		err = cause
	})

	return task()
}

func (wp *Pool) appendError(err error) {
	if err == nil {
		return
	}

	wp.errsMu.Lock()
	wp.errs = wp.errs.Append(err)
	wp.errsMu.Unlock()
}

// Wait blocks until all submitted tasks are completed and returns the errors collected so far.
// Collected errors are reset, so the pool can be reused for the next batch of tasks.
func (wp *Pool) Wait() error {
	wp.wg.Wait()

	wp.errsMu.Lock()
	defer wp.errsMu.Unlock()

	err := wp.errs.ErrorOrNil()
	wp.errs = &errors.MultiError{}

	return err
}

// Stop prevents further submissions. Tasks already submitted keep running; use Wait to await them.
func (wp *Pool) Stop() {
	wp.stopped.Store(true)
}
