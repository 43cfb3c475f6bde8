package worker_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edwloef/chomsky/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTasksCompleteWithoutErrors(t *testing.T) {
	t.Parallel()

	wp := worker.NewWorkerPool(5)
	defer wp.Stop()

	var counter atomic.Int32

	for range 10 {
		require.True(t, wp.Submit(func() error {
			counter.Add(1)
			return nil
		}))
	}

	require.NoError(t, wp.Wait())
	assert.Equal(t, int32(10), counter.Load())
}

func TestConcurrencyIsBounded(t *testing.T) {
	t.Parallel()

	const maxWorkers = 3

	wp := worker.NewWorkerPool(maxWorkers)
	defer wp.Stop()

	var running, peak atomic.Int32

	for range 12 {
		wp.Submit(func() error {
			current := running.Add(1)
			defer running.Add(-1)

			for {
				old := peak.Load()
				if current <= old || peak.CompareAndSwap(old, current) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)

			return nil
		})
	}

	require.NoError(t, wp.Wait())
	assert.LessOrEqual(t, peak.Load(), int32(maxWorkers))
	assert.Equal(t, maxWorkers, wp.MaxWorkers())
}

func TestErrorsAreCollectedAndReset(t *testing.T) {
	t.Parallel()

	wp := worker.NewWorkerPool(2)
	defer wp.Stop()

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	wp.Submit(func() error { return errFirst })
	wp.Submit(func() error { return errSecond })
	wp.Submit(func() error { return nil })

	err := wp.Wait()
	require.Error(t, err)
	require.ErrorIs(t, err, errFirst)
	require.ErrorIs(t, err, errSecond)

	// the next batch starts without the errors of the previous one
	wp.Submit(func() error { return nil })
	require.NoError(t, wp.Wait())
}

func TestPanicIsRecovered(t *testing.T) {
	t.Parallel()

	wp := worker.NewWorkerPool(1)
	defer wp.Stop()

	wp.Submit(func() error { panic("boom") })

	err := wp.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSubmitAfterStop(t *testing.T) {
	t.Parallel()

	wp := worker.NewWorkerPool(0)
	assert.Equal(t, 1, wp.MaxWorkers())

	wp.Stop()

	var ran atomic.Bool

	assert.False(t, wp.Submit(func() error {
		ran.Store(true)
		return nil
	}))
	require.NoError(t, wp.Wait())
	assert.False(t, ran.Load())
}
