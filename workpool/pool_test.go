// Package workpool_test contains tests for the workpool package.
package workpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/workpool"
)

func TestSubmitReturnsResult(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 2, QueueCapacity: 4})
	defer pool.Close()

	future, err := workpool.Submit(pool, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)

	result, err := future.Wait()

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestSubmitPropagatesError(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 1, QueueCapacity: 1})
	defer pool.Close()

	taskErr := errors.New("boom")

	future, err := workpool.Submit(pool, func() (string, error) {
		return "", taskErr
	})
	require.NoError(t, err)

	result, err := future.Wait()

	require.ErrorIs(t, err, taskErr)
	assert.Empty(t, result)
}

func TestSubmitRecoversPanic(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 1, QueueCapacity: 1})
	defer pool.Close()

	future, err := workpool.Submit(pool, func() (int, error) {
		panic("task exploded")
	})
	require.NoError(t, err)

	_, err = future.Wait()

	require.Error(t, err)
	var e errx.ErrorX
	require.ErrorAs(t, err, &e)
	assert.Equal(t, workpool.CodeTaskPanic, e.Code())
	assert.Contains(t, e.Details()["panic_values"], "task exploded")
}

func TestWaitIsIdempotent(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 1, QueueCapacity: 1})
	defer pool.Close()

	future, err := workpool.Submit(pool, func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)

	first, err1 := future.Wait()
	second, err2 := future.Wait()

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestSubmitToClosedPool(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 1, QueueCapacity: 1})
	pool.Close()

	_, err := workpool.Submit(pool, func() (int, error) {
		return 0, nil
	})

	require.Error(t, err)
	var e errx.ErrorX
	require.ErrorAs(t, err, &e)
	assert.Equal(t, workpool.CodePoolClosed, e.Code())
}

func TestCloseWaitsForQueuedTasks(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 2, QueueCapacity: 16})

	var completed atomic.Int64

	const n = 10
	futures := make([]*workpool.Future[int], 0, n)
	for i := range n {
		future, err := workpool.Submit(pool, func() (int, error) {
			completed.Add(1)
			return i, nil
		})
		require.NoError(t, err)
		futures = append(futures, future)
	}

	pool.Close()

	assert.Equal(t, int64(n), completed.Load())
	for i, future := range futures {
		result, err := future.Wait()
		require.NoError(t, err)
		assert.Equal(t, i, result)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 1, QueueCapacity: 1})

	pool.Close()
	assert.NotPanics(t, pool.Close)
}

func TestConcurrentSubmissions(t *testing.T) {
	pool := workpool.New(workpool.Config{}) // defaults: 5 workers, queue 500
	defer pool.Close()

	const n = 64
	results := make([]int, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			future, err := workpool.Submit(pool, func() (int, error) {
				return i * 2, nil
			})
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = future.Wait()
		})
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, i*2, results[i])
	}
}
