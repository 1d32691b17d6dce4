// Package workpool provides a bounded in-process task executor.
//
// A Pool runs submitted units of work on a fixed set of worker goroutines
// backed by a bounded queue. Submit returns a Future that the caller blocks
// on to obtain the result, so synchronous call sites can offload work to a
// separately sized pool without changing their contract.
package workpool

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/code19m/errx"
)

// Error codes for pool operations.
const (
	// CodePoolClosed is returned when submitting to a closed pool.
	CodePoolClosed = "WORKPOOL_CLOSED"

	// CodeTaskPanic is returned when a submitted task panics.
	CodeTaskPanic = "WORKPOOL_TASK_PANIC"
)

// Pool is a bounded worker pool. Create one with New and release it with Close.
type Pool struct {
	tasks chan func()

	mu     sync.RWMutex
	closed bool

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a pool and starts its workers.
func New(cfg Config) *Pool {
	cfg = cfg.withDefaults()

	p := &Pool{
		tasks: make(chan func(), cfg.QueueCapacity),
	}

	for range cfg.Workers {
		p.wg.Go(func() {
			for task := range p.tasks {
				task()
			}
		})
	}

	return p
}

// Close stops accepting new tasks, waits for queued and running tasks to
// finish, and releases the workers. It is safe to call multiple times.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()

		p.wg.Wait()
	})
}

// Future is the completion handle of a submitted task.
type Future[R any] struct {
	done   chan struct{}
	result R
	err    error
}

// Wait blocks until the task completes and returns its result or error.
// There is no timeout: the wait is indefinite. Wait may be called multiple
// times; every call returns the same outcome.
func (f *Future[R]) Wait() (R, error) {
	<-f.done
	return f.result, f.err
}

// Submit enqueues fn for execution on the pool and returns its Future.
//
// Submit blocks while the queue is full. A panic inside fn is recovered and
// surfaced as an error from Wait. Submitting to a closed pool fails.
func Submit[R any](p *Pool, fn func() (R, error)) (*Future[R], error) {
	f := &Future[R]{done: make(chan struct{})}

	task := func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				stackTrace := make([]byte, 4096) // 4KB
				stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]
				f.err = errx.New("panic recovered in workpool task",
					errx.WithCode(CodeTaskPanic),
					errx.WithDetails(errx.D{
						"stack_trace":  string(stackTrace),
						"panic_values": fmt.Sprintf("%v", r),
					}))
			}
		}()

		f.result, f.err = fn()
	}

	// The read lock is held across the send so Close cannot close the
	// channel while a submission is in flight.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, errx.New("workpool is closed", errx.WithCode(CodePoolClosed))
	}

	p.tasks <- task
	return f, nil
}
