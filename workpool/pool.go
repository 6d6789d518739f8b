// Package workpool provides a bounded worker pool for CPU-bound work.
//
// Expensive cryptographic operations (password hashing, token signing) run
// on a fixed set of worker goroutines sized to the machine's core count, so
// they never stall the goroutines serving network I/O. Each submission hands
// its result back on a dedicated one-shot channel; a caller that abandons a
// submission (context cancellation) simply stops listening and the worker
// completes the task without blocking.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrClosed is returned for submissions made after the pool shut down.
var ErrClosed = errors.New("workpool: pool is closed")

// Pool runs submitted functions on a fixed number of worker goroutines.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	size   int
}

// New creates a pool with the given number of workers. A size <= 0 defaults
// to runtime.NumCPU(); the pool is CPU-bound, so more workers than cores
// only adds scheduling pressure.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		tasks: make(chan func(), size*16),
		size:  size,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Close stops accepting submissions, lets queued tasks finish, and waits for
// the workers to exit. Safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// enqueue hands a task to the workers. Returns false if the pool is closed.
func (p *Pool) enqueue(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Result carries the outcome of a submitted task.
type Result[T any] struct {
	Value T
	Err   error
}

// Submit schedules fn on the pool and returns a one-shot channel that will
// receive exactly one Result. The channel is buffered, so the worker never
// blocks on a caller that went away. A panic inside fn is contained and
// delivered as an error result.
func Submit[T any](p *Pool, fn func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	task := func() {
		defer func() {
			if r := recover(); r != nil {
				out <- Result[T]{Err: fmt.Errorf("workpool: task panic: %v", r)}
			}
		}()
		v, err := fn()
		out <- Result[T]{Value: v, Err: err}
	}

	if !p.enqueue(task) {
		out <- Result[T]{Err: ErrClosed}
	}
	return out
}

// Do schedules fn on the pool and waits for its result or for ctx to end.
// On cancellation the in-flight task is abandoned, not interrupted; hashing
// and signing are pure, so no partial side effects occur.
func Do[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	out := Submit(p, fn)
	select {
	case res := <-out:
		return res.Value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
