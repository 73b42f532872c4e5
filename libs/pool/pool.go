// Package pool provides a fixed-size pool of reusable worker goroutines with
// explicit task handles. It exists as a second, independently configured
// scheduler next to per-call goroutine spawning, so that the two scheduling
// approaches can be benchmarked against each other.
package pool

import (
	"errors"
	"sync"
)

// ErrPoolClosed is returned by handles for tasks submitted after Close.
var ErrPoolClosed = errors.New("pool is closed")

// Task is a unit of work executed by a pool worker.
type Task func() error

// Handle tracks one submitted task until it settles.
type Handle struct {
	done chan struct{}
	err  error
}

// Wait blocks until the task has run and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

func settled(err error) *Handle {
	h := &Handle{done: make(chan struct{}), err: err}
	close(h.done)
	return h
}

type submission struct {
	run    Task
	handle *Handle
}

// Pool runs submitted tasks on a fixed set of worker goroutines. Workers are
// started once at construction; a task never spawns a goroutine of its own.
type Pool struct {
	tasks chan submission
	wg    sync.WaitGroup

	mu       sync.Mutex
	inflight sync.WaitGroup
	closed   bool
}

// New starts a pool with the given number of workers. A size below one is
// treated as one.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{tasks: make(chan submission)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for s := range p.tasks {
		s.handle.err = s.run()
		close(s.handle.done)
	}
}

// Submit schedules task on the pool and returns a handle for it. The pool
// never drops a submitted task; Submit blocks until a worker accepts it.
// After Close the returned handle settles immediately with ErrPoolClosed.
func (p *Pool) Submit(task Task) *Handle {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return settled(ErrPoolClosed)
	}
	p.inflight.Add(1)
	p.mu.Unlock()

	h := &Handle{done: make(chan struct{})}
	p.tasks <- submission{run: task, handle: h}
	p.inflight.Done()
	return h
}

// Join waits for every handle to settle and returns the first non-nil error
// encountered, if any. All handles are waited on even after an error, so the
// "everything has finished" barrier holds regardless of failures.
func (p *Pool) Join(handles ...*Handle) error {
	var first error
	for _, h := range handles {
		if err := h.Wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close stops accepting new tasks and waits for the workers to drain. It is
// safe to call Close more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	// Let any Submit that passed the closed check finish its send before the
	// task channel goes away.
	p.inflight.Wait()
	close(p.tasks)
	p.wg.Wait()
}
