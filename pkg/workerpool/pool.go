// Package workerpool provides a bounded goroutine pool with backpressure.
//
// The event dispatcher runs catalog change handlers through a Pool so a burst
// of product writes cannot fan out into unbounded goroutine creation. When
// every worker is busy and the queue is full, Submit fails fast with
// ErrPoolFull and the caller decides whether to drop, retry, or block:
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(task); errors.Is(err, workerpool.ErrPoolFull) {
//	    // backpressure: drop or fall back to SubmitWait
//	}
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New creates a Pool with the given number of workers and a task queue of
// twice that size, so short bursts are absorbed without blocking.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return NewWithQueue(workers, workers*2)
}

// NewWithQueue creates a Pool with an explicit task queue capacity.
func NewWithQueue(workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}

	p := &Pool{
		tasks:   make(chan func(), queue),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task for execution without blocking.
// Returns ErrPoolFull when the queue is at capacity, ErrPoolClosed after
// Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a queue slot is available or the pool is closed.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting new tasks and waits for in-flight tasks to finish.
// Safe to call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		runRecovered(task)
	}
}

// runRecovered executes task, recovering panics so one bad handler cannot
// kill a worker goroutine.
func runRecovered(task func()) {
	defer func() { _ = recover() }()
	task()
}
