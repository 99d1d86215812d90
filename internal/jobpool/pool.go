// Package jobpool is the leaf of the engine: a fixed set of worker
// goroutines draining a FIFO queue of unit-of-work closures, with a
// pending-counter barrier that lets the caller wait for a batch to drain.
package jobpool

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Job is a unit of work submitted to the pool.
type Job func()

// Pool is a fixed-size worker pool over a mutex-protected FIFO queue, with
// an atomic-under-mutex pending counter and a pair of condition variables:
// one wakes idle workers when work arrives, the other wakes wait() callers
// when the queue drains to zero.
type Pool struct {
	mu        sync.Mutex
	workAvail *sync.Cond
	drained   *sync.Cond

	queue    []Job
	pending  int
	stopping bool

	cancel context.CancelFunc
	group  *errgroup.Group
}

// New constructs a pool with n workers. n <= 0 falls back to the host's
// hardware parallelism, floored at 1.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < 1 {
		n = 1
	}

	p := &Pool{}
	p.workAvail = sync.NewCond(&p.mu)
	p.drained = sync.NewCond(&p.mu)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	group, _ := errgroup.WithContext(ctx)
	p.group = group

	for i := 0; i < n; i++ {
		group.Go(func() error {
			p.workerLoop()
			return nil
		})
	}
	return p
}

// Submit enqueues job and increments the pending counter. Submitting from
// within a running job is permitted (the job's own goroutine is a worker,
// and Submit never blocks on worker availability — only on the queue
// mutex).
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	p.queue = append(p.queue, job)
	p.pending++
	p.mu.Unlock()
	p.workAvail.Signal()
}

// Wait blocks until every job submitted before this call (and transitively,
// any job submitted by those jobs) has completed. It is a happens-before
// fence: everything a drained job did is visible to the caller once Wait
// returns. Calling Wait from inside a worker is not supported and will
// deadlock, matching the no-reentrant-wait contract.
func (p *Pool) Wait() {
	p.mu.Lock()
	for p.pending > 0 {
		p.drained.Wait()
	}
	p.mu.Unlock()
}

// Stop raises the stop flag, wakes every idle worker so it can observe the
// flag and exit, and joins all workers before returning.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.stopping = true
	p.mu.Unlock()
	p.workAvail.Broadcast()
	p.cancel()
	_ = p.group.Wait()
}

func (p *Pool) workerLoop() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopping {
			p.workAvail.Wait()
		}
		if len(p.queue) == 0 && p.stopping {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		job()

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.drained.Broadcast()
		}
		p.mu.Unlock()
	}
}
