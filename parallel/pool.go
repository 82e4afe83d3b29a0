// Package parallel runs closures on a small fixed pool of goroutines and
// splits index ranges into disjoint spans for data-parallel pixel work.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted closures on its workers. With a single worker, Do runs
// the closure inline and Wait is a no-op.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start launches a pool. numWorkers < 1 means GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for {
					f, ok := <-workChan
					if !ok {
						return
					}
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// ForSpans splits [0, n) into one span per worker, runs fn on each span
// concurrently and waits for all of them. The pool stays open, so it can be
// called once per frame. It must not be called from one of p's own workers.
func (p *Pool) ForSpans(n int, fn func(lo, hi int)) {
	var wg sync.WaitGroup
	for lo, hi := range Spans(n, p.workers) {
		wg.Add(1)
		p.Do(func() {
			defer wg.Done()
			fn(lo, hi)
		})
	}
	wg.Wait()
}

// ForSpans is like Pool.ForSpans on a pool of numWorkers started for the
// call and closed afterwards.
func ForSpans(numWorkers, n int, fn func(lo, hi int)) {
	pool := Start(numWorkers)
	defer pool.Wait(true)
	pool.ForSpans(n, fn)
}
