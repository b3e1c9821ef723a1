// Copyright 2024 aphage
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package executor provides reference executors for the promise package:
// inline execution, one goroutine per unit of work, and a fixed worker pool.
//
// Any other value with an Execute(func()) method works just as well; these
// are calibration implementations, not the only options.
package executor

import "sync"

// Sync runs each unit of work inline, on the goroutine that submits it.
//
// Under Sync, a whole promise chain settles before the construction call
// returns, which makes it the single-threaded cooperative mode.
type Sync struct{}

func (Sync) Execute(fn func()) { fn() }

// Goroutine runs each unit of work on its own detached goroutine.
type Goroutine struct{}

func (Goroutine) Execute(fn func()) { go fn() }

// Pool runs work on a fixed set of worker goroutines, in submission order,
// over an unbounded queue.
//
// Submission never blocks. That matters for promise chains: settlement
// dispatches continuations from inside whatever goroutine ran the settling
// work, so a blocking submit from a busy worker would deadlock a
// single-worker pool.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   sync.WaitGroup
}

// NewPool starts a Pool with the given number of worker goroutines.
// It panics if workers is not positive.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		panic("executor: the pool size must be positive")
	}

	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.done.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Execute queues fn for one of the workers. It never blocks.
// It panics if the pool has been closed.
func (p *Pool) Execute(fn func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("executor: execute on a closed pool")
	}
	p.queue = append(p.queue, fn)
	p.mu.Unlock()
	p.cond.Signal()
}

// Close stops accepting work, waits for the queue to drain and for all
// workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.done.Wait()
}

func (p *Pool) worker() {
	defer p.done.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// closed and drained
			p.mu.Unlock()
			return
		}
		fn := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		fn()
	}
}
