// Copyright 2025 go-flashgolden Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool provides a minimal fixed-size worker pool for
// parallelizing independent index-addressed tasks.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Executor runs fn for every index of an iteration space. Implementations
// must invoke fn exactly once per index and return only after all
// invocations have completed. fn must be safe to call from multiple
// goroutines with distinct indices.
type Executor interface {
	ParallelForAtomic(n int, fn func(i int))
}

// Pool is a fixed-size Executor. The zero value is not usable; create pools
// with New.
type Pool struct {
	workers int
}

// New returns a Pool with the given number of workers. A non-positive count
// selects GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int { return p.workers }

// ParallelForAtomic invokes fn for every index in [0, n), handing indices to
// workers through an atomic counter. Indices are claimed in order but may
// complete in any order.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.workers, n)
	if workers <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		})
	}
	wg.Wait()
}
