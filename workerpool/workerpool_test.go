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

package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestParallelForAtomic(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"more_tasks_than_workers", 4, 1000},
		{"more_workers_than_tasks", 16, 3},
		{"single_worker", 1, 50},
		{"single_task", 8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := New(tt.workers)
			counts := make([]atomic.Int32, tt.n)
			pool.ParallelForAtomic(tt.n, func(i int) {
				counts[i].Add(1)
			})
			for i := range counts {
				if got := counts[i].Load(); got != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, got)
				}
			}
		})
	}
}

func TestParallelForAtomicEmpty(t *testing.T) {
	called := false
	New(4).ParallelForAtomic(0, func(int) { called = true })
	if called {
		t.Fatal("fn called for empty iteration space")
	}
}

func TestNewDefaultsWorkers(t *testing.T) {
	if got := New(0).Workers(); got < 1 {
		t.Fatalf("Workers = %d, want >= 1", got)
	}
	if got := New(6).Workers(); got != 6 {
		t.Fatalf("Workers = %d, want 6", got)
	}
}
