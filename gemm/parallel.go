// Copyright 2025 go-flashgolden Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"runtime"
	"sync"

	"github.com/ajroetker/go-flashgolden/golden"
)

// Parallel tuning parameters
const (
	// minParallelOps is the minimum number of operations before parallelizing
	minParallelOps = 64 * 64 * 64

	// rowsPerStrip defines how many rows each worker processes at a time.
	rowsPerStrip = 64
)

// ParallelMatMul computes C = A * B using parallel execution.
// Divides work into horizontal strips and uses MatMul for each strip, so the
// per-element arithmetic is identical to the sequential kernel and the result
// is bit-identical regardless of worker count.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
func ParallelMatMul[T golden.Floats](a, b, c []T, m, n, k int) {
	// For small matrices, use single-threaded version
	if m*n*k < minParallelOps {
		MatMul(a, b, c, m, n, k)
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)

	numStrips := (m + rowsPerStrip - 1) / rowsPerStrip

	// Work queue of row strips
	work := make(chan int, numStrips)
	for strip := range numStrips {
		work <- strip
	}
	close(work)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for strip := range work {
				rowStart := strip * rowsPerStrip
				rowEnd := min(rowStart+rowsPerStrip, m)
				stripM := rowEnd - rowStart

				aStrip := a[rowStart*k : rowEnd*k]
				cStrip := c[rowStart*n : rowEnd*n]

				MatMul(aStrip, b, cStrip, stripM, n, k)
			}
		})
	}
	wg.Wait()
}
