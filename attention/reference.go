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

package attention

import (
	"math"

	"github.com/ajroetker/go-flashgolden/gemm"
	"github.com/ajroetker/go-flashgolden/golden"
)

// Reference computes single-head dot-product attention directly, with the
// full N x N score matrix materialized:
//
//	output = softmax(Q·Kᵀ)·V, with no 1/sqrt(d) scaling
//
//   - q:      [n, d] (queries, row-major)
//   - k:      [n, d] (keys, row-major)
//   - v:      [n, d] (values, row-major)
//   - output: [n, d] (result)
//
// This is the equivalence target for the tiled model: for any legal tiling,
// FlashAttention2 must match it within floating-point tolerance.
func Reference[T golden.Floats](q, k, v, output []T, n, d int) {
	if n == 0 || d == 0 {
		return
	}

	kt := make([]T, d*n)
	gemm.Transpose(k, kt, n, d)

	scores := make([]T, n*n)
	gemm.ParallelMatMul(q, kt, scores, n, n, d)

	for i := range n {
		softmaxRow(scores[i*n : (i+1)*n])
	}

	gemm.ParallelMatMul(scores, v, output, n, d, n)
}

// softmaxRow applies softmax in-place. The max subtraction keeps the
// exponentials from overflowing.
func softmaxRow[T golden.Floats](row []T) {
	if len(row) == 0 {
		return
	}

	maxVal := row[0]
	for _, x := range row[1:] {
		if x > maxVal {
			maxVal = x
		}
	}

	var expSum T
	for i := range row {
		row[i] = T(math.Exp(float64(row[i] - maxVal)))
		expSum += row[i]
	}

	invSum := 1 / expSum
	for i := range row {
		row[i] = row[i] * invSum
	}
}
