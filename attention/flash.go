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
	"github.com/ajroetker/go-flashgolden/gemm"
	"github.com/ajroetker/go-flashgolden/golden"
	"github.com/ajroetker/go-flashgolden/workerpool"
)

// FlashAttention2 computes the tiled attention golden output:
//
//	output = softmax(Q·Kᵀ)·V, with no 1/sqrt(d) scaling
//
//   - q:      [N, d] (queries, row-major)
//   - k:      [N, d] (keys, row-major)
//   - v:      [N, d] (values, row-major)
//   - output: [N, d] (result, row-major)
//
// The computation never materializes the full N x N score matrix: each of
// the N/Br row tiles folds the N/Bc column tiles in order through a RowState
// accumulator and writes its finalized Br x d block into output.
//
// The configuration is validated and the tensor shapes are checked before
// any arithmetic; on error the output is untouched. The element type must
// match cfg.Precision (float64 for FP64, float32 for FP32; see
// FlashAttention2F16 for FP16).
func FlashAttention2[T golden.Floats](cfg Config, q, k, v, output []T) error {
	return FlashAttention2Parallel(nil, cfg, q, k, v, output)
}

// FlashAttention2Parallel is FlashAttention2 with the row tiles distributed
// over pool. Row tiles share no state — each owns its m/l/O triple and reads
// only its slice of Q plus the full K and V — so no synchronization beyond
// the final implicit gather is needed, and because every tile writes the
// output block its index addresses, the result is bit-identical to the
// sequential computation. A nil pool runs sequentially.
func FlashAttention2Parallel[T golden.Floats](pool workerpool.Executor, cfg Config, q, k, v, output []T) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if got, want := golden.PrecisionOf[T](), cfg.Precision; got != want {
		return configErrorf("Precision", "working precision %s does not match element type precision %s",
			want, got)
	}
	if err := cfg.checkShapes(len(q), len(k), len(v), len(output)); err != nil {
		return err
	}

	tr := cfg.Tr()
	if pool == nil {
		for i := range tr {
			flashRowTile(cfg, q, k, v, output, i)
		}
		return nil
	}
	pool.ParallelForAtomic(tr, func(i int) {
		flashRowTile(cfg, q, k, v, output, i)
	})
	return nil
}

// flashRowTile computes row tile i: Br query rows against every column tile
// in index order. All scratch is tile-local, so concurrent calls for
// distinct i never share mutable state.
func flashRowTile[T golden.Floats](cfg Config, q, k, v, output []T, i int) {
	br, bc, d := cfg.Br, cfg.Bc, cfg.D
	tc := cfg.Tc()

	qi := q[i*br*d : (i+1)*br*d]
	st := NewRowState[T](br, d, cfg.Baseline)
	s := make([]T, br*bc)

	for j := range tc {
		kj := k[j*bc*d : (j+1)*bc*d]
		vj := v[j*bc*d : (j+1)*bc*d]

		// S_ij = Q_i · K_jᵀ. K_j is row-major [Bc, d], which is exactly the
		// transposed-B operand layout.
		gemm.MatMulTB(qi, kj, s, br, bc, d)

		st.Update(s, vj, bc)
	}

	st.Normalize(output[i*br*d : (i+1)*br*d])
}
