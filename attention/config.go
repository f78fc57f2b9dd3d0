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
)

// Config describes one FlashAttention-2 problem: the sequence length N, the
// head dimension D, the row and column tile sizes Br and Bc, the working
// precision, and which composition strategy the second matrix product uses.
//
// Q, K and V are each N x D row-major. Each row tile processes Br query rows
// against Bc-row key/value tiles, so Br bounds the score tile's rows and Bc
// its columns.
type Config struct {
	N, D int

	Br, Bc int

	Precision golden.Precision

	// Baseline selects the P·V composition of the scalar reference kernel.
	// The optimized strategy instead transposes the value tile and computes
	// P·(Vᵀ)ᵀ through the transposed-B gemm.
	Baseline bool
}

// Tr returns the number of row tiles N/Br.
func (c Config) Tr() int { return c.N / c.Br }

// Tc returns the number of column tiles N/Bc.
func (c Config) Tc() int { return c.N / c.Bc }

// Validate checks that the problem dimensions are compatible with the block
// decomposition and that both matrix products each block performs are legal
// for the composed gemm kernel family. It fails fast on the first violated
// rule: tiling errors are reported as *ConfigError, composed gemm errors as
// *ComposedError wrapping the underlying *gemm.ConfigError. Validate touches
// no tensor data and retains no state.
func (c Config) Validate() error {
	if !c.Precision.Valid() {
		return configErrorf("Precision", "unknown precision tag %d", int(c.Precision))
	}
	if c.N <= 0 || c.D <= 0 {
		return configErrorf("N/d", "dimensions must be positive, got N=%d d=%d", c.N, c.D)
	}
	if c.Br <= 0 || c.Bc <= 0 {
		return configErrorf("B_r/B_c", "tile sizes must be positive, got B_r=%d B_c=%d", c.Br, c.Bc)
	}
	if c.N%c.Br != 0 {
		return configErrorf("N", "N=%d is not an integer multiple of B_r=%d", c.N, c.Br)
	}
	if c.N%c.Bc != 0 {
		return configErrorf("N", "N=%d is not an integer multiple of B_c=%d", c.N, c.Bc)
	}
	if c.Br%gemm.CoresPerCluster != 0 {
		return configErrorf("B_r", "B_r=%d is not an integer multiple of the %d cores in a cluster",
			c.Br, gemm.CoresPerCluster)
	}

	// Q*K^t: one B_r x B_c score tile per block, single-tile, non-parallel.
	qk := gemm.Config{
		Precision: c.Precision,
		M:         c.Br, N: c.Bc, K: c.D,
		MTiles: 1, NTiles: 1, KTiles: 1,
		TransA:   false,
		TransB:   true,
		Baseline: c.Baseline,
	}
	if err := qk.Validate(); err != nil {
		return &ComposedError{Product: "QxKt", Err: err}
	}

	// P*V for the baseline strategy, P*(V^t)^t for the optimized one.
	pv := gemm.Config{
		Precision: c.Precision,
		M:         c.Br, N: c.D, K: c.Bc,
		MTiles: 1, NTiles: 1, KTiles: 1,
		TransA:   false,
		TransB:   !c.Baseline,
		Baseline: c.Baseline,
	}
	if err := pv.Validate(); err != nil {
		return &ComposedError{Product: "PxV", Err: err}
	}

	return nil
}

// checkShapes verifies the supplied tensor lengths against the declared
// dimensions. Any mismatch is a caller contract violation.
func (c Config) checkShapes(lenQ, lenK, lenV, lenOut int) error {
	want := c.N * c.D
	if lenQ != want {
		return &ShapeError{Tensor: "Q", Got: lenQ, Want: want}
	}
	if lenK != want {
		return &ShapeError{Tensor: "K", Got: lenK, Want: want}
	}
	if lenV != want {
		return &ShapeError{Tensor: "V", Got: lenV, Want: want}
	}
	if lenOut != want {
		return &ShapeError{Tensor: "O", Got: lenOut, Want: want}
	}
	return nil
}
