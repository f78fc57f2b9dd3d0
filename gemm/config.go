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

package gemm

import "github.com/ajroetker/go-flashgolden/golden"

// CoresPerCluster is the number of compute cores in one cluster of the target.
// Work along M is distributed row-wise across these cores, so the per-tile M
// extent must divide evenly among them.
const CoresPerCluster = 8

// Config describes one C = op(A) * op(B) problem for the tiled gemm kernel
// family: the working precision, the M/N/K extents, how many tiles each
// dimension is split into, the transpose flags, which cluster parallelization
// is requested, and whether the baseline (scalar) or the optimized (packed
// SIMD) kernel runs.
type Config struct {
	Precision golden.Precision

	M, N, K int

	MTiles, NTiles, KTiles int

	// TransA and TransB request transposed operand layouts. A transposed A is
	// not supported by any kernel in the family; the optimized kernels
	// require a transposed B so the reduction walks both operands row-major.
	TransA bool
	TransB bool

	ParallelizeM bool
	ParallelizeK bool

	// Baseline selects the scalar reference kernel instead of the packed
	// SIMD one.
	Baseline bool
}

// Validate checks the configuration against the legality rules of the kernel
// family. It returns nil if a kernel exists for this problem, or a
// *ConfigError naming the first violated rule. No state is retained on
// failure.
func (c Config) Validate() error {
	if !c.Precision.Valid() {
		return configErrorf("Precision", "unknown precision tag %d", int(c.Precision))
	}
	if c.M <= 0 || c.N <= 0 || c.K <= 0 {
		return configErrorf("M/N/K", "dimensions must be positive, got M=%d N=%d K=%d", c.M, c.N, c.K)
	}
	if c.MTiles <= 0 || c.NTiles <= 0 || c.KTiles <= 0 {
		return configErrorf("MTiles/NTiles/KTiles",
			"tile counts must be positive, got m_tiles=%d n_tiles=%d k_tiles=%d", c.MTiles, c.NTiles, c.KTiles)
	}
	if c.M%c.MTiles != 0 {
		return configErrorf("M", "M=%d is not an integer multiple of m_tiles=%d", c.M, c.MTiles)
	}
	if c.N%c.NTiles != 0 {
		return configErrorf("N", "N=%d is not an integer multiple of n_tiles=%d", c.N, c.NTiles)
	}
	if c.K%c.KTiles != 0 {
		return configErrorf("K", "K=%d is not an integer multiple of k_tiles=%d", c.K, c.KTiles)
	}
	fracM := c.M / c.MTiles
	if fracM%CoresPerCluster != 0 {
		return configErrorf("M", "per-tile M=%d is not an integer multiple of the %d cores in a cluster",
			fracM, CoresPerCluster)
	}
	if c.ParallelizeM && c.ParallelizeK {
		return configErrorf("ParallelizeM/ParallelizeK", "cannot parallelize M and K simultaneously")
	}
	if c.TransA {
		return configErrorf("TransA", "transposed A is not supported")
	}
	if c.Baseline {
		if c.Precision == golden.FP8 {
			return configErrorf("Baseline", "no baseline kernel for FP8")
		}
		return nil
	}
	// Optimized kernels pack Lanes() elements per FPU op along the reduction
	// dimension and stream both operands row-major.
	if !c.TransB {
		return configErrorf("TransB", "optimized %s kernel requires transposed B", c.Precision)
	}
	if lanes := c.Precision.Lanes(); (c.K/c.KTiles)%lanes != 0 {
		return configErrorf("K", "per-tile K=%d is not an integer multiple of the %s SIMD width %d",
			c.K/c.KTiles, c.Precision, lanes)
	}
	return nil
}
