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

// Package gemm provides the composed matrix-multiply primitive of the golden
// models: scalar row-major kernels, a transposed-B variant matching the
// optimized hardware data path, and the configuration validator that mirrors
// the legality rules of the tiled gemm kernel family under verification.
package gemm

import "github.com/ajroetker/go-flashgolden/golden"

// MatMul computes C = A * B where:
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// C is fully overwritten.
func MatMul[T golden.Floats](a, b, c []T, m, n, k int) {
	if len(a) < m*k {
		panic("gemm: A slice too short")
	}
	if len(b) < k*n {
		panic("gemm: B slice too short")
	}
	if len(c) < m*n {
		panic("gemm: C slice too short")
	}

	// Clear output
	for i := range c[:m*n] {
		c[i] = 0
	}

	// Standard triple-loop matrix multiply
	for i := range m {
		for p := range k {
			aip := a[i*k+p]
			for j := range n {
				c[i*n+j] += aip * b[p*n+j]
			}
		}
	}
}

// MatMulTB computes C = A * B^T where:
//   - A is M x K (row-major)
//   - B is N x K (row-major, i.e. B^T stored by rows)
//   - C is M x N (row-major)
//
// With both operands walked row-major the inner loop is a contiguous dot
// product, which is the access pattern the optimized transposed-B kernels
// use.
func MatMulTB[T golden.Floats](a, bt, c []T, m, n, k int) {
	if len(a) < m*k {
		panic("gemm: A slice too short")
	}
	if len(bt) < n*k {
		panic("gemm: B slice too short")
	}
	if len(c) < m*n {
		panic("gemm: C slice too short")
	}

	for i := range m {
		aRow := a[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]
		for j := range n {
			cRow[j] = Dot(aRow, bt[j*k:(j+1)*k])
		}
	}
}

// Transpose writes the transpose of src (rows x cols, row-major) into dst
// (cols x rows, row-major). src and dst must not alias.
func Transpose[T golden.Floats](src, dst []T, rows, cols int) {
	if len(src) < rows*cols {
		panic("gemm: transpose src slice too short")
	}
	if len(dst) < rows*cols {
		panic("gemm: transpose dst slice too short")
	}

	for i := range rows {
		row := src[i*cols : (i+1)*cols]
		for j, v := range row {
			dst[j*rows+i] = v
		}
	}
}
