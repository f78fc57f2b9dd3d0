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

	"github.com/x448/float16"

	"github.com/ajroetker/go-flashgolden/golden"
)

// FP16 working precision. Go has no half-precision arithmetic, so these
// kernels compute each operation in float32 and round every materialized
// tensor element to IEEE half. Dot products accumulate in float32 and round
// once at the store, wide-accumulator style.

// r16 rounds x to the nearest IEEE half and back.
func r16(x float32) float32 {
	return float16.Fromfloat32(x).Float32()
}

// dotF16 returns the inner product of x and a stride-addressed column of y,
// accumulated in float32 and rounded to half at the end.
func dotF16(x []float32, y []float32, yOff, yStride, n int) float32 {
	var sum float32
	for p := range n {
		sum += x[p] * y[yOff+p*yStride]
	}
	return r16(sum)
}

// FlashAttention2F16 computes the tiled attention golden output at FP16
// working precision. Tensors are IEEE half, [N, d] row-major; cfg.Precision
// must be FP16. The traversal and rescaling rules are identical to
// FlashAttention2.
func FlashAttention2F16(cfg Config, q, k, v, output []float16.Float16) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Precision != golden.FP16 {
		return configErrorf("Precision", "element type float16 requires FP16, got %s", cfg.Precision)
	}
	if err := cfg.checkShapes(len(q), len(k), len(v), len(output)); err != nil {
		return err
	}

	qf := fromHalf(q)
	kf := fromHalf(k)
	vf := fromHalf(v)

	d, br, bc := cfg.D, cfg.Br, cfg.Bc
	tr, tc := cfg.Tr(), cfg.Tc()

	for i := range tr {
		qi := qf[i*br*d : (i+1)*br*d]

		m := make([]float32, br)
		l := make([]float32, br)
		o := make([]float32, br*d)
		shift := make([]float32, br)
		s := make([]float32, br*bc)
		for r := range m {
			m[r] = float32(math.Inf(-1))
		}

		for j := range tc {
			kj := kf[j*bc*d : (j+1)*bc*d]
			vj := vf[j*bc*d : (j+1)*bc*d]

			// S_ij = Q_i · K_jᵀ
			for r := range br {
				qRow := qi[r*d : (r+1)*d]
				sRow := s[r*bc : (r+1)*bc]
				for c := range bc {
					sRow[c] = dotF16(qRow, kj, c*d, 1, d)
				}
			}

			// Row maxima and rescale factors.
			for r := range br {
				sRow := s[r*bc : (r+1)*bc]
				rowMax := sRow[0]
				for _, x := range sRow[1:] {
					if x > rowMax {
						rowMax = x
					}
				}
				mNew := m[r]
				if rowMax > mNew {
					mNew = rowMax
				}
				shift[r] = r16(float32(math.Exp(float64(m[r] - mNew))))
				m[r] = mNew
			}

			// P = exp(S - m), row sums into l.
			for r := range br {
				sRow := s[r*bc : (r+1)*bc]
				var rowSum float32
				for c, x := range sRow {
					p := r16(float32(math.Exp(float64(x - m[r]))))
					sRow[c] = p
					rowSum += p
				}
				rowSum = r16(rowSum)
				if j == 0 {
					l[r] = rowSum
				} else {
					l[r] = r16(r16(shift[r]*l[r]) + rowSum)
				}
			}

			// O = rescale(O) + P·V_j
			for r := range br {
				sRow := s[r*bc : (r+1)*bc]
				oRow := o[r*d : (r+1)*d]
				for c := range d {
					pv := dotF16(sRow, vj, c, d, bc)
					if j == 0 {
						oRow[c] = pv
					} else {
						oRow[c] = r16(r16(shift[r]*oRow[c]) + pv)
					}
				}
			}
		}

		// Finalize: O = diag(1/l)·O
		out := output[i*br*d : (i+1)*br*d]
		for r := range br {
			oRow := o[r*d : (r+1)*d]
			for c := range d {
				out[r*d+c] = float16.Fromfloat32(oRow[c] / l[r])
			}
		}
	}
	return nil
}

// ReferenceF16 computes the direct full-matrix attention at FP16 working
// precision, the comparison target for FlashAttention2F16.
func ReferenceF16(q, k, v, output []float16.Float16, n, d int) {
	if n == 0 || d == 0 {
		return
	}

	qf := fromHalf(q)
	kf := fromHalf(k)
	vf := fromHalf(v)

	scores := make([]float32, n*n)
	for i := range n {
		qRow := qf[i*d : (i+1)*d]
		sRow := scores[i*n : (i+1)*n]
		for j := range n {
			sRow[j] = dotF16(qRow, kf, j*d, 1, d)
		}
	}

	for i := range n {
		sRow := scores[i*n : (i+1)*n]
		maxVal := sRow[0]
		for _, x := range sRow[1:] {
			if x > maxVal {
				maxVal = x
			}
		}
		var expSum float32
		for j, x := range sRow {
			e := r16(float32(math.Exp(float64(x - maxVal))))
			sRow[j] = e
			expSum += e
		}
		expSum = r16(expSum)
		inv := r16(1 / expSum)
		for j := range sRow {
			sRow[j] = r16(sRow[j] * inv)
		}
	}

	for i := range n {
		sRow := scores[i*n : (i+1)*n]
		for c := range d {
			output[i*d+c] = float16.Fromfloat32(dotF16(sRow, vf, c, d, n))
		}
	}
}

func fromHalf(x []float16.Float16) []float32 {
	out := make([]float32, len(x))
	for i, h := range x {
		out[i] = h.Float32()
	}
	return out
}
