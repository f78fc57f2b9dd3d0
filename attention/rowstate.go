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

// RowState is the online-softmax accumulator for one row tile of Br query
// rows: the running per-row score maximum m (initialized to -inf), the
// running rescaled sum of exponentiated scores l, and the unnormalized
// output accumulator O (Br x d). m and l are defined once the first column
// tile has been folded in.
//
// Column tiles are folded in order with Update. Two states built from
// disjoint column ranges can be combined with Merge, which applies the same
// max/rescale rule pairwise; this is what makes the column fold expressible
// as a parallel scan. The state is owned by exactly one row tile's traversal
// and nothing of it survives except the output written by Normalize.
type RowState[T golden.Floats] struct {
	br, d    int
	baseline bool

	tiles int // column tiles folded so far

	m     []T // [Br] running row maximum
	l     []T // [Br] running rescaled exp sum
	o     []T // [Br*d] unnormalized output accumulator
	shift []T // [Br] exp(m_prev - m) scratch
	pv    []T // [Br*d] P*V scratch
	vt    []T // transposed value tile scratch (optimized strategy)
}

// NewRowState returns a RowState for a tile of br query rows and head
// dimension d. baseline selects the P·V composition; the optimized strategy
// transposes each value tile and uses the transposed-B gemm instead.
func NewRowState[T golden.Floats](br, d int, baseline bool) *RowState[T] {
	st := &RowState[T]{
		br:       br,
		d:        d,
		baseline: baseline,
		m:        make([]T, br),
		l:        make([]T, br),
		o:        make([]T, br*d),
		shift:    make([]T, br),
		pv:       make([]T, br*d),
	}
	negInf := T(math.Inf(-1))
	for r := range st.m {
		st.m[r] = negInf
	}
	return st
}

// Update folds one column tile into the state. s is the raw score tile
// Q_i·K_jᵀ (br x bc, row-major) and vj the matching value tile (bc x d,
// row-major). s is overwritten with the exponentiated probabilities
// exp(s - m) computed against the updated row maximum.
func (st *RowState[T]) Update(s, vj []T, bc int) {
	if len(s) < st.br*bc {
		panic("attention: score tile too short")
	}
	if len(vj) < bc*st.d {
		panic("attention: value tile too short")
	}

	// New row maxima and the rescale factor for previously accumulated
	// state. On the first tile m is -inf, the factor is exp(-inf) = 0, and
	// the initialization branch below never reads it.
	for r := range st.br {
		row := s[r*bc : (r+1)*bc]
		rowMax := row[0]
		for _, x := range row[1:] {
			if x > rowMax {
				rowMax = x
			}
		}
		mPrev := st.m[r]
		mNew := mPrev
		if rowMax > mNew {
			mNew = rowMax
		}
		st.shift[r] = T(math.Exp(float64(mPrev - mNew)))
		st.m[r] = mNew
	}

	// P = exp(s - m) with the updated maxima, and the per-row sums.
	// The subtraction must happen before exponentiation: it is what keeps
	// exp from overflowing.
	for r := range st.br {
		row := s[r*bc : (r+1)*bc]
		mr := st.m[r]
		var rowSum T
		for i, x := range row {
			p := T(math.Exp(float64(x - mr)))
			row[i] = p
			rowSum += p
		}
		if st.tiles == 0 {
			st.l[r] = rowSum
		} else {
			st.l[r] = st.shift[r]*st.l[r] + rowSum
		}
	}

	// P*V, through the composition the configured strategy prescribes.
	if st.baseline {
		gemm.MatMul(s, vj, st.pv, st.br, st.d, bc)
	} else {
		if len(st.vt) < st.d*bc {
			st.vt = make([]T, st.d*bc)
		}
		gemm.Transpose(vj, st.vt, bc, st.d)
		gemm.MatMulTB(s, st.vt, st.pv, st.br, st.d, bc)
	}

	if st.tiles == 0 {
		copy(st.o, st.pv[:st.br*st.d])
	} else {
		for r := range st.br {
			f := st.shift[r]
			oRow := st.o[r*st.d : (r+1)*st.d]
			pvRow := st.pv[r*st.d : (r+1)*st.d]
			for i := range oRow {
				oRow[i] = f*oRow[i] + pvRow[i]
			}
		}
	}

	st.tiles++
}

// Merge folds other into st. The two states must cover disjoint column
// ranges of the same row tile; the combine is associative, so any grouping
// of column tiles yields the same result up to floating-point rounding.
// other is left untouched.
func (st *RowState[T]) Merge(other *RowState[T]) {
	if st.br != other.br || st.d != other.d {
		panic("attention: merging row states of different shapes")
	}
	if other.tiles == 0 {
		return
	}
	if st.tiles == 0 {
		copy(st.m, other.m)
		copy(st.l, other.l)
		copy(st.o, other.o)
		st.tiles = other.tiles
		return
	}

	for r := range st.br {
		mNew := st.m[r]
		if other.m[r] > mNew {
			mNew = other.m[r]
		}
		fs := T(math.Exp(float64(st.m[r] - mNew)))
		fo := T(math.Exp(float64(other.m[r] - mNew)))
		st.m[r] = mNew
		st.l[r] = fs*st.l[r] + fo*other.l[r]

		oRow := st.o[r*st.d : (r+1)*st.d]
		otherRow := other.o[r*st.d : (r+1)*st.d]
		for i := range oRow {
			oRow[i] = fs*oRow[i] + fo*otherRow[i]
		}
	}
	st.tiles += other.tiles
}

// Normalize divides the accumulator by the softmax denominator and writes
// the finalized Br x d tile into dst.
func (st *RowState[T]) Normalize(dst []T) {
	if st.tiles == 0 {
		panic("attention: Normalize before any Update")
	}
	if len(dst) < st.br*st.d {
		panic("attention: output tile too short")
	}
	for r := range st.br {
		inv := 1 / st.l[r]
		oRow := st.o[r*st.d : (r+1)*st.d]
		dstRow := dst[r*st.d : (r+1)*st.d]
		for i := range oRow {
			dstRow[i] = oRow[i] * inv
		}
	}
}
