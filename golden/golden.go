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

// Package golden provides the base types shared by the reference-model
// packages: the floating-point generic constraint and the numeric precision
// tags of the target kernel family.
//
// The packages in this module produce bit-reproducible reference outputs for
// hardware kernel verification. Everything is plain scalar Go: there is no
// SIMD dispatch, because a golden output must not depend on the machine that
// produced it.
package golden

import "unsafe"

// Floats is the constraint for element types the reference kernels operate on
// natively. FP16 is handled separately (see the attention package) since Go
// has no half-precision arithmetic.
type Floats interface {
	float32 | float64
}

// PrecisionOf returns the precision tag matching the Go element type T.
func PrecisionOf[T Floats]() Precision {
	var zero T
	if unsafe.Sizeof(zero) == 8 {
		return FP64
	}
	return FP32
}
