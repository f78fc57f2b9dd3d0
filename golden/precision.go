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

package golden

import "strconv"

// Precision selects the working floating-point width of a kernel. The value
// is the storage size in bytes, matching the precision_t encoding of the
// kernel family under verification.
type Precision uint8

const (
	FP64 Precision = 8
	FP32 Precision = 4
	FP16 Precision = 2
	FP8  Precision = 1
)

// Valid reports whether p is a known precision tag.
func (p Precision) Valid() bool {
	switch p {
	case FP64, FP32, FP16, FP8:
		return true
	}
	return false
}

// Size returns the storage size of one element in bytes.
func (p Precision) Size() int { return int(p) }

// Lanes returns how many elements of this precision the target's 64-bit FPU
// datapath packs per operation: 1 for FP64 up to 8 for FP8. The optimized
// kernels require their reduction extent to be a multiple of this.
func (p Precision) Lanes() int { return 8 / int(p) }

func (p Precision) String() string {
	switch p {
	case FP64:
		return "FP64"
	case FP32:
		return "FP32"
	case FP16:
		return "FP16"
	case FP8:
		return "FP8"
	}
	return "Precision(" + strconv.Itoa(int(p)) + ")"
}
