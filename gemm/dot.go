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

// Dot returns the inner product of x and y over min(len(x), len(y)) elements,
// accumulated at the working precision of T.
func Dot[T golden.Floats](x, y []T) T {
	n := min(len(x), len(y))
	switch xs := any(x).(type) {
	case []float32:
		return T(dot32(xs[:n], any(y).([]float32)[:n]))
	case []float64:
		return T(dot64(xs[:n], any(y).([]float64)[:n]))
	}
	return 0
}
