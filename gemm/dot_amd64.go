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

//go:build amd64

package gemm

import "github.com/ziutek/blas"

func dot32(x, y []float32) float32 {
	return blas.Sdot(len(x), x, 1, y, 1)
}

func dot64(x, y []float64) float64 {
	return blas.Ddot(len(x), x, 1, y, 1)
}
