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

import "fmt"

// ConfigError reports a problem configuration that violates the tiling or
// alignment rules of the attention kernel itself.
type ConfigError struct {
	Param  string
	Detail string
}

func (e *ConfigError) Error() string {
	return "flashattention2: invalid config: " + e.Param + ": " + e.Detail
}

func configErrorf(param, format string, args ...any) *ConfigError {
	return &ConfigError{Param: param, Detail: fmt.Sprintf(format, args...)}
}

// ComposedError reports that one of the two matrix products a block performs
// is illegal for the composed gemm kernel family. The gemm error is
// propagated unchanged; Product names which composition failed.
type ComposedError struct {
	Product string // "QxKt" or "PxV"
	Err     error
}

func (e *ComposedError) Error() string {
	return "flashattention2: composed " + e.Product + " product: " + e.Err.Error()
}

func (e *ComposedError) Unwrap() error { return e.Err }

// ShapeError reports a tensor whose length does not match the declared
// problem dimensions.
type ShapeError struct {
	Tensor string
	Got    int
	Want   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("flashattention2: tensor %s has %d elements, want %d (N*d)",
		e.Tensor, e.Got, e.Want)
}
