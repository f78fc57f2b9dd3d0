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

import "fmt"

// ConfigError reports a gemm configuration the kernel family cannot execute.
// Param names the offending parameter; Detail states the violated rule with
// the concrete values interpolated.
type ConfigError struct {
	Param  string
	Detail string
}

func (e *ConfigError) Error() string {
	return "gemm: invalid config: " + e.Param + ": " + e.Detail
}

func configErrorf(param, format string, args ...any) *ConfigError {
	return &ConfigError{Param: param, Detail: fmt.Sprintf(format, args...)}
}
