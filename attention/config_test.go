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
	"errors"
	"testing"

	"github.com/ajroetker/go-flashgolden/gemm"
	"github.com/ajroetker/go-flashgolden/golden"
)

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"FP64/baseline", Config{N: 64, D: 32, Br: 8, Bc: 16, Precision: golden.FP64, Baseline: true}},
		{"FP64/optimized", Config{N: 64, D: 32, Br: 8, Bc: 16, Precision: golden.FP64}},
		{"FP32/optimized", Config{N: 128, D: 64, Br: 16, Bc: 32, Precision: golden.FP32}},
		{"FP16/optimized", Config{N: 128, D: 64, Br: 16, Bc: 32, Precision: golden.FP16}},
		{"single_tile", Config{N: 32, D: 16, Br: 32, Bc: 32, Precision: golden.FP64, Baseline: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}

func TestValidateRejectsTiling(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		param string
	}{
		// The canonical illegal case: 17 rows cannot be cut into tiles of 4.
		{"N_not_multiple_of_Br", Config{N: 17, D: 32, Br: 4, Bc: 17, Precision: golden.FP64, Baseline: true}, "N"},
		{"N_not_multiple_of_Bc", Config{N: 64, D: 32, Br: 8, Bc: 48, Precision: golden.FP64, Baseline: true}, "N"},
		{"Br_not_core_aligned", Config{N: 64, D: 32, Br: 4, Bc: 16, Precision: golden.FP64, Baseline: true}, "B_r"},
		{"zero_tile", Config{N: 64, D: 32, Br: 0, Bc: 16, Precision: golden.FP64, Baseline: true}, "B_r/B_c"},
		{"negative_N", Config{N: -64, D: 32, Br: 8, Bc: 16, Precision: golden.FP64, Baseline: true}, "N/d"},
		{"bad_precision", Config{N: 64, D: 32, Br: 8, Bc: 16, Precision: 3, Baseline: true}, "Precision"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %v, want *ConfigError", err)
			}
			if cfgErr.Param != tt.param {
				t.Fatalf("error names param %q, want %q (err: %v)", cfgErr.Param, tt.param, err)
			}
		})
	}
}

// Violations inside the two composed matrix products must surface as the
// gemm primitive's own error, wrapped with which product failed.
func TestValidateRejectsComposed(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		product string
	}{
		// Optimized FP32 kernels pack 2 elements per op along the reduction
		// dimension; Q·Kᵀ reduces over d.
		{"QxKt_simd_width", Config{N: 64, D: 33, Br: 8, Bc: 8, Precision: golden.FP32}, "QxKt"},
		// P·V reduces over B_c.
		{"PxV_simd_width", Config{N: 64, D: 32, Br: 8, Bc: 1, Precision: golden.FP32}, "PxV"},
		// FP8 has no baseline kernel.
		{"FP8_baseline", Config{N: 64, D: 32, Br: 8, Bc: 16, Precision: golden.FP8, Baseline: true}, "QxKt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var composed *ComposedError
			if !errors.As(err, &composed) {
				t.Fatalf("got %v, want *ComposedError", err)
			}
			if composed.Product != tt.product {
				t.Fatalf("error names product %q, want %q (err: %v)", composed.Product, tt.product, err)
			}
			var gemmErr *gemm.ConfigError
			if !errors.As(err, &gemmErr) {
				t.Fatalf("composed error does not wrap *gemm.ConfigError: %v", err)
			}
		})
	}
}
