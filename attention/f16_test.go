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
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/x448/float16"

	"github.com/ajroetker/go-flashgolden/golden"
)

func randTensorF16(rng *rand.Rand, n int) []float16.Float16 {
	out := make([]float16.Float16, n)
	for i := range out {
		out[i] = float16.Fromfloat32(2*rng.Float32() - 1)
	}
	return out
}

func TestFlashAttention2F16MatchesReference(t *testing.T) {
	tests := []struct {
		n, d, br, bc int
	}{
		{n: 32, d: 16, br: 8, bc: 8},
		{n: 64, d: 32, br: 16, bc: 16},
	}

	rng := rand.New(rand.NewSource(42))
	for _, tt := range tests {
		name := fmt.Sprintf("%dx%d/Br%d_Bc%d", tt.n, tt.d, tt.br, tt.bc)
		t.Run(name, func(t *testing.T) {
			q := randTensorF16(rng, tt.n*tt.d)
			k := randTensorF16(rng, tt.n*tt.d)
			v := randTensorF16(rng, tt.n*tt.d)

			want := make([]float16.Float16, tt.n*tt.d)
			ReferenceF16(q, k, v, want, tt.n, tt.d)

			cfg := Config{N: tt.n, D: tt.d, Br: tt.br, Bc: tt.bc, Precision: golden.FP16}
			got := make([]float16.Float16, tt.n*tt.d)
			if err := FlashAttention2F16(cfg, q, k, v, got); err != nil {
				t.Fatalf("FlashAttention2F16: %v", err)
			}

			// Half precision leaves ~3 decimal digits; the outputs are convex
			// combinations of values in (-1, 1), so compare absolutely.
			for i := range got {
				g := float64(got[i].Float32())
				w := float64(want[i].Float32())
				if math.IsNaN(g) || math.IsInf(g, 0) {
					t.Fatalf("non-finite value %v at index %d", g, i)
				}
				if diff := math.Abs(g - w); diff > 5e-2 {
					t.Fatalf("index %d: got %v, want %v (diff %v)", i, g, w, diff)
				}
			}
		})
	}
}

func TestFlashAttention2F16Determinism(t *testing.T) {
	const n, d = 32, 16
	rng := rand.New(rand.NewSource(5))
	q := randTensorF16(rng, n*d)
	k := randTensorF16(rng, n*d)
	v := randTensorF16(rng, n*d)

	cfg := Config{N: n, D: d, Br: 8, Bc: 8, Precision: golden.FP16}
	a := make([]float16.Float16, n*d)
	b := make([]float16.Float16, n*d)
	if err := FlashAttention2F16(cfg, q, k, v, a); err != nil {
		t.Fatalf("FlashAttention2F16: %v", err)
	}
	if err := FlashAttention2F16(cfg, q, k, v, b); err != nil {
		t.Fatalf("FlashAttention2F16: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("reruns differ at index %d: %#v vs %#v", i, a[i], b[i])
		}
	}
}

func TestFlashAttention2F16RequiresFP16(t *testing.T) {
	cfg := Config{N: 32, D: 16, Br: 8, Bc: 8, Precision: golden.FP64, Baseline: true}
	buf := make([]float16.Float16, cfg.N*cfg.D)
	if err := FlashAttention2F16(cfg, buf, buf, buf, buf); err == nil {
		t.Fatal("expected error for non-FP16 precision")
	}
}
