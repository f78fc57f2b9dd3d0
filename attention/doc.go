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

// Package attention implements the FlashAttention-2 golden model: a tiled,
// numerically stable reimplementation of dot-product attention that matches
// a full-matrix softmax(Q·Kᵀ)·V computation within floating-point tolerance
// while touching the inputs only through fixed-size row and column tiles,
// the way the memory-constrained hardware kernel under verification does.
//
// The model deliberately applies no 1/sqrt(d) score scaling: the kernel it
// validates computes softmax(Q·Kᵀ)·V directly, and the golden output has to
// match that composition, not the conventional scaled variant.
//
// # Components
//
//   - Config and Config.Validate — the tiling validator: checks that the
//     problem dimensions admit the chosen block decomposition and that the
//     two matrix products each block performs (Q·Kᵀ and P·V) are legal for
//     the composed gemm kernel family at the configured precision.
//   - FlashAttention2 / FlashAttention2Parallel — the tiled traversal with
//     online-softmax bookkeeping. Row tiles are independent and may run on a
//     worker pool; column tiles within a row tile are a strictly ordered
//     fold.
//   - RowState — the per-row-tile (m, l, O) accumulator, exposed so two
//     partial column-range results can be merged pairwise with the same
//     max/rescale rule.
//   - Reference / ReferenceF16 — the direct full-matrix computation the
//     tiled output is compared against.
//
// # Example Usage
//
//	cfg := attention.Config{N: 128, D: 64, Br: 16, Bc: 32, Precision: golden.FP32}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	output := make([]float32, cfg.N*cfg.D)
//	if err := attention.FlashAttention2(cfg, q, k, v, output); err != nil {
//	    return err
//	}
package attention
