// Copyright 2025 go-resample Authors
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

// Package convolve applies one axis of a separable resampling filter.
//
// Two numeric paths are provided:
//
//   - FilterBytes works on 8-bit rasters with Q2.14 integer taps. It filters
//     along rows and writes its result transposed, so calling it twice with
//     the X and then the Y kernels yields a correctly oriented image.
//   - FilterAxis works on 12-bit linear float images with lane-replicated
//     taps. It filters along columns, W columns at a time, and writes its
//     result in the block row layout that rotate.Rotate consumes.
//
// FilterAxis walks the output rows and hands each one to a row kernel for
// the block width. The row kernels are chosen at init: AVX2 through
// simd/archsimd on amd64 builds with GOEXPERIMENT=simd, NEON through
// go-highway's hwy/asm on arm64, and a scalar fallback elsewhere or when
// HWY_NO_SIMD is set. Target reports which one is in use.
package convolve
