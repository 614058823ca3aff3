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

// Package resample resizes 8-bit BGR and BGRA rasters with separable FIR
// filters.
//
// An Engine picks one of four implementations for every request:
//
//   - point sampling, when high quality is off or no resize is needed;
//   - the generic path, which filters 8-bit sRGB samples with Q2.14 integer
//     kernels on any processor;
//   - the SSE and AVX2 paths, which convert the source region to 12-bit
//     linear light and filter four or eight columns at a time.
//
// Both filtered paths run two one-dimensional passes with a 90° rotation
// after each, so both passes walk their source along the same axis.
// Shrinking uses the selected filter (Hermite, Mitchell, Catmull-Rom or
// Lanczos2) with kernels integrated over the source pixel footprint;
// growing any axis uses a 4-tap bicubic kernel.
//
// Requests name the full notional target size and the clipped rectangle
// that is actually computed, so a viewer can render only the visible part
// of a huge zoom:
//
//	e, err := resample.New()
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	src := resample.Source{Pixels: pix, Size: resample.Size{W: 4000, H: 3000}, Channels: 3}
//	out, err := e.Resample(resample.Size{W: 800, H: 600}, resample.Point{}, resample.Size{W: 800, H: 600},
//	    src, filter.Catrom, true)
//
// Kernel blocks are built once per (source size, target size, filter, lane
// width) and shared through the engine's filtercache.Cache.
//
// The CPU type is detected at init from go-highway's dispatch level. The
// float paths are chosen only when their row kernels are vectorized, which
// on amd64 needs a GOEXPERIMENT=simd build. Set RESAMPLE_NO_SIMD=1 or
// HWY_NO_SIMD=1 to force the generic path.
package resample
