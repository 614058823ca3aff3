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

// Package filter generates the fixed-point FIR kernels used to resample one
// image axis.
//
// Build computes a Block for a (source size, target size, filter type)
// triple: 128 interior kernels, one per quantized sub-pixel phase, plus
// border kernels for the target positions whose footprint would leave the
// source. Every kernel's taps sum to exactly FPOne (Q2.14).
//
//	b, err := filter.Build(4000, 800, filter.Catrom)
//	k := b.At(17)                 // kernel of target column 17
//	first := b.Position(17) - k.Offset
//	// source columns first .. first+k.Len()-1 contribute to column 17
//
// Pack re-expresses a Block as float taps replicated across W lanes for the
// vectorized convolution.
//
// # Filter types
//
// Downsampling uses one of Hermite, Mitchell, Catrom (the BC-spline cubic
// family) or Lanczos2, integrated over the source pixel footprint. Upsampling
// always uses a 4-tap Catmull-Rom cubic (Bicubic). None selects point
// sampling and has no kernels.
package filter
