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

// Package image provides the linear-light working buffer used by the
// vectorized resampling paths, together with the packed 8-bit raster type
// exchanged at the engine boundary.
//
// A LinearImage stores three channels (blue, green, red) of 12-bit linear
// samples as float32. Each image row holds the three channels one after the
// other, each padded to a multiple of the lane width:
//
//	row y: BBBBBBBB.. GGGGGGGG.. RRRRRRRR..
//
// Filter passes produce rows in block layout instead, where every group of
// W lanes stores W blue, then W green, then W red samples:
//
//	row y: BBBB GGGG RRRR | BBBB GGGG RRRR | ...
//
// # Conversion
//
// Samples are converted between 8-bit sRGB and 12-bit linear light with two
// lookup tables built at package initialization:
//
//	lin := image.SRGB8ToLinear12[128] // 884
//	s := image.Linear12ToSRGB8[lin]   // 128
//
// # Memory
//
// LinearImage storage is allocated in whole pages directly from the
// operating system, so every plane row starts lane-aligned. Callers own the
// image exclusively and must call Release when done with it.
package image
