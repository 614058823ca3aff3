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

package resample

import "github.com/ajroetker/go-resample/resample/contrib/image"

// pointIncrement returns the 16.16 step of nearest neighbour sampling of an
// axis of size source resized to full.
func pointIncrement(source, full int) int {
	if full <= source {
		return source<<16/full + 1
	}
	if full == 1 {
		return 0
	}
	return (65536*(source-1) + 65535) / (full - 1)
}

// PointSample resizes src to full by nearest neighbour sampling and returns
// the clip x offset part as a BGRA raster. BGR sources get opaque alpha; the
// bytes of BGRA sources are copied unchanged.
func (e *Engine) PointSample(full Size, offset Point, clip Size, src Source) (*image.Raster, error) {
	r, err := newRequest(full, offset, clip, src)
	if err != nil {
		return nil, err
	}
	in := src.raster()
	out := &image.Raster{
		Pix:      make([]byte, clip.W*4*clip.H),
		Width:    clip.W,
		Height:   clip.H,
		Channels: 4,
	}

	incX := pointIncrement(src.Size.W, full.W)
	incY := pointIncrement(src.Size.H, full.H)
	startX := r.offset.X * incX
	startY := r.offset.Y * incY
	ch := src.Channels

	e.executor.ParallelFor(clip.H, func(start, end int) {
		for j := start; j < end; j++ {
			line := in.Row((startY + j*incY) >> 16)
			dst := out.Row(j)
			x := startX
			for i := range clip.W {
				s := line[(x>>16)*ch:]
				d := dst[i*4 : i*4+4]
				if ch == 3 {
					d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xFF
				} else {
					copy(d, s[:4])
				}
				x += incX
			}
		}
	})
	return out, nil
}
