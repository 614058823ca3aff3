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

import (
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/convolve"
	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/filtercache"
	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// window returns the smallest range [first, last] of source samples the
// kernels of targets off ... off+n-1 read, and the 16.16 coordinate of
// target off relative to first.
func window(b *filter.Block, off, n int) (first, last, start int) {
	k := b.At(off)
	first = max(0, b.Position(off)-k.Offset)
	k = b.At(off + n - 1)
	last = min(b.Source-1, b.Position(off+n-1)-k.Offset+k.Len()-1)
	start = b.Start + b.Increment*off - 65536*first
	return first, last, start
}

// generic resizes in 8-bit sRGB with two transposing scalar passes: the
// first filters along x and turns rows into columns, the second filters the
// former columns and turns them back.
func (e *Engine) generic(r request, kind filter.Type) (*image.Raster, error) {
	hx, err := e.cache.Acquire(filtercache.Key{Source: r.src.Size.W, Target: r.full.W, Type: kind})
	if err != nil {
		return nil, fmt.Errorf("resample: x kernels: %w", err)
	}
	defer hx.Release()
	hy, err := e.cache.Acquire(filtercache.Key{Source: r.src.Size.H, Target: r.full.H, Type: kind})
	if err != nil {
		return nil, fmt.Errorf("resample: y kernels: %w", err)
	}
	defer hy.Release()

	kx, ky := hx.Block(), hy.Block()
	firstY, lastY, startY := window(ky, r.offset.Y, r.clip.H)

	tmp, err := convolve.FilterBytes(r.src.raster(), kx, convolve.BytePass{
		Start:        kx.Start + kx.Increment*r.offset.X,
		Increment:    kx.Increment,
		FilterOffset: r.offset.X,
		Length:       r.clip.W,
		FirstRow:     firstY,
		Rows:         lastY - firstY + 1,
	}, e.executor.ParallelFor)
	if err != nil {
		return nil, err
	}

	return convolve.FilterBytes(tmp, ky, convolve.BytePass{
		Start:        startY,
		Increment:    ky.Increment,
		FilterOffset: r.offset.Y,
		Length:       r.clip.H,
		Rows:         r.clip.W,
	}, e.executor.ParallelFor)
}
