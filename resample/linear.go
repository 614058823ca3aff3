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
	"github.com/ajroetker/go-resample/resample/contrib/rotate"
)

// linear resizes in 12-bit linear light. The clipped target is cut into
// horizontal strips whose heights are multiples of the lane width; each
// strip runs independently and writes its own rows of the target.
func (e *Engine) linear(r request, kind filter.Type) (*image.Raster, error) {
	lanes := e.backend.Lanes()
	buf, out := stripTarget(r.clip, lanes)
	strips := Strips(r.clip.H, lanes, e.executor.NumWorkers())
	e.log().Debug("resample: strips", "count", len(strips), "lanes", lanes)

	err := e.executor.Each(len(strips), func(i int) error {
		s := strips[i]
		if err := e.processStrip(r, kind, buf, s.Offset, s.Height); err != nil {
			e.log().Warn("resample: strip failed", "offset", s.Offset, "height", s.Height, "err", err)
			return fmt.Errorf("strip at row %d: %w", s.Offset, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// processStrip computes target rows offsetY ... offsetY+height-1 of the
// clipped target into target, whose rows are clip.W*4 bytes. It touches no
// state shared with other strips except the source and the kernel cache.
func (e *Engine) processStrip(r request, kind filter.Type, target []byte, offsetY, height int) error {
	lanes := e.backend.Lanes()
	hy, err := e.cache.Acquire(filtercache.Key{Source: r.src.Size.H, Target: r.full.H, Type: kind, Lanes: lanes})
	if err != nil {
		return fmt.Errorf("y kernels: %w", err)
	}
	defer hy.Release()
	hx, err := e.cache.Acquire(filtercache.Key{Source: r.src.Size.W, Target: r.full.W, Type: kind, Lanes: lanes})
	if err != nil {
		return fmt.Errorf("x kernels: %w", err)
	}
	defer hx.Release()

	ky, kx := hy.Packed(), hx.Packed()
	offY := r.offset.Y + offsetY
	firstX, lastX, startX := window(kx.Block, r.offset.X, r.clip.W)
	firstY, lastY, startY := window(ky.Block, offY, height)

	src, err := image.FromRaster(r.src.raster(), image.Rect{X0: firstX, Y0: firstY, X1: lastX + 1, Y1: lastY + 1}, lanes)
	if err != nil {
		return err
	}
	filteredY, err := e.backend.FilterAxis(src, ky, convolve.Pass{
		Start:        startY,
		Increment:    ky.Block.Increment,
		FilterOffset: offY,
		Length:       height,
	})
	src.Release()
	if err != nil {
		return err
	}

	rotated, err := rotate.Rotate(filteredY, lanes)
	filteredY.Release()
	if err != nil {
		return err
	}

	filteredX, err := e.backend.FilterAxis(rotated, kx, convolve.Pass{
		Start:        startX,
		Increment:    kx.Block.Increment,
		FilterOffset: r.offset.X,
		Length:       r.clip.W,
		Round:        true,
	})
	rotated.Release()
	if err != nil {
		return err
	}
	defer filteredX.Release()

	stride := r.clip.W * 4
	return rotate.RotateToRaster(filteredX, target[offsetY*stride:], stride)
}
