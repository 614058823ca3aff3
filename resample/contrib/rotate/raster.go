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

package rotate

import (
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

func check32(r *image.Raster) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Channels != 4 {
		return fmt.Errorf("%w: %d channels, want 4", image.ErrInvalidRaster, r.Channels)
	}
	return nil
}

func newRaster32(w, h int) *image.Raster {
	return &image.Raster{Pix: make([]byte, w*4*h), Width: w, Height: h, Channels: 4}
}

// Raster90 returns src rotated by 90°, clockwise or counter-clockwise.
// The result is a top-down raster of src.Height x src.Width pixels.
func Raster90(src *image.Raster, clockwise bool) (*image.Raster, error) {
	if err := check32(src); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	dst := newRaster32(h, w)
	forEachTile(w, h, func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			row := src.Row(y)
			for x := x0; x < x1; x++ {
				var tx, ty int
				if clockwise {
					tx, ty = h-1-y, x
				} else {
					tx, ty = y, w-1-x
				}
				copy(dst.Pix[(ty*h+tx)*4:], row[x*4:x*4+4])
			}
		}
	})
	return dst, nil
}

// Raster180 returns src rotated by 180°.
func Raster180(src *image.Raster) (*image.Raster, error) {
	if err := check32(src); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	dst := newRaster32(w, h)
	for y := range h {
		row := src.Row(y)
		out := dst.Row(h - 1 - y)
		for x := range w {
			copy(out[(w-1-x)*4:], row[x*4:x*4+4])
		}
	}
	return dst, nil
}

// MirrorH returns src mirrored about its vertical axis.
func MirrorH(src *image.Raster) (*image.Raster, error) {
	if err := check32(src); err != nil {
		return nil, err
	}
	w := src.Width
	dst := newRaster32(w, src.Height)
	for y := range src.Height {
		row := src.Row(y)
		out := dst.Row(y)
		for x := range w {
			copy(out[(w-1-x)*4:], row[x*4:x*4+4])
		}
	}
	return dst, nil
}

// MirrorV returns src mirrored about its horizontal axis.
func MirrorV(src *image.Raster) (*image.Raster, error) {
	if err := check32(src); err != nil {
		return nil, err
	}
	h := src.Height
	dst := newRaster32(src.Width, h)
	for y := range h {
		copy(dst.Row(h-1-y), src.Row(y))
	}
	return dst, nil
}

// MirrorVInPlace swaps the rows of pix, h rows of stride bytes, top to
// bottom.
func MirrorVInPlace(pix []byte, h, stride int) {
	tmp := make([]byte, stride)
	for j := range h / 2 {
		top := pix[j*stride : (j+1)*stride]
		bottom := pix[(h-1-j)*stride : (h-j)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// CopyRect copies the srcRect area of src to the dstRect area of dst. Both
// rectangles must have the same size and lie within their rasters. If dst is
// nil a zeroed top-down raster of size w x h is allocated first.
func CopyRect(dst *image.Raster, w, h int, dstRect image.Rect, src *image.Raster, srcRect image.Rect) (*image.Raster, error) {
	if err := check32(src); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = newRaster32(w, h)
	} else if err := check32(dst); err != nil {
		return nil, err
	}
	inside := func(r image.Rect, img *image.Raster) bool {
		return r.X0 >= 0 && r.Y0 >= 0 && r.X1 <= img.Width && r.Y1 <= img.Height
	}
	if srcRect.Width() != dstRect.Width() || srcRect.Height() != dstRect.Height() ||
		!inside(srcRect, src) || !inside(dstRect, dst) {
		return nil, fmt.Errorf("%w: cannot copy %v to %v", image.ErrInvalidRaster, srcRect, dstRect)
	}
	for j := range srcRect.Height() {
		in := src.Row(srcRect.Y0 + j)[srcRect.X0*4 : srcRect.X1*4]
		copy(dst.Row(dstRect.Y0 + j)[dstRect.X0*4:], in)
	}
	return dst, nil
}
