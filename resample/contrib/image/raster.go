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

package image

import (
	"errors"
	"fmt"
)

// ErrInvalidRaster is returned when a raster's dimensions, channel count or
// pixel slice do not describe a usable image.
var ErrInvalidRaster = errors.New("image: invalid raster")

// Raster is a packed 8 bits per channel image with 3 (BGR) or 4 (BGRA)
// bytes per pixel. Rows are padded to a multiple of 4 bytes. When BottomUp
// is set, the first row in Pix is the bottom row of the image.
type Raster struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
	BottomUp bool
}

// Stride returns the number of bytes per row including padding.
func (r *Raster) Stride() int {
	return Pad(r.Width*r.Channels, 4)
}

// Validate checks that the raster is self-consistent.
func (r *Raster) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if r.Channels != 3 && r.Channels != 4 {
		return fmt.Errorf("%w: %d channels", ErrInvalidRaster, r.Channels)
	}
	if need := r.Stride() * r.Height; len(r.Pix) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrInvalidRaster, len(r.Pix), need)
	}
	return nil
}

// Row returns the bytes of image row y, counted from the top, without the
// trailing padding.
func (r *Raster) Row(y int) []byte {
	if r.BottomUp {
		y = r.Height - 1 - y
	}
	start := y * r.Stride()
	return r.Pix[start : start+r.Width*r.Channels]
}

// Rect defines a rectangular region within an image.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: max(r.X0, other.X0),
		Y0: max(r.Y0, other.Y0),
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
	}
}

// Pad rounds v up to a multiple of p. p must be a power of two.
func Pad(v, p int) int {
	return (v + p - 1) &^ (p - 1)
}
