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

import "fmt"

// Channel indices of the three planes of a LinearImage row.
const (
	Blue = iota
	Green
	Red
)

// LinearImage is a three channel float32 image of 12-bit linear samples with
// rows padded to a multiple of the lane width. See the package documentation
// for the planar and block row layouts.
type LinearImage struct {
	data         []float32
	free         func()
	width        int
	height       int
	paddedWidth  int
	paddedHeight int
	blockLanes   int // 0 for planar rows, else W of the block layout
}

// NewLinearImage allocates a zeroed planar image. Rows are padded to a
// multiple of pad samples; when padHeight is set the row count is padded as
// well. pad must be a power of two.
func NewLinearImage(width, height int, padHeight bool, pad int) (*LinearImage, error) {
	if width <= 0 || height <= 0 || pad <= 0 || pad&(pad-1) != 0 {
		return nil, fmt.Errorf("%w: linear image %dx%d, pad %d", ErrInvalidRaster, width, height, pad)
	}
	img := &LinearImage{
		width:        width,
		height:       height,
		paddedWidth:  Pad(width, pad),
		paddedHeight: height,
	}
	if padHeight {
		img.paddedHeight = Pad(height, pad)
	}
	data, free, err := allocFloats(3 * img.paddedWidth * img.paddedHeight)
	if err != nil {
		return nil, err
	}
	img.data = data
	img.free = free
	return img, nil
}

// FromRaster decodes the region of src into a new planar image, converting
// each sRGB channel to linear light. The region is clipped to the raster.
func FromRaster(src *Raster, region Rect, pad int) (*LinearImage, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	region = region.Intersect(Rect{X1: src.Width, Y1: src.Height})
	if region.IsEmpty() {
		return nil, fmt.Errorf("%w: empty region", ErrInvalidRaster)
	}
	img, err := NewLinearImage(region.Width(), region.Height(), false, pad)
	if err != nil {
		return nil, err
	}

	ch := src.Channels
	pw := img.paddedWidth
	for j := range img.height {
		line := src.Row(region.Y0 + j)[region.X0*ch:]
		dst := img.Row(j)
		b := dst[:img.width]
		g := dst[pw : pw+img.width]
		r := dst[2*pw : 2*pw+img.width]
		for i := range img.width {
			s := line[i*ch : i*ch+3]
			b[i] = float32(SRGB8ToLinear12[s[0]])
			g[i] = float32(SRGB8ToLinear12[s[1]])
			r[i] = float32(SRGB8ToLinear12[s[2]])
		}
	}
	return img, nil
}

// Width returns the logical width in samples.
func (img *LinearImage) Width() int { return img.width }

// Height returns the logical height in rows.
func (img *LinearImage) Height() int { return img.height }

// PaddedWidth returns the number of samples per channel in a row.
func (img *LinearImage) PaddedWidth() int { return img.paddedWidth }

// PaddedHeight returns the number of allocated rows.
func (img *LinearImage) PaddedHeight() int { return img.paddedHeight }

// BlockLanes returns the lane width W when rows use the block layout, or 0
// when they are planar.
func (img *LinearImage) BlockLanes() int { return img.blockLanes }

// SetBlockLanes marks the row layout. Filter passes call it on their output.
func (img *LinearImage) SetBlockLanes(w int) { img.blockLanes = w }

// Row returns all 3*PaddedWidth samples of row y. Rows up to PaddedHeight
// are addressable.
func (img *LinearImage) Row(y int) []float32 {
	n := 3 * img.paddedWidth
	return img.data[y*n : (y+1)*n]
}

// Data returns the whole backing slice, PaddedHeight rows long.
func (img *LinearImage) Data() []float32 { return img.data }

// offset returns the index of sample (x, y) of channel c.
func (img *LinearImage) offset(x, y, c int) int {
	base := y * 3 * img.paddedWidth
	if w := img.blockLanes; w > 0 {
		return base + (x/w)*3*w + c*w + x%w
	}
	return base + c*img.paddedWidth + x
}

// At returns sample (x, y) of channel c in either layout.
func (img *LinearImage) At(x, y, c int) float32 {
	return img.data[img.offset(x, y, c)]
}

// Set stores sample (x, y) of channel c in either layout.
func (img *LinearImage) Set(x, y, c int, v float32) {
	img.data[img.offset(x, y, c)] = v
}

// Fill sets every sample of the logical area to the given channel values.
func (img *LinearImage) Fill(b, g, r float32) {
	for y := range img.height {
		for x := range img.width {
			img.Set(x, y, Blue, b)
			img.Set(x, y, Green, g)
			img.Set(x, y, Red, r)
		}
	}
}

// ToRaster converts the logical area to a top-down BGRA raster with opaque
// alpha, mapping each sample through the linear to sRGB table. Samples are
// expected to be clamped and rounded already.
func (img *LinearImage) ToRaster() *Raster {
	out := &Raster{
		Pix:      make([]byte, img.width*4*img.height),
		Width:    img.width,
		Height:   img.height,
		Channels: 4,
	}
	for y := range img.height {
		row := out.Pix[y*img.width*4:]
		for x := range img.width {
			d := row[x*4 : x*4+4]
			d[0] = ToSRGB8(img.At(x, y, Blue))
			d[1] = ToSRGB8(img.At(x, y, Green))
			d[2] = ToSRGB8(img.At(x, y, Red))
			d[3] = 0xFF
		}
	}
	return out
}

// Release returns the image memory to the operating system. The image must
// not be used afterwards. Calling Release more than once is safe.
func (img *LinearImage) Release() {
	if img == nil || img.free == nil {
		return
	}
	img.free()
	img.free = nil
	img.data = nil
}
