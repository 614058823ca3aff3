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
	"encoding/binary"
	"fmt"
)

// Converters from the pixel formats decoders produce to the packed rasters
// the resampler reads. Every result is a top-down raster; a BottomUp source
// is flipped on the way.

func checkPlane(pix []byte, w, h, stride, bpp int) error {
	if w <= 0 || h <= 0 || stride < w*bpp || len(pix) < (h-1)*stride+w*bpp {
		return fmt.Errorf("%w: %d bytes with stride %d for %dx%d pixels of %d bytes",
			ErrInvalidRaster, len(pix), stride, w, h, bpp)
	}
	return nil
}

// NewRaster returns a zeroed top-down raster.
func NewRaster(w, h, channels int) *Raster {
	r := &Raster{Width: w, Height: h, Channels: channels}
	r.Pix = make([]byte, r.Stride()*h)
	return r
}

// GrayToBGRA expands 8-bit gray samples, h rows of w bytes stride bytes
// apart, to opaque BGRA.
func GrayToBGRA(pix []byte, w, h, stride int) (*Raster, error) {
	if err := checkPlane(pix, w, h, stride, 1); err != nil {
		return nil, err
	}
	dst := NewRaster(w, h, 4)
	for y := range h {
		in := pix[y*stride : y*stride+w]
		out := dst.Row(y)
		for x, v := range in {
			out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = v, v, v, 0xFF
		}
	}
	return dst, nil
}

// Gray16ToBGRA expands big-endian 16-bit gray samples holding bits
// significant bits (9 to 16) to opaque BGRA, keeping the top 8 bits.
func Gray16ToBGRA(pix []byte, w, h, stride, bits int) (*Raster, error) {
	if bits < 9 || bits > 16 {
		return nil, fmt.Errorf("%w: %d bits per gray sample", ErrInvalidRaster, bits)
	}
	if err := checkPlane(pix, w, h, stride, 2); err != nil {
		return nil, err
	}
	shift := bits - 8
	dst := NewRaster(w, h, 4)
	for y := range h {
		in := pix[y*stride : y*stride+2*w]
		out := dst.Row(y)
		for x := range w {
			v := byte(min(binary.BigEndian.Uint16(in[2*x:])>>shift, 0xFF))
			out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = v, v, v, 0xFF
		}
	}
	return dst, nil
}

// PalettedToBGRA maps 8-bit palette indices to opaque BGRA. palette holds
// 4 bytes per entry in B, G, R, reserved order; indices past its end map to
// black.
func PalettedToBGRA(pix []byte, w, h, stride int, palette []byte) (*Raster, error) {
	if err := checkPlane(pix, w, h, stride, 1); err != nil {
		return nil, err
	}
	if len(palette)%4 != 0 || len(palette) > 256*4 {
		return nil, fmt.Errorf("%w: palette of %d bytes", ErrInvalidRaster, len(palette))
	}
	var lut [256][4]byte
	for i := range lut {
		lut[i][3] = 0xFF
		if 4*i < len(palette) {
			copy(lut[i][:3], palette[4*i:4*i+3])
		}
	}
	dst := NewRaster(w, h, 4)
	for y := range h {
		in := pix[y*stride : y*stride+w]
		out := dst.Row(y)
		for x, v := range in {
			copy(out[x*4:x*4+4], lut[v][:])
		}
	}
	return dst, nil
}

// BGRToBGRA adds an opaque alpha channel to a 3-channel raster.
func BGRToBGRA(src *Raster) (*Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.Channels != 3 {
		return nil, fmt.Errorf("%w: %d channels, want 3", ErrInvalidRaster, src.Channels)
	}
	dst := NewRaster(src.Width, src.Height, 4)
	for y := range src.Height {
		in, out := src.Row(y), dst.Row(y)
		for x := range src.Width {
			out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = in[x*3], in[x*3+1], in[x*3+2], 0xFF
		}
	}
	return dst, nil
}

// BGRAToBGR drops the alpha channel of a 4-channel raster. The result rows
// are padded to a multiple of 4 bytes.
func BGRAToBGR(src *Raster) (*Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.Channels != 4 {
		return nil, fmt.Errorf("%w: %d channels, want 4", ErrInvalidRaster, src.Channels)
	}
	dst := NewRaster(src.Width, src.Height, 3)
	for y := range src.Height {
		in, out := src.Row(y), dst.Row(y)
		for x := range src.Width {
			out[x*3], out[x*3+1], out[x*3+2] = in[x*4], in[x*4+1], in[x*4+2]
		}
	}
	return dst, nil
}
