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

// Package rotate implements the tiled 90° rotations used between the two
// passes of a separable resize, plus rotate and mirror operations on 32-bit
// BGRA rasters.
//
// All rotations walk the image in TileSize x TileSize tiles so that both the
// rows being read and the rows being written stay cache resident.
package rotate

import (
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// TileSize is the edge length of the square tiles rotations work on.
const TileSize = 32

// forEachTile calls fn for every tile covering [0, w) x [0, h).
func forEachTile(w, h int, fn func(x0, y0, x1, y1 int)) {
	for y := 0; y < h; y += TileSize {
		for x := 0; x < w; x += TileSize {
			fn(x, y, min(x+TileSize, w), min(y+TileSize, h))
		}
	}
}

// Rotate flips src about its main diagonal: sample (x, y) of src becomes
// sample (y, x) of the result. src may use the planar or the block row
// layout; the result is planar with both dimensions padded to pad, so that
// the padding columns of src become padding rows of the result. Applying
// Rotate twice returns the original samples.
//
// The caller owns and must Release the result.
func Rotate(src *image.LinearImage, pad int) (*image.LinearImage, error) {
	dst, err := image.NewLinearImage(src.Height(), src.Width(), true, pad)
	if err != nil {
		return nil, err
	}
	cols := min(src.PaddedWidth(), dst.PaddedHeight())
	if w := src.BlockLanes(); w > 0 {
		rotateBlock(src.Data(), dst.Data(), w, src.PaddedWidth(), dst.PaddedWidth(), cols, src.Height())
	} else {
		rotatePlanar(src.Data(), dst.Data(), src.PaddedWidth(), dst.PaddedWidth(), cols, src.Height())
	}
	return dst, nil
}

// rotatePlanar transposes the first cols columns of h planar rows of
// padded width spw into planar rows of padded width dpw.
func rotatePlanar(in, out []float32, spw, dpw, cols, h int) {
	for y0 := 0; y0 < h; y0 += TileSize {
		y1 := min(y0+TileSize, h)
		for x0 := 0; x0 < cols; x0 += TileSize {
			x1 := min(x0+TileSize, cols)
			for y := y0; y < y1; y++ {
				b := in[y*3*spw : y*3*spw+spw]
				g := in[y*3*spw+spw : y*3*spw+2*spw]
				r := in[y*3*spw+2*spw : (y+1)*3*spw]
				for x := x0; x < x1; x++ {
					o := x*3*dpw + y
					out[o] = b[x]
					out[o+dpw] = g[x]
					out[o+2*dpw] = r[x]
				}
			}
		}
	}
}

// rotateBlock is rotatePlanar for rows in the block layout with w lanes.
// TileSize is a multiple of w, so every tile starts on a block boundary.
func rotateBlock(in, out []float32, w, spw, dpw, cols, h int) {
	for y0 := 0; y0 < h; y0 += TileSize {
		y1 := min(y0+TileSize, h)
		for x0 := 0; x0 < cols; x0 += TileSize {
			x1 := min(x0+TileSize, cols)
			for y := y0; y < y1; y++ {
				row := in[y*3*spw : (y+1)*3*spw]
				for x := x0; x < x1; x += w {
					block := row[(x/w)*3*w : (x/w+1)*3*w]
					for l := range min(w, x1-x) {
						o := (x+l)*3*dpw + y
						out[o] = block[l]
						out[o+dpw] = block[w+l]
						out[o+2*dpw] = block[2*w+l]
					}
				}
			}
		}
	}
}

// RotateToRaster writes the transpose of src into dst as BGRA pixels:
// sample (x, y) of src becomes the pixel in row x, column y of dst, whose
// rows are stride bytes apart. Samples are mapped through the linear to sRGB
// table and alpha is set to 0xFF. Only the logical area of src is written.
func RotateToRaster(src *image.LinearImage, dst []byte, stride int) error {
	w, h := src.Width(), src.Height()
	if stride < h*4 || len(dst) < (w-1)*stride+h*4 {
		return fmt.Errorf("%w: %d bytes with stride %d for %dx%d pixels",
			image.ErrInvalidRaster, len(dst), stride, h, w)
	}
	if lanes := src.BlockLanes(); lanes > 0 {
		blockToRaster(src.Data(), dst, lanes, src.PaddedWidth(), stride, w, h)
	} else {
		planarToRaster(src.Data(), dst, src.PaddedWidth(), stride, w, h)
	}
	return nil
}

func planarToRaster(in []float32, dst []byte, spw, stride, w, h int) {
	for y0 := 0; y0 < h; y0 += TileSize {
		y1 := min(y0+TileSize, h)
		for x0 := 0; x0 < w; x0 += TileSize {
			x1 := min(x0+TileSize, w)
			for y := y0; y < y1; y++ {
				b := in[y*3*spw : y*3*spw+spw]
				g := in[y*3*spw+spw : y*3*spw+2*spw]
				r := in[y*3*spw+2*spw : (y+1)*3*spw]
				for x := x0; x < x1; x++ {
					px := dst[x*stride+y*4 : x*stride+y*4+4]
					px[0] = image.ToSRGB8(b[x])
					px[1] = image.ToSRGB8(g[x])
					px[2] = image.ToSRGB8(r[x])
					px[3] = 0xFF
				}
			}
		}
	}
}

func blockToRaster(in []float32, dst []byte, lanes, spw, stride, w, h int) {
	for y0 := 0; y0 < h; y0 += TileSize {
		y1 := min(y0+TileSize, h)
		for x0 := 0; x0 < w; x0 += TileSize {
			x1 := min(x0+TileSize, w)
			for y := y0; y < y1; y++ {
				row := in[y*3*spw : (y+1)*3*spw]
				for x := x0; x < x1; x += lanes {
					block := row[(x/lanes)*3*lanes : (x/lanes+1)*3*lanes]
					for l := range min(lanes, x1-x) {
						o := (x+l)*stride + y*4
						px := dst[o : o+4]
						px[0] = image.ToSRGB8(block[l])
						px[1] = image.ToSRGB8(block[lanes+l])
						px[2] = image.ToSRGB8(block[2*lanes+l])
						px[3] = 0xFF
					}
				}
			}
		}
	}
}
