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
	"slices"
	"testing"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

func fill(t *testing.T, w, h, pad int, fn func(x, y, c int) float32) *image.LinearImage {
	t.Helper()
	img, err := image.NewLinearImage(w, h, false, pad)
	if err != nil {
		t.Fatalf("NewLinearImage: %v", err)
	}
	for y := range h {
		for x := range w {
			for c := range 3 {
				img.Set(x, y, c, fn(x, y, c))
			}
		}
	}
	return img
}

func sample(x, y, c int) float32 { return float32((x*7 + y*13 + c*1000) % 4096) }

func TestRotateInvolution(t *testing.T) {
	sizes := []struct{ w, h int }{
		{32, 32}, {64, 32}, {32, 96}, {128, 64},
	}
	for _, pad := range []int{4, 8} {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%dx%d/pad%d", size.w, size.h, pad), func(t *testing.T) {
				src := fill(t, size.w, size.h, pad, sample)
				defer src.Release()

				once, err := Rotate(src, pad)
				if err != nil {
					t.Fatalf("Rotate: %v", err)
				}
				defer once.Release()
				if once.Width() != size.h || once.Height() != size.w {
					t.Fatalf("rotated size %dx%d, want %dx%d", once.Width(), once.Height(), size.h, size.w)
				}

				twice, err := Rotate(once, pad)
				if err != nil {
					t.Fatalf("Rotate: %v", err)
				}
				defer twice.Release()
				if !slices.Equal(twice.Data(), src.Data()) {
					t.Error("Rotate(Rotate(x)) != x")
				}
			})
		}
	}
}

func TestRotateBlockLayout(t *testing.T) {
	for _, lanes := range []int{4, 8} {
		for _, size := range []struct{ w, h int }{{5, 3}, {33, 70}, {17, 40}} {
			t.Run(fmt.Sprintf("x%d/%dx%d", lanes, size.w, size.h), func(t *testing.T) {
				src, err := image.NewLinearImage(size.w, size.h, false, lanes)
				if err != nil {
					t.Fatal(err)
				}
				defer src.Release()
				src.SetBlockLanes(lanes)
				for y := range size.h {
					for x := range size.w {
						for c := range 3 {
							src.Set(x, y, c, sample(x, y, c))
						}
					}
				}

				dst, err := Rotate(src, lanes)
				if err != nil {
					t.Fatalf("Rotate: %v", err)
				}
				defer dst.Release()
				if dst.BlockLanes() != 0 {
					t.Errorf("BlockLanes() = %d, want planar", dst.BlockLanes())
				}
				if dst.PaddedHeight() != image.Pad(size.w, lanes) {
					t.Errorf("PaddedHeight() = %d, want %d", dst.PaddedHeight(), image.Pad(size.w, lanes))
				}
				for y := range size.h {
					for x := range size.w {
						for c := range 3 {
							if got, want := dst.At(y, x, c), sample(x, y, c); got != want {
								t.Fatalf("dst(%d,%d,%d) = %v, want %v", y, x, c, got, want)
							}
						}
					}
				}
			})
		}
	}
}

func TestRotateToRaster(t *testing.T) {
	// 5 rows of 3 samples become 3 raster rows of 5 pixels.
	src := fill(t, 3, 5, 4, func(x, y, c int) float32 {
		return float32(image.SRGB8ToLinear12[x*40+y*5+c])
	})
	defer src.Release()

	const stride = 5 * 4
	dst := make([]byte, 3*stride)
	if err := RotateToRaster(src, dst, stride); err != nil {
		t.Fatalf("RotateToRaster: %v", err)
	}
	for row := range 3 {
		for col := range 5 {
			px := dst[row*stride+col*4 : row*stride+col*4+4]
			want := []byte{0, 0, 0, 0xFF}
			for c := range 3 {
				want[c] = image.ToSRGB8(float32(image.SRGB8ToLinear12[row*40+col*5+c]))
			}
			if !slices.Equal(px, want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", col, row, px, want)
			}
		}
	}

	if err := RotateToRaster(src, dst[:len(dst)-1], stride); err == nil {
		t.Error("RotateToRaster accepted a short buffer")
	}
}

func TestRotateToRasterLayouts(t *testing.T) {
	// Sizes cross tile and block boundaries; both layouts must produce the
	// same pixels.
	for _, lanes := range []int{4, 8} {
		for _, size := range []struct{ w, h int }{{3, 5}, {33, 40}, {70, 9}} {
			t.Run(fmt.Sprintf("x%d/%dx%d", lanes, size.w, size.h), func(t *testing.T) {
				fn := func(x, y, c int) float32 { return float32(image.SRGB8ToLinear12[(x*3+y*5+c*7)%256]) }
				planar := fill(t, size.w, size.h, lanes, fn)
				defer planar.Release()
				block, err := image.NewLinearImage(size.w, size.h, false, lanes)
				if err != nil {
					t.Fatal(err)
				}
				defer block.Release()
				block.SetBlockLanes(lanes)
				for y := range size.h {
					for x := range size.w {
						for c := range 3 {
							block.Set(x, y, c, fn(x, y, c))
						}
					}
				}

				stride := size.h * 4
				want := make([]byte, size.w*stride)
				got := make([]byte, size.w*stride)
				if err := RotateToRaster(planar, want, stride); err != nil {
					t.Fatalf("RotateToRaster(planar): %v", err)
				}
				if err := RotateToRaster(block, got, stride); err != nil {
					t.Fatalf("RotateToRaster(block): %v", err)
				}
				if !slices.Equal(got, want) {
					t.Fatal("block layout raster differs from planar")
				}
				if px := want[(size.w-1)*stride+(size.h-1)*4:]; px[3] != 0xFF ||
					px[0] != image.ToSRGB8(fn(size.w-1, size.h-1, image.Blue)) {
					t.Errorf("last pixel = %v", px[:4])
				}
			})
		}
	}
}

func raster(w, h int) *image.Raster {
	r := &image.Raster{Pix: make([]byte, w*4*h), Width: w, Height: h, Channels: 4}
	for i := range w * h {
		r.Pix[i*4] = byte(i)
		r.Pix[i*4+1] = byte(i >> 8)
		r.Pix[i*4+3] = 0xFF
	}
	return r
}

func pixel(r *image.Raster, x, y int) []byte {
	return r.Row(y)[x*4 : x*4+4]
}

func TestRaster90(t *testing.T) {
	src := raster(70, 45)
	cw, err := Raster90(src, true)
	if err != nil {
		t.Fatalf("Raster90: %v", err)
	}
	ccw, err := Raster90(src, false)
	if err != nil {
		t.Fatalf("Raster90: %v", err)
	}
	if cw.Width != 45 || cw.Height != 70 {
		t.Fatalf("cw size %dx%d, want 45x70", cw.Width, cw.Height)
	}
	for y := range 45 {
		for x := range 70 {
			if !slices.Equal(pixel(cw, 44-y, x), pixel(src, x, y)) {
				t.Fatalf("cw: pixel (%d,%d) misplaced", x, y)
			}
			if !slices.Equal(pixel(ccw, y, 69-x), pixel(src, x, y)) {
				t.Fatalf("ccw: pixel (%d,%d) misplaced", x, y)
			}
		}
	}

	back, err := Raster90(cw, false)
	if err != nil {
		t.Fatalf("Raster90: %v", err)
	}
	if !slices.Equal(back.Pix, src.Pix) {
		t.Error("cw then ccw does not restore the raster")
	}
}

func TestRaster180AndMirrors(t *testing.T) {
	src := raster(9, 4)
	r180, err := Raster180(src)
	if err != nil {
		t.Fatal(err)
	}
	h, err := MirrorH(src)
	if err != nil {
		t.Fatal(err)
	}
	v, err := MirrorV(src)
	if err != nil {
		t.Fatal(err)
	}
	hv, err := MirrorV(h)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(hv.Pix, r180.Pix) {
		t.Error("MirrorV(MirrorH(x)) != Raster180(x)")
	}
	for y := range 4 {
		for x := range 9 {
			if !slices.Equal(pixel(h, 8-x, y), pixel(src, x, y)) {
				t.Fatalf("MirrorH: pixel (%d,%d) misplaced", x, y)
			}
			if !slices.Equal(pixel(v, x, 3-y), pixel(src, x, y)) {
				t.Fatalf("MirrorV: pixel (%d,%d) misplaced", x, y)
			}
		}
	}

	inPlace := slices.Clone(src.Pix)
	MirrorVInPlace(inPlace, 4, 9*4)
	if !slices.Equal(inPlace, v.Pix) {
		t.Error("MirrorVInPlace differs from MirrorV")
	}

	if _, err := MirrorH(&image.Raster{Pix: make([]byte, 12), Width: 2, Height: 2, Channels: 3}); err == nil {
		t.Error("MirrorH accepted a 24-bit raster")
	}
}

func TestCopyRect(t *testing.T) {
	src := raster(10, 10)
	dst, err := CopyRect(nil, 6, 5, image.Rect{X0: 1, Y0: 2, X1: 4, Y1: 5}, src, image.Rect{X0: 5, Y0: 5, X1: 8, Y1: 8})
	if err != nil {
		t.Fatalf("CopyRect: %v", err)
	}
	for y := range 5 {
		for x := range 6 {
			got := pixel(dst, x, y)
			if x >= 1 && x < 4 && y >= 2 {
				if want := pixel(src, x+4, y+3); !slices.Equal(got, want) {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
				}
			} else if !slices.Equal(got, []byte{0, 0, 0, 0}) {
				t.Errorf("pixel (%d,%d) = %v outside the rectangle", x, y, got)
			}
		}
	}

	bad := []struct {
		name     string
		dst, src image.Rect
	}{
		{"size mismatch", image.Rect{X1: 2, Y1: 2}, image.Rect{X1: 3, Y1: 2}},
		{"source outside", image.Rect{X1: 2, Y1: 2}, image.Rect{X0: 9, X1: 11, Y1: 2}},
		{"target outside", image.Rect{X0: 5, X1: 7, Y1: 2}, image.Rect{X1: 2, Y1: 2}},
	}
	for _, tt := range bad {
		if _, err := CopyRect(nil, 6, 5, tt.dst, src, tt.src); err == nil {
			t.Errorf("%s: CopyRect succeeded", tt.name)
		}
	}
}

func benchImage(b *testing.B, lanes int, block bool) *image.LinearImage {
	b.Helper()
	src, err := image.NewLinearImage(1024, 768, false, lanes)
	if err != nil {
		b.Fatal(err)
	}
	src.Fill(100, 2000, 4000)
	if block {
		src.SetBlockLanes(lanes)
	}
	return src
}

func BenchmarkRotate(b *testing.B) {
	for _, block := range []bool{false, true} {
		b.Run(fmt.Sprintf("block=%v", block), func(b *testing.B) {
			src := benchImage(b, 8, block)
			defer src.Release()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				dst, err := Rotate(src, 8)
				if err != nil {
					b.Fatal(err)
				}
				dst.Release()
			}
		})
	}
}

func BenchmarkRotateToRaster(b *testing.B) {
	for _, block := range []bool{false, true} {
		b.Run(fmt.Sprintf("block=%v", block), func(b *testing.B) {
			src := benchImage(b, 8, block)
			defer src.Release()
			stride := src.Height() * 4
			dst := make([]byte, src.Width()*stride)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := RotateToRaster(src, dst, stride); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
