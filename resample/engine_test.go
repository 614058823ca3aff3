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
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/image"
	"github.com/ajroetker/go-resample/resample/contrib/workerpool"
)

var allCPUs = []CPUType{CPUGeneric, CPUSSE, CPUAVX2}

func newEngine(t testing.TB, cpu CPUType, opts ...Option) *Engine {
	t.Helper()
	e, err := New(append([]Option{WithCPU(cpu), WithWorkers(3)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%v): %v", cpu, err)
	}
	t.Cleanup(e.Close)
	return e
}

// newSource builds a top-down source filled by fn, which returns B, G, R.
func newSource(w, h, ch int, fn func(x, y int) [3]byte) Source {
	r := &image.Raster{Width: w, Height: h, Channels: ch}
	r.Pix = make([]byte, r.Stride()*h)
	for y := range h {
		row := r.Row(y)
		for x := range w {
			px := fn(x, y)
			copy(row[x*ch:], px[:])
			if ch == 4 {
				row[x*ch+3] = 0x80
			}
		}
	}
	return Source{Pixels: r.Pix, Size: Size{W: w, H: h}, Channels: ch}
}

func solid(w, h, ch int, b, g, r byte) Source {
	return newSource(w, h, ch, func(x, y int) [3]byte { return [3]byte{b, g, r} })
}

func pixel(out *image.Raster, x, y int) []byte {
	return out.Row(y)[x*4 : x*4+4]
}

func near(a, b byte, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestGenericGrayDownsample(t *testing.T) {
	e := newEngine(t, CPUGeneric)
	src := solid(100, 100, 4, 128, 128, 128)
	out, err := e.ResampleDown(Size{W: 10, H: 10}, Point{}, Size{W: 10, H: 10}, src, filter.Catrom)
	if err != nil {
		t.Fatalf("ResampleDown: %v", err)
	}
	if out.Width != 10 || out.Height != 10 || len(out.Pix) != 10*10*4 {
		t.Fatalf("got %dx%d with %d bytes, want 10x10 BGRA", out.Width, out.Height, len(out.Pix))
	}
	for y := range 10 {
		for x := range 10 {
			px := pixel(out, x, y)
			if !near(px[0], 128, 1) || !near(px[1], 128, 1) || !near(px[2], 128, 1) || px[3] != 0xFF {
				t.Fatalf("pixel (%d,%d) = %v, want [128 128 128 255] ±1", x, y, px)
			}
		}
	}
}

func TestBicubicUpsampleKeepsCorners(t *testing.T) {
	corners := [2][2][3]byte{
		{{0, 0, 255}, {0, 255, 0}},   // red, green
		{{255, 0, 0}, {0, 255, 255}}, // blue, yellow
	}
	for _, cpu := range allCPUs {
		for _, ch := range []int{3, 4} {
			t.Run(fmt.Sprintf("%v/ch=%d", cpu, ch), func(t *testing.T) {
				e := newEngine(t, cpu)
				src := newSource(2, 2, ch, func(x, y int) [3]byte { return corners[y][x] })
				out, err := e.ResampleUp(Size{W: 4, H: 4}, Point{}, Size{W: 4, H: 4}, src)
				if err != nil {
					t.Fatalf("ResampleUp: %v", err)
				}
				for _, c := range []struct{ sx, sy, tx, ty int }{
					{0, 0, 0, 0}, {1, 0, 3, 0}, {0, 1, 0, 3}, {1, 1, 3, 3},
				} {
					px := pixel(out, c.tx, c.ty)
					want := corners[c.sy][c.sx]
					for i := range 3 {
						if !near(px[i], want[i], 1) {
							t.Errorf("corner (%d,%d) = %v, want %v", c.tx, c.ty, px[:3], want)
							break
						}
					}
					if px[3] != 0xFF {
						t.Errorf("corner (%d,%d) alpha = %d, want 255", c.tx, c.ty, px[3])
					}
				}
			})
		}
	}
}

func TestUniformFieldInvariance(t *testing.T) {
	cases := []struct {
		src, full Size
		kind      filter.Type
	}{
		{Size{W: 100, H: 100}, Size{W: 10, H: 10}, filter.Catrom},
		{Size{W: 73, H: 41}, Size{W: 20, H: 41}, filter.Lanczos2},
		{Size{W: 64, H: 48}, Size{W: 63, H: 13}, filter.Mitchell},
		{Size{W: 300, H: 9}, Size{W: 7, H: 2}, filter.Hermite},
		{Size{W: 5, H: 7}, Size{W: 33, H: 50}, filter.Bicubic},
		{Size{W: 40, H: 10}, Size{W: 20, H: 30}, filter.Bicubic},
	}
	colors := [][3]byte{{0, 0, 0}, {255, 255, 255}, {17, 128, 240}}
	for _, cpu := range allCPUs {
		e := newEngine(t, cpu)
		for _, tc := range cases {
			for _, ch := range []int{3, 4} {
				for _, c := range colors {
					name := fmt.Sprintf("%v/%v->%v/%v/ch=%d/%v", cpu, tc.src, tc.full, tc.kind, ch, c)
					src := solid(tc.src.W, tc.src.H, ch, c[0], c[1], c[2])
					out, err := e.Resample(tc.full, Point{}, tc.full, src, tc.kind, true)
					if err != nil {
						t.Fatalf("%s: Resample: %v", name, err)
					}
					for i := 0; i < len(out.Pix); i += 4 {
						px := out.Pix[i : i+4]
						if !near(px[0], c[0], 1) || !near(px[1], c[1], 1) || !near(px[2], c[2], 1) || px[3] != 0xFF {
							t.Fatalf("%s: pixel %d = %v, want %v", name, i/4, px, c)
						}
					}
				}
			}
		}
	}
}

func TestNoResizeIsIdentity(t *testing.T) {
	src := newSource(37, 21, 3, func(x, y int) [3]byte {
		return [3]byte{byte(x * 7), byte(y * 11), byte(x ^ y)}
	})
	for _, cpu := range allCPUs {
		e := newEngine(t, cpu)
		out, err := e.Resample(src.Size, Point{}, src.Size, src, filter.Catrom, true)
		if err != nil {
			t.Fatalf("%v: Resample: %v", cpu, err)
		}
		for y := range src.Size.H {
			for x := range src.Size.W {
				want := src.Pixels[y*image.Pad(37*3, 4)+x*3:][:3]
				if got := pixel(out, x, y); !slices.Equal(got[:3], want) || got[3] != 0xFF {
					t.Fatalf("%v: pixel (%d,%d) = %v, want %v", cpu, x, y, got, want)
				}
			}
		}
	}
}

func TestDownsampleOneToOneSmooth(t *testing.T) {
	// A 1:1 filter pass keeps a linear ramp away from the borders.
	src := newSource(40, 24, 3, func(x, y int) [3]byte {
		v := byte(100 + x + y)
		return [3]byte{v, v + 10, v + 20}
	})
	for _, cpu := range allCPUs {
		e := newEngine(t, cpu)
		out, err := e.ResampleDown(src.Size, Point{}, src.Size, src, filter.Catrom)
		if err != nil {
			t.Fatalf("%v: ResampleDown: %v", cpu, err)
		}
		for y := 2; y < 22; y++ {
			for x := 2; x < 38; x++ {
				v := byte(100 + x + y)
				px := pixel(out, x, y)
				if !near(px[0], v, 1) || !near(px[1], v+10, 1) || !near(px[2], v+20, 1) {
					t.Fatalf("%v: pixel (%d,%d) = %v, want [%d %d %d]", cpu, x, y, px, v, v+10, v+20)
				}
			}
		}
	}
}

func TestLinearLightDivergence(t *testing.T) {
	// Alternating black and white columns halved: the generic path averages
	// sRGB values, the vector paths average light.
	src := newSource(64, 8, 3, func(x, y int) [3]byte {
		if x%2 == 0 {
			return [3]byte{}
		}
		return [3]byte{255, 255, 255}
	})
	target := Size{W: 32, H: 4}
	for _, tc := range []struct {
		cpu    CPUType
		lo, hi byte
	}{
		{CPUGeneric, 124, 131},
		{CPUSSE, 182, 194},
		{CPUAVX2, 182, 194},
	} {
		e := newEngine(t, tc.cpu)
		out, err := e.ResampleDown(target, Point{}, target, src, filter.Catrom)
		if err != nil {
			t.Fatalf("%v: ResampleDown: %v", tc.cpu, err)
		}
		for y := range target.H {
			for x := 4; x < target.W-4; x++ {
				if v := pixel(out, x, y)[1]; v < tc.lo || v > tc.hi {
					t.Errorf("%v: pixel (%d,%d) = %d, want %d..%d", tc.cpu, x, y, v, tc.lo, tc.hi)
				}
			}
		}
	}
}

func TestClippedMatchesFull(t *testing.T) {
	src := newSource(100, 70, 3, func(x, y int) [3]byte {
		return [3]byte{byte(x*5 + y), byte(y * 3), byte((x * y) % 251)}
	})
	cases := []struct {
		full   Size
		offset Point
		clip   Size
		kind   filter.Type
	}{
		{Size{W: 37, H: 23}, Point{X: 5, Y: 7}, Size{W: 20, H: 10}, filter.Catrom},
		{Size{W: 50, H: 35}, Point{X: 49, Y: 0}, Size{W: 1, H: 35}, filter.Lanczos2},
		{Size{W: 240, H: 190}, Point{X: 100, Y: 31}, Size{W: 64, H: 45}, filter.Bicubic},
	}
	for _, cpu := range allCPUs {
		e := newEngine(t, cpu)
		for _, tc := range cases {
			name := fmt.Sprintf("%v/%v/%v+%v", cpu, tc.full, tc.clip, tc.offset)
			whole, err := e.Resample(tc.full, Point{}, tc.full, src, tc.kind, true)
			if err != nil {
				t.Fatalf("%s: full: %v", name, err)
			}
			part, err := e.Resample(tc.full, tc.offset, tc.clip, src, tc.kind, true)
			if err != nil {
				t.Fatalf("%s: clipped: %v", name, err)
			}
			for y := range tc.clip.H {
				for x := range tc.clip.W {
					got := pixel(part, x, y)
					want := pixel(whole, tc.offset.X+x, tc.offset.Y+y)
					if !slices.Equal(got, want) {
						t.Fatalf("%s: pixel (%d,%d) = %v, want %v", name, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestBottomUpSource(t *testing.T) {
	fn := func(x, y int) [3]byte { return [3]byte{byte(x * 9), byte(y * 9), 77} }
	top := newSource(30, 20, 3, fn)
	bottom := newSource(30, 20, 3, func(x, y int) [3]byte { return fn(x, 19-y) })
	bottom.BottomUp = true

	target := Size{W: 12, H: 9}
	for _, cpu := range allCPUs {
		e := newEngine(t, cpu)
		want, err := e.Resample(target, Point{}, target, top, filter.Mitchell, true)
		if err != nil {
			t.Fatal(err)
		}
		got, err := e.Resample(target, Point{}, target, bottom, filter.Mitchell, true)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got.Pix, want.Pix) {
			t.Errorf("%v: bottom-up source resampled differently", cpu)
		}
	}
}

func TestPointSample(t *testing.T) {
	src := newSource(4, 4, 4, func(x, y int) [3]byte { return [3]byte{byte(x), byte(y), 9} })
	e := newEngine(t, CPUGeneric)

	down, err := e.PointSample(Size{W: 2, H: 2}, Point{}, Size{W: 2, H: 2}, src)
	if err != nil {
		t.Fatalf("PointSample: %v", err)
	}
	for y := range 2 {
		for x := range 2 {
			if got, want := pixel(down, x, y), []byte{byte(2 * x), byte(2 * y), 9, 0x80}; !slices.Equal(got, want) {
				t.Errorf("down (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	rgb := newSource(2, 2, 3, func(x, y int) [3]byte { return [3]byte{byte(x), byte(y), 9} })
	up, err := e.PointSample(Size{W: 4, H: 4}, Point{}, Size{W: 4, H: 4}, rgb)
	if err != nil {
		t.Fatalf("PointSample: %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			if got, want := pixel(up, x, y), []byte{byte(x / 2), byte(y / 2), 9, 0xFF}; !slices.Equal(got, want) {
				t.Errorf("up (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestInvalidGeometry(t *testing.T) {
	e := newEngine(t, CPUAVX2)
	src := solid(10, 10, 3, 1, 2, 3)
	short := src
	short.Pixels = short.Pixels[:len(short.Pixels)-1]
	twoCh := src
	twoCh.Channels = 2

	tests := []struct {
		name   string
		full   Size
		offset Point
		clip   Size
		src    Source
	}{
		{"zero target", Size{W: 0, H: 5}, Point{}, Size{W: 1, H: 1}, src},
		{"target too large", Size{W: MaxSize + 1, H: 5}, Point{}, Size{W: 1, H: 1}, src},
		{"empty clip", Size{W: 5, H: 5}, Point{}, Size{W: 0, H: 5}, src},
		{"negative offset", Size{W: 5, H: 5}, Point{X: -1}, Size{W: 2, H: 2}, src},
		{"clip outside", Size{W: 5, H: 5}, Point{X: 4}, Size{W: 2, H: 2}, src},
		{"short pixels", Size{W: 5, H: 5}, Point{}, Size{W: 5, H: 5}, short},
		{"two channels", Size{W: 5, H: 5}, Point{}, Size{W: 5, H: 5}, twoCh},
		{"empty source", Size{W: 5, H: 5}, Point{}, Size{W: 5, H: 5}, Source{Channels: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, highQuality := range []bool{false, true} {
				out, err := e.Resample(tt.full, tt.offset, tt.clip, tt.src, filter.Catrom, highQuality)
				if !errors.Is(err, ErrInvalidGeometry) || out != nil {
					t.Errorf("highQuality=%v: got (%v, %v), want ErrInvalidGeometry", highQuality, out, err)
				}
			}
		})
	}

	if _, err := e.ResampleDown(Size{W: 20, H: 5}, Point{}, Size{W: 20, H: 5}, src, filter.Catrom); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("ResampleDown enlarging: got %v, want ErrInvalidGeometry", err)
	}
	if _, err := e.ResampleDown(Size{W: 5, H: 5}, Point{}, Size{W: 5, H: 5}, src, filter.Bicubic); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("ResampleDown with bicubic: got %v, want ErrInvalidGeometry", err)
	}
}

func TestPathSelection(t *testing.T) {
	src := Size{W: 100, H: 100}
	tests := []struct {
		cpu         CPUType
		full        Size
		kind        filter.Type
		highQuality bool
		want        Path
	}{
		{CPUAVX2, Size{W: 50, H: 50}, filter.Catrom, true, PathAVX2},
		{CPUSSE, Size{W: 200, H: 50}, filter.Catrom, true, PathSSE},
		{CPUGeneric, Size{W: 50, H: 50}, filter.Lanczos2, true, PathGeneric},
		{CPUAVX2, Size{W: 50, H: 50}, filter.Catrom, false, PathPointSample},
		{CPUAVX2, Size{W: 50, H: 50}, filter.None, true, PathPointSample},
		{CPUSSE, src, filter.Catrom, true, PathPointSample},
	}
	for _, tt := range tests {
		e := newEngine(t, tt.cpu)
		if got := e.Path(src, tt.full, tt.kind, tt.highQuality); got != tt.want {
			t.Errorf("Path(%v, %v, %v, %v) = %v, want %v", tt.cpu, tt.full, tt.kind, tt.highQuality, got, tt.want)
		}
	}

	dirs := []struct {
		full Size
		want ResizeType
	}{
		{src, NoResize},
		{Size{W: 100, H: 99}, DownSample},
		{Size{W: 1, H: 1}, DownSample},
		{Size{W: 101, H: 10}, UpSample},
		{Size{W: 10, H: 101}, UpSample},
	}
	for _, d := range dirs {
		if got := Direction(src, d.full); got != d.want {
			t.Errorf("Direction(%v, %v) = %v, want %v", src, d.full, got, d.want)
		}
	}
}

func TestCacheSharedAcrossStrips(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()
	e := newEngine(t, CPUAVX2, WithExecutor(pool))

	src := solid(300, 200, 3, 50, 60, 70)
	target := Size{W: 150, H: 64}
	if _, err := e.ResampleDown(target, Point{}, target, src, filter.Catrom); err != nil {
		t.Fatalf("ResampleDown: %v", err)
	}

	strips := len(Strips(target.H, 8, pool.NumWorkers()))
	s := e.Cache().Stats()
	if s.Misses != 2 {
		t.Errorf("Misses = %d, want 2 (one block per axis)", s.Misses)
	}
	if s.Hits != 2*strips-2 {
		t.Errorf("Hits = %d, want %d for %d strips", s.Hits, 2*strips-2, strips)
	}
}

func TestConcurrentResizes(t *testing.T) {
	e := newEngine(t, CPUSSE)
	src := newSource(90, 60, 4, func(x, y int) [3]byte { return [3]byte{byte(x), byte(y), byte(x + y)} })
	target := Size{W: 31, H: 17}
	want, err := e.Resample(target, Point{}, target, src, filter.Lanczos2, true)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Resample(target, Point{}, target, src, filter.Lanczos2, true)
			if err != nil {
				t.Error(err)
				return
			}
			if !slices.Equal(got.Pix, want.Pix) {
				t.Error("concurrent resize differs")
			}
		}()
	}
	wg.Wait()
}

func TestNewRejectsUnknownCPU(t *testing.T) {
	if _, err := New(WithCPU(CPUType(42))); err == nil {
		t.Error("New accepted an unknown cpu type")
	}
}

func BenchmarkResample(b *testing.B) {
	src := solid(1920, 1080, 3, 10, 20, 30)
	target := Size{W: 640, H: 360}
	for _, cpu := range allCPUs {
		b.Run(cpu.String(), func(b *testing.B) {
			e := newEngine(b, cpu)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Resample(target, Point{}, target, src, filter.Catrom, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
