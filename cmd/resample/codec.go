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

package main

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	_ "image/gif"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ajroetker/go-resample/resample"
	"github.com/ajroetker/go-resample/resample/contrib/image"
)

type encoder struct {
	ext    string
	encode func(io.Writer, stdimage.Image) error
}

func encoderFor(format string) (encoder, error) {
	switch format {
	case "png":
		return encoder{"png", png.Encode}, nil
	case "jpeg", "jpg":
		return encoder{"jpg", func(w io.Writer, m stdimage.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 92})
		}}, nil
	case "webp":
		return encoder{"webp", func(w io.Writer, m stdimage.Image) error {
			return nativewebp.Encode(w, m, nil)
		}}, nil
	default:
		return encoder{}, fmt.Errorf("unknown format %q", format)
	}
}

func decodeFile(path string) (stdimage.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// toSource converts a decoded image to a top-down source. Gray and
// paletted images are expanded to BGRA directly; other images go through
// NRGBA, and opaque ones are then packed as 3-channel BGR.
func toSource(img stdimage.Image) (resample.Source, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var (
		r   *image.Raster
		err error
	)
	switch m := img.(type) {
	case *stdimage.Gray:
		r, err = image.GrayToBGRA(m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], w, h, m.Stride)
	case *stdimage.Gray16:
		r, err = image.Gray16ToBGRA(m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], w, h, m.Stride, 16)
	case *stdimage.Paletted:
		r, err = image.PalettedToBGRA(m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], w, h, m.Stride, paletteBGRA(m.Palette))
	default:
		r = nrgbaToBGRA(img)
		if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
			r, err = image.BGRAToBGR(r)
		}
	}
	if err != nil {
		return resample.Source{}, err
	}
	return resample.Source{
		Pixels:   r.Pix,
		Size:     resample.Size{W: w, H: h},
		Channels: r.Channels,
	}, nil
}

func nrgbaToBGRA(img stdimage.Image) *image.Raster {
	b := img.Bounds()
	rgba := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	pix := rgba.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
	return &image.Raster{Pix: pix, Width: b.Dx(), Height: b.Dy(), Channels: 4}
}

// paletteBGRA packs p as B, G, R, reserved quads.
func paletteBGRA(p color.Palette) []byte {
	out := make([]byte, 0, 4*len(p))
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		out = append(out, n.B, n.G, n.R, 0)
	}
	return out
}

// fromRaster converts a BGRA or BGR raster to NRGBA.
func fromRaster(r *image.Raster) (*stdimage.NRGBA, error) {
	if r.Channels == 3 {
		var err error
		if r, err = image.BGRToBGRA(r); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := stdimage.NewNRGBA(stdimage.Rect(0, 0, r.Width, r.Height))
	for y := range r.Height {
		src := r.Row(y)
		dst := out.Pix[y*out.Stride:]
		for x := range r.Width {
			s := src[x*4 : x*4+4]
			d := dst[x*4 : x*4+4]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
		}
	}
	return out, nil
}

// psnr returns the peak signal to noise ratio of the color channels of a
// against b in dB. Identical images give +Inf.
func psnr(a, b *stdimage.NRGBA) float64 {
	var sum float64
	n := 0
	for y := range a.Rect.Dy() {
		ra := a.Pix[y*a.Stride:]
		rb := b.Pix[y*b.Stride:]
		for x := range a.Rect.Dx() {
			for c := range 3 {
				d := float64(ra[x*4+c]) - float64(rb[x*4+c])
				sum += d * d
				n++
			}
		}
	}
	if sum == 0 {
		return math.Inf(1)
	}
	mse := sum / float64(n)
	return 10 * math.Log10(255*255/mse)
}
