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
	"fmt"
	stdimage "image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/ajroetker/go-resample/resample"
	"github.com/ajroetker/go-resample/resample/contrib/filter"
)

type job struct {
	engine        *resample.Engine
	width, height int
	kind          filter.Type
	highQuality   bool
	outDir        string
	enc           encoder
	compare       bool
	orient        orientation
}

type result struct {
	input, output string
	size          resample.Size
	path          resample.Path
	psnr          float64
}

func (j job) process(input string) (result, error) {
	img, err := decodeFile(input)
	if err != nil {
		return result{}, err
	}
	src, err := toSource(img)
	if err != nil {
		return result{}, err
	}
	full, err := targetSize(src.Size, j.width, j.height)
	if err != nil {
		return result{}, err
	}

	out, err := j.engine.Resample(full, resample.Point{}, full, src, j.kind, j.highQuality)
	if err != nil {
		return result{}, err
	}
	dst, err := fromRaster(out)
	if err != nil {
		return result{}, err
	}

	r := result{
		input: input,
		size:  full,
		path:  j.engine.Path(src.Size, full, j.kind, j.highQuality),
	}
	if j.compare {
		ref := stdimage.NewNRGBA(dst.Rect)
		draw.CatmullRom.Scale(ref, ref.Rect, img, img.Bounds(), draw.Src, nil)
		r.psnr = psnr(dst, ref)
	}

	if j.orient != (orientation{}) {
		turned, err := j.orient.apply(out)
		if err != nil {
			return result{}, err
		}
		if dst, err = fromRaster(turned); err != nil {
			return result{}, err
		}
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	r.output = filepath.Join(j.outDir, fmt.Sprintf("%s_%dx%d.%s", base, dst.Rect.Dx(), dst.Rect.Dy(), j.enc.ext))
	f, err := os.Create(r.output)
	if err != nil {
		return result{}, err
	}
	if err := j.enc.encode(f, dst); err != nil {
		f.Close()
		return result{}, fmt.Errorf("encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return result{}, err
	}
	return r, nil
}

// targetSize fills in a zero width or height from the source aspect ratio.
func targetSize(src resample.Size, w, h int) (resample.Size, error) {
	switch {
	case w <= 0 && h <= 0:
		return resample.Size{}, fmt.Errorf("no target size")
	case w <= 0:
		w = max(1, (src.W*h+src.H/2)/src.H)
	case h <= 0:
		h = max(1, (src.H*w+src.W/2)/src.W)
	}
	if w > resample.MaxSize || h > resample.MaxSize {
		return resample.Size{}, fmt.Errorf("target %dx%d exceeds %d", w, h, resample.MaxSize)
	}
	return resample.Size{W: w, H: h}, nil
}
