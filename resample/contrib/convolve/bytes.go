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

package convolve

import (
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// fpHalf is added before the final >>14. Taps sum to FPOne = 16383 but the
// shift divides by 16384, so 255 brings a fully weighted 255 back to 255.
const fpHalf = 255

// ParallelFor runs fn over a partition of [0, n). A nil ParallelFor runs
// fn(0, n) on the calling goroutine.
type ParallelFor func(n int, fn func(start, end int))

// BytePass describes one scalar pass over an 8-bit raster. The pass filters
// along rows and transposes: source row FirstRow+j becomes output column j.
type BytePass struct {
	// Start and Increment are the 16.16 fixed-point source x of the first
	// output sample and the step between output samples.
	Start     int
	Increment int
	// FilterOffset is the target index of the first output sample.
	FilterOffset int
	// Length is the number of output samples per source row.
	Length int
	// FirstRow and Rows select the source rows to filter.
	FirstRow int
	Rows     int
}

// FilterBytes filters Rows rows of src along x with the Q2.14 kernels of b
// and returns a BGRA raster of Rows x Length pixels holding the transposed
// result: output pixel (j, i) is target sample i of source row FirstRow+j.
// Alpha is set to 0xFF. Values stay in the source's 8-bit encoding.
func FilterBytes(src *image.Raster, b *filter.Block, pass BytePass, parallel ParallelFor) (*image.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if pass.Rows <= 0 || pass.FirstRow < 0 || pass.FirstRow+pass.Rows > src.Height {
		return nil, fmt.Errorf("%w: rows %d..%d of %d", ErrInvalidPass, pass.FirstRow, pass.FirstRow+pass.Rows, src.Height)
	}
	p := Pass{Start: pass.Start, Increment: pass.Increment, FilterOffset: pass.FilterOffset, Length: pass.Length}
	if err := p.check(src.Width, b.Target); err != nil {
		return nil, err
	}
	for i := range pass.Length {
		kernel := b.At(pass.FilterOffset + i)
		left := (pass.Start+pass.Increment*i)>>16 - kernel.Offset
		if left < 0 || left+kernel.Len() > src.Width {
			return nil, fmt.Errorf("%w: sample %d reads columns %d..%d of %d",
				ErrInvalidPass, i, left, left+kernel.Len(), src.Width)
		}
	}

	dst := &image.Raster{
		Pix:      make([]byte, pass.Length*4*pass.Rows),
		Width:    pass.Rows,
		Height:   pass.Length,
		Channels: 4,
	}
	run := func(start, end int) {
		filterByteRows(src, b, pass, dst.Pix, start, end)
	}
	if parallel == nil {
		run(0, pass.Rows)
	} else {
		parallel(pass.Rows, run)
	}
	return dst, nil
}

func filterByteRows(src *image.Raster, b *filter.Block, pass BytePass, dst []byte, start, end int) {
	ch := src.Channels
	dstStride := pass.Rows * 4
	for j := start; j < end; j++ {
		line := src.Row(pass.FirstRow + j)
		out := dst[j*4:]
		x := pass.Start
		for i := range pass.Length {
			kernel := b.At(pass.FilterOffset + i)
			s := line[(x>>16-kernel.Offset)*ch:]
			var v0, v1, v2 int
			for n, tap := range kernel.Taps {
				px := s[n*ch : n*ch+3]
				v0 += int(tap) * int(px[0])
				v1 += int(tap) * int(px[1])
				v2 += int(tap) * int(px[2])
			}
			d := out[i*dstStride : i*dstStride+4]
			d[0] = clampByte((v0 + fpHalf) >> 14)
			d[1] = clampByte((v1 + fpHalf) >> 14)
			d[2] = clampByte((v2 + fpHalf) >> 14)
			d[3] = 0xFF
			x += pass.Increment
		}
	}
}

func clampByte(v int) uint8 {
	return uint8(min(255, max(0, v)))
}
