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
	"math"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// RowFunc computes one output row of a vertical pass in the block layout
// with w lanes. rows starts at the first source row the kernel reads; the
// i-th tap reads the planar row at rows[i*rowLen:], whose B, G and R planes
// begin at offsets 0, pw and 2*pw. taps holds n taps, each replicated w
// times. blocks is the number of w-wide column blocks to produce.
type RowFunc func(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool)

// Row kernels for 4 and 8 lanes. They are set by init() in the rows_*.go
// files to the best implementation for the build and processor.
var (
	FilterRow4 RowFunc = filterRow4Fallback
	FilterRow8 RowFunc = filterRow8Fallback
)

// kernelTarget names the implementation behind FilterRow4 and FilterRow8.
var kernelTarget = "fallback"

// Target returns the name of the row kernel implementation in use:
// "avx2", "neon" or "fallback".
func Target() string { return kernelTarget }

// Accelerated reports whether the row kernels run on vector instructions.
func Accelerated() bool { return kernelTarget != "fallback" }

func filterRow4Fallback(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	for bx := range blocks {
		filterBlock(out, rows, taps, 4, n, rowLen, pw, bx, round)
	}
}

func filterRow8Fallback(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	for bx := range blocks {
		filterBlock(out, rows, taps, 8, n, rowLen, pw, bx, round)
	}
}

// filterBlock computes the w columns of block bx for all three channels.
func filterBlock(out, rows, taps []float32, w, n, rowLen, pw, bx int, round bool) {
	x := bx * w
	block := out[bx*3*w : (bx+1)*3*w]
	clear(block)
	for i := range n {
		tap := taps[i*w]
		row := rows[i*rowLen+x:]
		for l := range w {
			block[l] += tap * row[l]
			block[w+l] += tap * row[pw+l]
			block[2*w+l] += tap * row[2*pw+l]
		}
	}
	if round {
		for l, v := range block {
			block[l] = clampRound(v)
		}
	}
}

// clampRound limits x to [0, Linear12Max] and rounds half to even, the
// default rounding mode of the vector units.
func clampRound(x float32) float32 {
	if x <= 0 {
		return 0
	}
	if x >= image.Linear12Max {
		return image.Linear12Max
	}
	return float32(math.RoundToEven(float64(x)))
}
