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


//go:build arm64 && !noasm

package convolve

import (
	"github.com/ajroetker/go-highway/hwy/asm"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

func filterRow4NEON(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	for bx := range blocks {
		filterHalfNEON(out[bx*12:], rows, taps, 4, n, rowLen, pw, bx*4, round)
	}
}

// filterRow8NEON runs each 8-lane block as two 4-lane halves.
func filterRow8NEON(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	for bx := range blocks {
		block := out[bx*24:]
		filterHalfNEON(block, rows, taps, 8, n, rowLen, pw, bx*8, round)
		filterHalfNEON(block[4:], rows, taps[4:], 8, n, rowLen, pw, bx*8+4, round)
	}
}

// filterHalfNEON computes four columns starting at source column x. The B,
// G and R results go to block[0:4], block[w:w+4] and block[2w:2w+4]; taps
// are read with stride w.
func filterHalfNEON(block, rows, taps []float32, w, n, rowLen, pw, x int, round bool) {
	accB := asm.ZeroFloat32x4()
	accG := asm.ZeroFloat32x4()
	accR := asm.ZeroFloat32x4()
	for i := range n {
		tap := asm.LoadFloat32x4Slice(taps[i*w:])
		off := i*rowLen + x
		tap.MulAddAcc(asm.LoadFloat32x4Slice(rows[off:]), &accB)
		tap.MulAddAcc(asm.LoadFloat32x4Slice(rows[off+pw:]), &accG)
		tap.MulAddAcc(asm.LoadFloat32x4Slice(rows[off+2*pw:]), &accR)
	}
	if round {
		zero := asm.ZeroFloat32x4()
		limit := asm.BroadcastFloat32x4(image.Linear12Max)
		accB = accB.Max(zero).Min(limit).RoundToEven()
		accG = accG.Max(zero).Min(limit).RoundToEven()
		accR = accR.Max(zero).Min(limit).RoundToEven()
	}
	accB.StoreSlice(block)
	accG.StoreSlice(block[w:])
	accR.StoreSlice(block[2*w:])
}
