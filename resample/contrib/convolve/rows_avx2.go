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


//go:build amd64 && goexperiment.simd

package convolve

import (
	"simd/archsimd"
	"unsafe"

	"github.com/ajroetker/go-resample/resample/contrib/image"
)

func filterRow8AVX2(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	zero := archsimd.BroadcastFloat32x8(0)
	limit := archsimd.BroadcastFloat32x8(image.Linear12Max)
	for bx := range blocks {
		x := bx * 8
		accB, accG, accR := zero, zero, zero
		for i := range n {
			tap := archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&taps[i*8])))
			off := i*rowLen + x
			accB = tap.MulAdd(archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off]))), accB)
			accG = tap.MulAdd(archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off+pw]))), accG)
			accR = tap.MulAdd(archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off+2*pw]))), accR)
		}
		if round {
			accB = accB.Max(zero).Min(limit).RoundToEven()
			accG = accG.Max(zero).Min(limit).RoundToEven()
			accR = accR.Max(zero).Min(limit).RoundToEven()
		}
		o := bx * 24
		accB.Store((*[8]float32)(unsafe.Pointer(&out[o])))
		accG.Store((*[8]float32)(unsafe.Pointer(&out[o+8])))
		accR.Store((*[8]float32)(unsafe.Pointer(&out[o+16])))
	}
}

// filterRow4AVX2 computes two 4-lane blocks per iteration: the source
// columns of adjacent blocks are contiguous, so one 8-lane accumulator
// covers both and its halves are scattered to the two blocks. An odd last
// block is staged through zero-padded buffers so every column sees the same
// fused arithmetic.
func filterRow4AVX2(out, rows, taps []float32, n, rowLen, pw, blocks int, round bool) {
	zero := archsimd.BroadcastFloat32x8(0)
	limit := archsimd.BroadcastFloat32x8(image.Linear12Max)
	var buf [3][8]float32
	for bx := 0; bx < blocks; bx += 2 {
		x := bx * 4
		pair := bx+2 <= blocks
		accB, accG, accR := zero, zero, zero
		for i := range n {
			tap := archsimd.BroadcastFloat32x8(taps[i*4])
			off := i*rowLen + x
			var vb, vg, vr archsimd.Float32x8
			if pair {
				vb = archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off])))
				vg = archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off+pw])))
				vr = archsimd.LoadFloat32x8((*[8]float32)(unsafe.Pointer(&rows[off+2*pw])))
			} else {
				copy(buf[0][:4], rows[off:off+4])
				copy(buf[1][:4], rows[off+pw:off+pw+4])
				copy(buf[2][:4], rows[off+2*pw:off+2*pw+4])
				vb = archsimd.LoadFloat32x8(&buf[0])
				vg = archsimd.LoadFloat32x8(&buf[1])
				vr = archsimd.LoadFloat32x8(&buf[2])
			}
			accB = tap.MulAdd(vb, accB)
			accG = tap.MulAdd(vg, accG)
			accR = tap.MulAdd(vr, accR)
		}
		if round {
			accB = accB.Max(zero).Min(limit).RoundToEven()
			accG = accG.Max(zero).Min(limit).RoundToEven()
			accR = accR.Max(zero).Min(limit).RoundToEven()
		}
		accB.Store(&buf[0])
		accG.Store(&buf[1])
		accR.Store(&buf[2])
		lo := out[bx*12 : bx*12+12]
		for c := range 3 {
			copy(lo[c*4:c*4+4], buf[c][:4])
		}
		if pair {
			hi := out[bx*12+12 : bx*12+24]
			for c := range 3 {
				copy(hi[c*4:c*4+4], buf[c][4:])
			}
		}
	}
}
