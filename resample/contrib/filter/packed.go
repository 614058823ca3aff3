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

package filter

import "fmt"

// PackedKernel is a kernel whose taps are float32 values replicated across
// the lanes of a vector: tap j occupies Taps[j*W : (j+1)*W].
type PackedKernel struct {
	Taps   []float32
	Offset int
	len    int
}

// Len returns the number of taps.
func (k *PackedKernel) Len() int { return k.len }

// Packed is a Block re-expressed for W-lane vector convolution. All kernel
// taps live in one contiguous pool; each kernel starts on a multiple of W.
// A Packed value is never modified after Pack returns.
type Packed struct {
	Lanes   int
	Block   *Block
	Kernels []PackedKernel
	Indices []int
	pool    []float32
}

// At returns the packed kernel of target position i.
func (p *Packed) At(i int) *PackedKernel {
	return &p.Kernels[p.Indices[i]]
}

// Pack converts b to float taps (tap / FPOne) replicated across lanes
// vector lanes. Target positions keep pointing at the same logical kernel.
func Pack(b *Block, lanes int) (*Packed, error) {
	if lanes <= 0 {
		return nil, fmt.Errorf("filter: invalid lane count %d", lanes)
	}
	total := 0
	for i := range b.Kernels {
		total += b.Kernels[i].Len()
	}

	p := &Packed{
		Lanes:   lanes,
		Block:   b,
		Kernels: make([]PackedKernel, len(b.Kernels)),
		Indices: b.Indices,
		pool:    make([]float32, total*lanes),
	}
	at := 0
	for i := range b.Kernels {
		k := &b.Kernels[i]
		n := k.Len() * lanes
		taps := p.pool[at : at+n : at+n]
		for j, t := range k.Taps {
			v := float32(t) / FPOne
			lane := taps[j*lanes : (j+1)*lanes]
			for l := range lane {
				lane[l] = v
			}
		}
		p.Kernels[i] = PackedKernel{Taps: taps, Offset: k.Offset, len: k.Len()}
		at += n
	}
	return p, nil
}
