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

import (
	"errors"
	"fmt"
	"math"
)

const (
	// FPOne is 1.0 in the Q2.14 tap format. It is one less than 1<<14 so
	// that a fully weighted 8-bit sample never overflows after the final
	// shift; the convolution compensates with a rounding constant.
	FPOne = 16383

	// MaxLen is the maximum number of taps of a kernel.
	MaxLen = 64

	// MaxSize is the largest supported source or target size.
	MaxSize = 65535

	// NumPhases is the number of interior kernels, one per quantized
	// sub-pixel phase.
	NumPhases = 128

	phaseShift = 16 - 7 // log2(NumPhases) high bits of the 16-bit fraction
)

// ErrInvalidSize is returned by Build for size combinations that have no
// kernels.
var ErrInvalidSize = errors.New("filter: invalid size")

// Kernel is one FIR kernel in Q2.14 fixed point.
//
// For a target sample whose source coordinate has integer part pos, the
// kernel weights source samples pos-Offset ... pos-Offset+Len()-1.
type Kernel struct {
	Taps   []int16
	Offset int
}

// Len returns the number of taps.
func (k *Kernel) Len() int { return len(k.Taps) }

// Sum returns the sum of the taps.
func (k *Kernel) Sum() int {
	s := 0
	for _, t := range k.Taps {
		s += int(t)
	}
	return s
}

// Block holds the kernels for every target position of one axis.
type Block struct {
	Source int
	Target int
	Type   Type

	// Increment is the 16.16 fixed-point source step per target sample and
	// Start the source coordinate of target sample 0.
	Increment int
	Start     int

	// Kernels is the deduplicated pool: NumPhases interior kernels followed
	// by the border kernels. Indices maps each target position to a pool
	// entry.
	Kernels []Kernel
	Indices []int
}

// At returns the kernel of target position i.
func (b *Block) At(i int) *Kernel {
	return &b.Kernels[b.Indices[i]]
}

// Position returns the integer source coordinate of target position i.
func (b *Block) Position(i int) int {
	return (b.Start + b.Increment*i) >> 16
}

// NumBorderKernels returns how many pool entries are border kernels.
func (b *Block) NumBorderKernels() int {
	return len(b.Kernels) - NumPhases
}

// Increment returns the 16.16 fixed-point step for resampling an axis of
// size source to size target with filter t, and the coordinate of the first
// target sample.
//
// Downsampling steps by source<<16/target+1, biased so the last sample never
// reads past the source, and starts half a step minus half a pixel in.
// Bicubic maps the first and last samples of both axes onto each other.
func Increment(source, target int, t Type) (inc, start int) {
	if t == Bicubic {
		if source == 1 || target == 1 {
			inc = source << 16 / target
		} else {
			inc = (source - 1) << 16 / (target - 1)
		}
		return max(1, inc), 0
	}
	inc = source<<16/target + 1
	return inc, (inc - 65536) >> 1
}

// shape describes the continuous kernel sampled by a Block.
type shape struct {
	typ    Type
	mult   float64
	length int
	offset int
}

func shapeFor(source, target int, t Type) shape {
	if t == Bicubic {
		return shape{typ: t, mult: 1, length: 4, offset: 1}
	}
	factor := float64(source) / float64(target)
	length := min(MaxLen, int(5*factor))
	return shape{
		typ:    t,
		mult:   1 / factor,
		length: length,
		offset: (length - 1) / 2,
	}
}

// taps returns the normalized kernel for the 16-bit sub-pixel phase frac.
func (s shape) taps(frac uint16) []int16 {
	f := float64(frac) / 65535
	weights := make([]float64, s.length)
	sum := 0.0
	if s.typ == Bicubic {
		bc := BicubicTaps(f)
		copy(weights, bc[:])
		for _, w := range bc {
			sum += w
		}
	} else {
		for i := range weights {
			weights[i] = EvaluateIntegrated(s.typ, float64(i-s.offset)-f, s.mult)
			sum += weights[i]
		}
	}

	out := make([]int16, s.length)
	total := 0
	for i, w := range weights {
		out[i] = roundToInt16(FPOne * w / sum)
		total += int(out[i])
	}
	out[0] += int16(FPOne - total)
	return out
}

// roundToInt16 rounds half away from zero.
func roundToInt16(d float64) int16 {
	return int16(math.Round(d))
}

// normalize scales taps so they sum to exactly FPOne, adding the rounding
// remainder to tap 0. If the taps do not sum to a positive value the
// tap at center takes the full weight.
func normalize(taps []int16, center int) {
	sum := 0
	for _, t := range taps {
		sum += int(t)
	}
	if sum <= 0 {
		clear(taps)
		taps[max(0, min(center, len(taps)-1))] = FPOne
		return
	}
	total := 0
	for i, t := range taps {
		taps[i] = int16(int(t) * FPOne / sum)
		total += int(taps[i])
	}
	taps[0] += int16(FPOne - total)
}

// Build generates the kernel block for resampling an axis of size source to
// size target. Downsampling types require target <= source; Bicubic accepts
// any pair of sizes.
func Build(source, target int, t Type) (*Block, error) {
	switch {
	case source <= 0 || target <= 0:
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidSize, source, target)
	case source > MaxSize || target > MaxSize:
		return nil, fmt.Errorf("%w: %d -> %d exceeds %d", ErrInvalidSize, source, target, MaxSize)
	case t != Bicubic && !t.IsDownsampling():
		return nil, fmt.Errorf("%w: no kernels for filter %v", ErrInvalidSize, t)
	case t != Bicubic && target > source:
		return nil, fmt.Errorf("%w: %v cannot enlarge %d -> %d", ErrInvalidSize, t, source, target)
	}

	s := shapeFor(source, target, t)
	inc, x := Increment(source, target, t)

	borderPerPixel := int(math.Ceil(max(1, 65536/float64(inc))))
	b := &Block{
		Source:    source,
		Target:    target,
		Type:      t,
		Increment: inc,
		Start:     x,
		Kernels:   make([]Kernel, NumPhases, NumPhases+borderPerPixel*(2*s.offset+1)),
		Indices:   make([]int, target),
	}

	const phaseStep = 65535 / (NumPhases - 1)
	for i := range NumPhases {
		b.Kernels[i] = Kernel{Taps: s.taps(uint16(i * phaseStep)), Offset: s.offset}
	}

	for i := range target {
		pos, frac := x>>16, uint16(x&0xFFFF)
		switch {
		case pos < s.offset:
			// Left border: cut the taps that would read before column 0.
			cut := s.offset - pos
			taps := s.taps(frac)[cut:]
			taps = taps[:min(len(taps), source)]
			normalize(taps, s.offset-cut)
			b.Indices[i] = len(b.Kernels)
			b.Kernels = append(b.Kernels, Kernel{Taps: taps, Offset: pos})
		case pos-s.offset+s.length > source:
			// Right border: cut the taps that would read past the end.
			n := min(source-pos+s.offset, source)
			taps := s.taps(frac)[:n]
			normalize(taps, s.offset)
			b.Indices[i] = len(b.Kernels)
			b.Kernels = append(b.Kernels, Kernel{Taps: taps, Offset: s.offset})
		default:
			b.Indices[i] = int(frac >> phaseShift)
		}
		x += inc
	}
	return b, nil
}
