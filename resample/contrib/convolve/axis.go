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
	"errors"
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// ErrInvalidPass is returned when a pass does not fit its source image or
// kernel block.
var ErrInvalidPass = errors.New("convolve: invalid pass")

// Pass describes one application of a kernel block along an axis.
type Pass struct {
	// Start is the 16.16 fixed-point source coordinate of the first output
	// sample, relative to the first row or column of the source buffer.
	Start int
	// Increment is the 16.16 fixed-point source step per output sample.
	Increment int
	// FilterOffset is the target index of the first output sample. It
	// selects kernels, which are indexed in full-target coordinates.
	FilterOffset int
	// Length is the number of output samples.
	Length int
	// Round clamps and rounds the output to the 12-bit range. It is only
	// set on the second of two passes.
	Round bool
}

func (p Pass) check(sourceLen, target int) error {
	if p.Length <= 0 || p.Increment < 0 || p.Start < 0 {
		return fmt.Errorf("%w: length %d, start %d, increment %d", ErrInvalidPass, p.Length, p.Start, p.Increment)
	}
	if p.FilterOffset < 0 || p.FilterOffset+p.Length > target {
		return fmt.Errorf("%w: kernels %d..%d of %d", ErrInvalidPass, p.FilterOffset, p.FilterOffset+p.Length, target)
	}
	if last := (p.Start + p.Increment*(p.Length-1)) >> 16; last >= sourceLen {
		return fmt.Errorf("%w: source position %d past %d", ErrInvalidPass, last, sourceLen)
	}
	return nil
}

// FilterAxis filters the planar image src along its columns with the packed
// kernels k, producing pass.Length rows. Every output row j is
//
//	sum(k.At(FilterOffset+j).Taps[i] * src.Row(pos-Offset+i)), pos = (Start+Increment*j)>>16
//
// computed for all three channels by the row kernel for k.Lanes. The output
// uses the block layout with W = k.Lanes; its width is src.Width().
// The caller owns and must Release the result.
func FilterAxis(src *image.LinearImage, k *filter.Packed, pass Pass) (*image.LinearImage, error) {
	w := k.Lanes
	filterRow, err := rowFunc(w)
	switch {
	case err != nil:
		return nil, err
	case src.BlockLanes() != 0:
		return nil, fmt.Errorf("%w: source rows are not planar", ErrInvalidPass)
	case src.PaddedWidth()%w != 0:
		return nil, fmt.Errorf("%w: padded width %d is not a multiple of %d", ErrInvalidPass, src.PaddedWidth(), w)
	}
	if err := pass.check(src.Height(), k.Block.Target); err != nil {
		return nil, err
	}

	dst, err := image.NewLinearImage(src.Width(), pass.Length, false, w)
	if err != nil {
		return nil, err
	}
	dst.SetBlockLanes(w)

	pw := src.PaddedWidth()
	numBlocks := image.Pad(src.Width(), w) / w
	data := src.Data()
	rowLen := 3 * pw

	y := pass.Start
	for j := range pass.Length {
		kernel := k.At(pass.FilterOffset + j)
		top := y>>16 - kernel.Offset
		if top < 0 || top+kernel.Len() > src.Height() {
			dst.Release()
			return nil, fmt.Errorf("%w: output row %d reads rows %d..%d of %d",
				ErrInvalidPass, j, top, top+kernel.Len(), src.Height())
		}
		filterRow(dst.Row(j), data[top*rowLen:], kernel.Taps, kernel.Len(), rowLen, pw, numBlocks, pass.Round)
		y += pass.Increment
	}
	return dst, nil
}

func rowFunc(lanes int) (RowFunc, error) {
	switch lanes {
	case 4:
		return FilterRow4, nil
	case 8:
		return FilterRow8, nil
	}
	return nil, fmt.Errorf("%w: no row kernel for %d lanes", ErrInvalidPass, lanes)
}

// Backend is a float convolution specialized for one vector width. It is
// chosen once, when an engine is constructed.
type Backend interface {
	// Lanes returns the vector width, which is also the padding of the
	// images the backend produces.
	Lanes() int
	// FilterAxis is the package-level FilterAxis for this width.
	FilterAxis(src *image.LinearImage, k *filter.Packed, pass Pass) (*image.LinearImage, error)
}

type backend struct {
	lanes int
}

func (b backend) Lanes() int { return b.lanes }

func (b backend) FilterAxis(src *image.LinearImage, k *filter.Packed, pass Pass) (*image.LinearImage, error) {
	if k.Lanes != b.lanes {
		return nil, fmt.Errorf("%w: %d-lane kernels on a %d-lane backend", ErrInvalidPass, k.Lanes, b.lanes)
	}
	return FilterAxis(src, k, pass)
}

// NewBackend returns the backend for 4 or 8 lanes.
func NewBackend(lanes int) (Backend, error) {
	if _, err := rowFunc(lanes); err != nil {
		return nil, fmt.Errorf("convolve: no backend for %d lanes", lanes)
	}
	return backend{lanes: lanes}, nil
}
