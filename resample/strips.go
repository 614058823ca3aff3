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

	"github.com/ajroetker/go-resample/resample/contrib/image"
	"github.com/ajroetker/go-resample/resample/contrib/workerpool"
)

// Executor runs the jobs of one resize. workerpool.Pool implements it.
type Executor interface {
	// NumWorkers returns how many jobs may run at once.
	NumWorkers() int
	// ParallelFor calls fn over a partition of [0, n) and blocks until all
	// calls returned.
	ParallelFor(n int, fn func(start, end int))
	// Each calls fn(i) for every i in [0, n), blocks until all calls
	// returned and joins their errors.
	Each(n int, fn func(i int) error) error
}

var _ Executor = (*workerpool.Pool)(nil)

// Inline is an Executor that runs every job on the calling goroutine.
type Inline struct{}

func (Inline) NumWorkers() int { return 1 }

func (Inline) ParallelFor(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}

func (Inline) Each(n int, fn func(i int) error) error {
	var errs []error
	for i := range n {
		if err := fn(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Strip is a range of target rows processed by one job.
type Strip struct {
	Offset int
	Height int
}

// Strips partitions height rows into at most parts strips. Every strip but
// the last has a height that is a multiple of padding.
func Strips(height, padding, parts int) []Strip {
	if height <= 0 {
		return nil
	}
	parts = max(1, parts)
	padding = max(1, padding)
	per := max(padding, (height+parts-1)/parts)
	per = (per + padding - 1) / padding * padding

	strips := make([]Strip, 0, (height+per-1)/per)
	for off := 0; off < height; off += per {
		strips = append(strips, Strip{Offset: off, Height: min(per, height-off)})
	}
	return strips
}

// stripTarget allocates the BGRA target of a strip-processed resize: the
// row count is padded so every strip fits, and the returned raster covers
// only the logical rows.
func stripTarget(clip Size, padding int) (buf []byte, out *image.Raster) {
	stride := clip.W * 4
	buf = make([]byte, stride*image.Pad(clip.H, padding))
	return buf, &image.Raster{
		Pix:      buf[:stride*clip.H],
		Width:    clip.W,
		Height:   clip.H,
		Channels: 4,
	}
}
