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
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/image"
)

// MaxSize is the largest supported source or target dimension.
const MaxSize = filter.MaxSize

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Point is a pixel position.
type Point struct {
	X, Y int
}

// Source is an 8-bit BGR or BGRA raster whose rows are padded to 4 bytes.
type Source struct {
	Pixels   []byte
	Size     Size
	Channels int
	// BottomUp is set when the first row in Pixels is the bottom image row.
	BottomUp bool
}

func (s Source) raster() *image.Raster {
	return &image.Raster{
		Pix:      s.Pixels,
		Width:    s.Size.W,
		Height:   s.Size.H,
		Channels: s.Channels,
		BottomUp: s.BottomUp,
	}
}

// ResizeType is the direction of a resize.
type ResizeType int

const (
	// NoResize means the target has the size of the source.
	NoResize ResizeType = iota
	// DownSample means no axis grows.
	DownSample
	// UpSample means at least one axis grows.
	UpSample
)

func (t ResizeType) String() string {
	switch t {
	case NoResize:
		return "none"
	case DownSample:
		return "down"
	case UpSample:
		return "up"
	default:
		return "unknown"
	}
}

// Direction classifies resizing source to full.
func Direction(source, full Size) ResizeType {
	switch {
	case source == full:
		return NoResize
	case full.W <= source.W && full.H <= source.H:
		return DownSample
	default:
		return UpSample
	}
}

// request is one validated resize call.
type request struct {
	full   Size
	offset Point
	clip   Size
	src    Source
}

func newRequest(full Size, offset Point, clip Size, src Source) (request, error) {
	r := request{full: full, offset: offset, clip: clip, src: src}
	switch {
	case full.W < 1 || full.H < 1 || full.W > MaxSize || full.H > MaxSize:
		return r, fmt.Errorf("%w: target size %v", ErrInvalidGeometry, full)
	case clip.W < 1 || clip.H < 1:
		return r, fmt.Errorf("%w: clipped size %v", ErrInvalidGeometry, clip)
	case offset.X < 0 || offset.Y < 0 || offset.X+clip.W > full.W || offset.Y+clip.H > full.H:
		return r, fmt.Errorf("%w: clip %v at (%d,%d) outside %v", ErrInvalidGeometry, clip, offset.X, offset.Y, full)
	case src.Size.W > MaxSize || src.Size.H > MaxSize:
		return r, fmt.Errorf("%w: source size %v", ErrInvalidGeometry, src.Size)
	}
	if err := src.raster().Validate(); err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}
	return r, nil
}
