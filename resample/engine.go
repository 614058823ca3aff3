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
	"log/slog"

	"github.com/ajroetker/go-resample/resample/contrib/convolve"
	"github.com/ajroetker/go-resample/resample/contrib/filter"
	"github.com/ajroetker/go-resample/resample/contrib/filtercache"
	"github.com/ajroetker/go-resample/resample/contrib/image"
	"github.com/ajroetker/go-resample/resample/contrib/workerpool"
)

// Path is the implementation a resize runs on.
type Path int

const (
	PathPointSample Path = iota
	PathGeneric
	PathSSE
	PathAVX2
)

func (p Path) String() string {
	switch p {
	case PathPointSample:
		return "point"
	case PathGeneric:
		return "generic"
	case PathSSE:
		return "sse"
	case PathAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// Engine resamples BGR and BGRA rasters. It owns a kernel cache and an
// executor; both are safe for concurrent resizes, and so is the Engine.
//
// The generic implementation filters the 8-bit sRGB samples directly. The
// SSE and AVX2 implementations convert to 12-bit linear light first, so
// their results differ slightly from the generic ones on non-uniform
// images.
type Engine struct {
	cpu      CPUType
	backend  convolve.Backend
	cache    *filtercache.Cache
	executor Executor
	pool     *workerpool.Pool // owned, nil if the executor was injected
	logger   *slog.Logger
}

// New creates an engine. The CPU type is resolved and the convolution
// backend chosen once, here.
func New(opts ...Option) (*Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		cpu:      o.cpu.resolve(),
		executor: o.executor,
		cache:    o.cache,
		logger:   o.logger,
	}
	if e.cpu < CPUGeneric || e.cpu > CPUAVX2 {
		return nil, fmt.Errorf("resample: invalid cpu type %d", int(o.cpu))
	}
	if lanes := e.cpu.Lanes(); lanes > 0 {
		b, err := convolve.NewBackend(lanes)
		if err != nil {
			return nil, err
		}
		e.backend = b
	}
	if e.cache == nil {
		var cacheOpts []filtercache.Option
		if o.logger != nil {
			cacheOpts = append(cacheOpts, filtercache.WithLogger(o.logger))
		}
		e.cache = filtercache.New(filtercache.DefaultCapacity, cacheOpts...)
	}
	if e.executor == nil {
		e.pool = workerpool.New(o.workers)
		e.executor = e.pool
	}
	e.log().Debug("resample: engine created", "cpu", e.cpu, "kernels", convolve.Target(), "workers", e.executor.NumWorkers())
	return e, nil
}

// Close releases the worker pool the engine created. An injected executor
// is left running.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// CPU returns the resolved CPU type.
func (e *Engine) CPU() CPUType { return e.cpu }

// Cache returns the engine's kernel cache.
func (e *Engine) Cache() *filtercache.Cache { return e.cache }

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// Path returns the implementation Resample would use.
func (e *Engine) Path(source, full Size, kind filter.Type, highQuality bool) Path {
	if !highQuality || kind == filter.None || Direction(source, full) == NoResize {
		return PathPointSample
	}
	switch e.cpu {
	case CPUSSE:
		return PathSSE
	case CPUAVX2:
		return PathAVX2
	default:
		return PathGeneric
	}
}

// Resample computes the clip x offset part of src resized to full. Without
// highQuality, with filter.None or when no resize is needed it point
// samples; otherwise it filters with kind when shrinking and with bicubic
// kernels when any axis grows.
func (e *Engine) Resample(full Size, offset Point, clip Size, src Source, kind filter.Type, highQuality bool) (*image.Raster, error) {
	path := e.Path(src.Size, full, kind, highQuality)
	dir := Direction(src.Size, full)
	e.log().Debug("resample: start", "path", path, "direction", dir,
		"source", src.Size, "full", full, "clip", clip, "filter", kind)

	switch {
	case path == PathPointSample:
		return e.PointSample(full, offset, clip, src)
	case dir == DownSample:
		return e.ResampleDown(full, offset, clip, src, kind)
	default:
		return e.ResampleUp(full, offset, clip, src)
	}
}

// ResampleDown shrinks src to full with the downsampling filter kind and
// returns the clip x offset part as a BGRA raster with opaque alpha.
func (e *Engine) ResampleDown(full Size, offset Point, clip Size, src Source, kind filter.Type) (*image.Raster, error) {
	r, err := newRequest(full, offset, clip, src)
	if err != nil {
		return nil, err
	}
	if full.W > src.Size.W || full.H > src.Size.H {
		return nil, fmt.Errorf("%w: cannot downsample %v to %v", ErrInvalidGeometry, src.Size, full)
	}
	if !kind.IsDownsampling() {
		return nil, fmt.Errorf("%w: %v is not a downsampling filter", ErrInvalidGeometry, kind)
	}
	return e.filter(r, kind)
}

// ResampleUp resizes src to full with bicubic kernels and returns the
// clip x offset part as a BGRA raster with opaque alpha.
func (e *Engine) ResampleUp(full Size, offset Point, clip Size, src Source) (*image.Raster, error) {
	r, err := newRequest(full, offset, clip, src)
	if err != nil {
		return nil, err
	}
	return e.filter(r, filter.Bicubic)
}

func (e *Engine) filter(r request, kind filter.Type) (*image.Raster, error) {
	if e.backend == nil {
		return e.generic(r, kind)
	}
	return e.linear(r, kind)
}
