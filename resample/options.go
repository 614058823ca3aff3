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
	"log/slog"

	"github.com/ajroetker/go-resample/resample/contrib/filtercache"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Scalar engine running strips on the caller's goroutine.
//	e, err := resample.New(resample.WithCPU(resample.CPUGeneric), resample.WithExecutor(resample.Inline{}))
//	if err != nil {
//		return err
//	}
//	defer e.Close()
type Option func(*engineOptions)

type engineOptions struct {
	cpu      CPUType
	executor Executor
	cache    *filtercache.Cache
	logger   *slog.Logger
	workers  int
}

// WithCPU selects the implementation. CPUAuto, the default, uses the best
// one the processor supports.
func WithCPU(c CPUType) Option {
	return func(o *engineOptions) {
		o.cpu = c
	}
}

// WithExecutor sets the executor strips and rows run on. The engine does
// not close it.
func WithExecutor(x Executor) Option {
	return func(o *engineOptions) {
		o.executor = x
	}
}

// WithWorkers sets the size of the worker pool the engine creates when no
// executor is given. 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithCache shares a kernel cache between engines.
func WithCache(c *filtercache.Cache) Option {
	return func(o *engineOptions) {
		o.cache = c
	}
}

// WithLogger sets the engine's logger. Without it the engine logs to the
// package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
