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

// Package config reads resampling settings from the environment.
//
// Recognized variables:
//
//	RESAMPLE_CPU_TYPE              auto, generic, sse or avx2 (default auto)
//	RESAMPLE_CPU_CORES             worker count, 0 to 128 (default 0, GOMAXPROCS)
//	RESAMPLE_DOWNSAMPLING_FILTER   none, hermite, mitchell, catrom or lanczos2 (default catrom)
//	RESAMPLE_HIGH_QUALITY          bool (default true)
//
// Values are trimmed and case folded before matching. An invalid value keeps the default
// and is reported on the resample package logger.
package config

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ajroetker/go-resample/resample"
	"github.com/ajroetker/go-resample/resample/contrib/filter"
)

// Environment variable names.
const (
	EnvCPUType            = "RESAMPLE_CPU_TYPE"
	EnvCPUCores           = "RESAMPLE_CPU_CORES"
	EnvDownsamplingFilter = "RESAMPLE_DOWNSAMPLING_FILTER"
	EnvHighQuality        = "RESAMPLE_HIGH_QUALITY"
)

// Fold trims s and applies Unicode case folding, turning a user-supplied
// name into the form the resample parsers match exactly.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// MaxCores bounds RESAMPLE_CPU_CORES.
const MaxCores = 128

// Config holds the settings a viewer passes to every resize.
type Config struct {
	CPU                resample.CPUType
	Cores              int // 0 uses GOMAXPROCS
	DownsamplingFilter filter.Type
	HighQuality        bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		CPU:                resample.CPUAuto,
		DownsamplingFilter: filter.Catrom,
		HighQuality:        true,
	}
}

// Load reads the configuration from the process environment.
func Load() Config {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration through lookup, which has the signature
// of os.LookupEnv.
func LoadFrom(lookup func(string) (string, bool)) Config {
	c := Default()
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		if !ok {
			return "", false
		}
		v = Fold(v)
		return v, v != ""
	}

	if v, ok := get(EnvCPUType); ok {
		if t, err := resample.ParseCPUType(v); err == nil {
			c.CPU = t
		} else {
			invalid(EnvCPUType, v, c.CPU)
		}
	}
	if v, ok := get(EnvCPUCores); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= MaxCores {
			c.Cores = n
		} else {
			invalid(EnvCPUCores, v, c.Cores)
		}
	}
	if v, ok := get(EnvDownsamplingFilter); ok {
		if t, err := filter.ParseType(v); err == nil && (t == filter.None || t.IsDownsampling()) {
			c.DownsamplingFilter = t
		} else {
			invalid(EnvDownsamplingFilter, v, c.DownsamplingFilter)
		}
	}
	if v, ok := get(EnvHighQuality); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.HighQuality = b
		} else {
			invalid(EnvHighQuality, v, c.HighQuality)
		}
	}
	return c
}

func invalid(name, value string, def any) {
	resample.Logger().Warn("config: invalid value, using default", "var", name, "value", value, "default", def)
}

// Options returns the engine options for c.
func (c Config) Options() []resample.Option {
	return []resample.Option{
		resample.WithCPU(c.CPU),
		resample.WithWorkers(c.Cores),
	}
}

// Filter returns the filter a resize with this configuration uses, and
// whether it filters at all.
func (c Config) Filter() (filter.Type, bool) {
	return c.DownsamplingFilter, c.HighQuality && c.DownsamplingFilter != filter.None
}
