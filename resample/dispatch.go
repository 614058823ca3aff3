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
	"os"
	"strconv"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-resample/resample/contrib/convolve"
)

// CPUType selects the implementation of high quality resampling.
type CPUType int

const (
	// CPUAuto uses the best implementation the processor supports.
	CPUAuto CPUType = iota

	// CPUGeneric filters 8-bit sRGB samples with scalar integer arithmetic.
	CPUGeneric

	// CPUSSE filters 12-bit linear samples four lanes at a time.
	CPUSSE

	// CPUAVX2 filters 12-bit linear samples eight lanes at a time.
	CPUAVX2
)

// String returns a human-readable name for the CPU type.
func (c CPUType) String() string {
	switch c {
	case CPUAuto:
		return "auto"
	case CPUGeneric:
		return "generic"
	case CPUSSE:
		return "sse"
	case CPUAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// Lanes returns the vector width of the implementation, or 0 for the
// scalar one.
func (c CPUType) Lanes() int {
	switch c {
	case CPUSSE:
		return 4
	case CPUAVX2:
		return 8
	default:
		return 0
	}
}

// ParseCPUType parses the names returned by CPUType.String. Matching is
// exact; config.Fold normalizes user input first.
func ParseCPUType(s string) (CPUType, error) {
	for c := CPUAuto; c <= CPUAVX2; c++ {
		if s == c.String() {
			return c, nil
		}
	}
	return CPUAuto, fmt.Errorf("resample: unknown cpu type %q", s)
}

// detectedCPU is the CPU type CPUAuto resolves to.
var detectedCPU = detectCPU()

// detectCPU maps the go-highway dispatch level to a CPU type. The float
// paths are only chosen when the row kernels run on vector instructions;
// otherwise the integer path is faster.
func detectCPU() CPUType {
	if SIMDDisabled() || !convolve.Accelerated() {
		return CPUGeneric
	}
	switch hwy.CurrentLevel() {
	case hwy.DispatchAVX2, hwy.DispatchAVX512:
		return CPUAVX2
	case hwy.DispatchNEON, hwy.DispatchSVE, hwy.DispatchSME:
		return CPUSSE
	default:
		return CPUGeneric
	}
}

// DetectedCPU returns the CPU type CPUAuto resolves to.
func DetectedCPU() CPUType {
	return detectedCPU
}

// resolve maps CPUAuto to the detected type.
func (c CPUType) resolve() CPUType {
	if c == CPUAuto {
		return detectedCPU
	}
	return c
}

// SIMDDisabled reports whether vector paths are disabled for CPUAuto, either by
// RESAMPLE_NO_SIMD or by go-highway's HWY_NO_SIMD. A value that does not
// parse as a boolean counts as set.
func SIMDDisabled() bool {
	if v, ok := os.LookupEnv("RESAMPLE_NO_SIMD"); ok && v != "" {
		off, err := strconv.ParseBool(v)
		return off || err != nil
	}
	return hwy.NoSimdEnv()
}
