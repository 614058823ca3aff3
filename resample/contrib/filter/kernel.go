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
	"fmt"
	"math"
)

// Type identifies a resampling filter.
type Type int

const (
	// None disables filtering; the engine point samples.
	None Type = iota

	// Hermite is the BC cubic with B=0, C=0. Support is 1.
	Hermite

	// Mitchell is the BC cubic with B=1/3, C=1/3.
	Mitchell

	// Catrom is the BC cubic with B=0, C=1/2 (Catmull-Rom).
	Catrom

	// Lanczos2 is the 2-lobe Lanczos window.
	Lanczos2

	// Bicubic is the fixed 4-tap Catmull-Rom kernel used for upsampling.
	Bicubic
)

// String returns the lower-case name of the filter type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Hermite:
		return "hermite"
	case Mitchell:
		return "mitchell"
	case Catrom:
		return "catrom"
	case Lanczos2:
		return "lanczos2"
	case Bicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

// IsDownsampling reports whether t is one of the downsampling families.
func (t Type) IsDownsampling() bool {
	return t >= Hermite && t <= Lanczos2
}

// ParseType returns the filter type whose String is s.
func ParseType(s string) (Type, error) {
	for t := None; t <= Bicubic; t++ {
		if s == t.String() {
			return t, nil
		}
	}
	return None, fmt.Errorf("filter: unknown filter type %q", s)
}

// BC parameters of the cubic family.
const (
	mitchellB = 1.0 / 3.0
	mitchellC = 1.0 / 3.0
	catromB   = 0.0
	catromC   = 0.5
)

// cubicNear evaluates the |x| < 1 segment of a BC cubic.
func cubicNear(b, c, x float64) float64 {
	x = math.Abs(x)
	return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
}

// cubicFar evaluates the 1 <= |x| < 2 segment of a BC cubic.
func cubicFar(b, c, x float64) float64 {
	x = math.Abs(x)
	return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
}

// EvaluateCubic evaluates the Mitchell-Netravali BC cubic at x. The kernel
// is zero for |x| >= 2.
func EvaluateCubic(b, c, x float64) float64 {
	switch ax := math.Abs(x); {
	case ax < 1:
		return cubicNear(b, c, x)
	case ax < 2:
		return cubicFar(b, c, x)
	default:
		return 0
	}
}

// EvaluateLanczos2 evaluates the 2-lobe Lanczos kernel at x.
func EvaluateLanczos2(x float64) float64 {
	ax := math.Abs(x)
	switch {
	case ax < 1e-6:
		return 1
	case ax < 2:
		return 2 * math.Sin(math.Pi*x) * math.Sin(math.Pi/2*x) / (math.Pi * math.Pi * x * x)
	default:
		return 0
	}
}

// Evaluate returns the continuous kernel of a downsampling filter type at x.
// It returns 0 for None and Bicubic, which have no continuous form here.
func Evaluate(t Type, x float64) float64 {
	switch t {
	case Hermite:
		// Hermite never leaves the near segment; it has no negative lobe.
		if math.Abs(x) < 1 {
			return cubicNear(0, 0, x)
		}
		return 0
	case Mitchell:
		return EvaluateCubic(mitchellB, mitchellC, x)
	case Catrom:
		return EvaluateCubic(catromB, catromC, x)
	case Lanczos2:
		return EvaluateLanczos2(x)
	default:
		return 0
	}
}

// integrationSteps is the number of quadrature points per source pixel.
const integrationSteps = 32

// EvaluateIntegrated returns the kernel convolved with a box of one source
// pixel. x is in source pixel units and mult scales source pixels to kernel
// units (1/factor when downsampling by factor). The result is the sum of
// integrationSteps samples spread evenly over the box and is not divided by
// the step count; callers normalize.
func EvaluateIntegrated(t Type, x, mult float64) float64 {
	start := x*mult - mult*0.5
	step := mult / (integrationSteps - 1)
	sum := 0.0
	for range integrationSteps {
		sum += Evaluate(t, start)
		start += step
	}
	return sum
}

// BicubicTaps returns the four Catmull-Rom taps for a sample lying frac
// (0 <= frac <= 1) of the way from source pixel 1 to source pixel 2 of a
// 4-pixel window.
func BicubicTaps(frac float64) [4]float64 {
	return [4]float64{
		cubicFar(catromB, catromC, 1+frac),
		cubicNear(catromB, catromC, frac),
		cubicNear(catromB, catromC, 1-frac),
		cubicFar(catromB, catromC, 2-frac),
	}
}
