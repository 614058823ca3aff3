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

package image

import "math"

// Linear12Max is the largest 12-bit linear sample value.
const Linear12Max = 4095

// SRGB8ToLinear12 maps an 8-bit sRGB channel value to 12-bit linear light.
var SRGB8ToLinear12 [256]uint16

// Linear12ToSRGB8 maps a 12-bit linear light value back to 8-bit sRGB.
var Linear12ToSRGB8 [Linear12Max + 1]uint8

func init() {
	for i := range SRGB8ToLinear12 {
		lin := srgbToLinear(float64(i) / 255)
		SRGB8ToLinear12[i] = uint16(math.Round(lin * Linear12Max))
	}
	for i := range Linear12ToSRGB8 {
		s := linearToSRGB(float64(i) / Linear12Max)
		v := int(math.Round(s * 255))
		Linear12ToSRGB8[i] = uint8(max(0, min(255, v)))
	}
}

func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// ToSRGB8 converts a linear sample, which may lie slightly outside the 12-bit
// range or carry a fraction, to 8-bit sRGB.
func ToSRGB8(v float32) uint8 {
	i := int(v)
	if i < 0 {
		i = 0
	} else if i > Linear12Max {
		i = Linear12Max
	}
	return Linear12ToSRGB8[i]
}
