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


package main

import (
	"fmt"

	"github.com/ajroetker/go-resample/resample/contrib/image"
	"github.com/ajroetker/go-resample/resample/contrib/rotate"
)

// orientation is a clockwise rotation followed by an optional mirror,
// applied to the resampled raster.
type orientation struct {
	degrees int    // 0, 90, 180 or 270
	flip    string // "", "h" or "v"
}

func parseOrientation(degrees int, flip string) (orientation, error) {
	switch degrees {
	case 0, 90, 180, 270:
	default:
		return orientation{}, fmt.Errorf("--rotate must be 0, 90, 180 or 270, got %d", degrees)
	}
	switch flip {
	case "", "h", "v":
	default:
		return orientation{}, fmt.Errorf("--flip must be h or v, got %q", flip)
	}
	return orientation{degrees: degrees, flip: flip}, nil
}

func (o orientation) apply(r *image.Raster) (*image.Raster, error) {
	var err error
	switch o.degrees {
	case 90:
		r, err = rotate.Raster90(r, true)
	case 180:
		r, err = rotate.Raster180(r)
	case 270:
		r, err = rotate.Raster90(r, false)
	}
	if err != nil {
		return nil, err
	}
	switch o.flip {
	case "h":
		return rotate.MirrorH(r)
	case "v":
		return rotate.MirrorV(r)
	}
	return r, nil
}
