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
)

var (
	// ErrInvalidGeometry is returned before any allocation when sizes,
	// offsets or the channel count of a request are out of range.
	ErrInvalidGeometry = errors.New("resample: invalid geometry")

	// ErrOutOfMemory is returned when an intermediate buffer cannot be
	// allocated.
	ErrOutOfMemory = image.ErrOutOfMemory
)
