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

import (
	"errors"
	"fmt"
	"os"
	"unsafe"
)

// ErrOutOfMemory is returned when the pages backing an image cannot be
// allocated.
var ErrOutOfMemory = errors.New("image: out of memory")

// pageSize is the allocation granularity of allocPages.
var pageSize = os.Getpagesize()

// allocFloats returns n zeroed float32 values backed by whole pages, plus
// the function that hands the pages back.
func allocFloats(n int) ([]float32, func(), error) {
	size := Pad(n*4, pageSize)
	mem, free, err := allocPages(size)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %d bytes: %v", ErrOutOfMemory, size, err)
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&mem[0])), n), free, nil
}
