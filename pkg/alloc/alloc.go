// Copyright 2019 The logrange Authors
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

// Package alloc contains the raw storage providers used by chunklist. An
// allocator hands out slices of a requested length and takes them back. It
// never constructs or tracks individual elements.
//
// The allocators are not safe for concurrent use.
package alloc

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type (
	// Allocator is the storage boundary of the chunklist containers.
	Allocator[T any] interface {
		// Allocate returns storage for n elements or an error which cause is
		// ErrOutOfMemory.
		Allocate(n int) ([]T, error)

		// Deallocate releases storage previously obtained from Allocate. It
		// never fails.
		Deallocate(buf []T)
	}

	// Stats contains the allocator counters
	Stats struct {
		// Allocs is the number of successful Allocate calls
		Allocs int64
		// Frees is the number of Deallocate calls
		Frees int64
		// Reused counts allocations served from released buffers
		Reused int64
		// Failed counts refused allocations
		Failed int64
		// LiveElements is the number of elements handed out and not released yet
		LiveElements int64
	}

	// Heap allocates storage with make and lets the garbage collector
	// reclaim it. The zero value is ready to use.
	Heap[T any] struct {
		stats Stats
	}
)

// ErrOutOfMemory is returned when an allocator cannot provide the storage
var ErrOutOfMemory = errors.New("out of memory")

// NewHeap returns new Heap allocator
func NewHeap[T any]() *Heap[T] {
	return new(Heap[T])
}

// Allocate is a part of Allocator
func (h *Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		h.stats.Failed++
		return nil, errors.Wrapf(ErrOutOfMemory, "negative allocation size %d", n)
	}
	h.stats.Allocs++
	h.stats.LiveElements += int64(n)
	return make([]T, n), nil
}

// Deallocate is a part of Allocator. The buffer is zeroed so the values it
// referred to could be collected even if somebody still holds the slice.
func (h *Heap[T]) Deallocate(buf []T) {
	h.stats.Frees++
	h.stats.LiveElements -= int64(len(buf))
	clear(buf)
}

// Stats returns the allocator counters
func (h *Heap[T]) Stats() Stats {
	return h.stats
}

func (s Stats) String() string {
	return fmt.Sprintf("{allocs=%s, frees=%s, reused=%s, failed=%s, live=%s elements}",
		humanize.Comma(s.Allocs), humanize.Comma(s.Frees), humanize.Comma(s.Reused),
		humanize.Comma(s.Failed), humanize.Comma(s.LiveElements))
}
