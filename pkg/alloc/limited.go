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

package alloc

import (
	"github.com/jrivets/log4g"
	"github.com/pkg/errors"
)

type (
	// Limited wraps another allocator and refuses allocations which would
	// push the number of live elements over the budget.
	Limited[T any] struct {
		a      Allocator[T]
		max    int64
		stats  Stats
		logger log4g.Logger
	}
)

// NewLimited returns new Limited allocator which allows at most maxElements
// live elements allocated from a. Nil a means a Heap allocator.
func NewLimited[T any](a Allocator[T], maxElements int) *Limited[T] {
	if maxElements < 0 {
		panic("maxElements must not be negative")
	}
	if a == nil {
		a = NewHeap[T]()
	}
	l := new(Limited[T])
	l.a = a
	l.max = int64(maxElements)
	l.logger = log4g.GetLogger("alloc.Limited")
	return l
}

// Allocate is a part of Allocator
func (l *Limited[T]) Allocate(n int) ([]T, error) {
	if n < 0 || l.stats.LiveElements+int64(n) > l.max {
		l.stats.Failed++
		l.logger.Debug("Refusing allocation of ", n, " elements, live=", l.stats.LiveElements, ", max=", l.max)
		return nil, errors.Wrapf(ErrOutOfMemory, "could not allocate %d elements, %d of %d are in use",
			n, l.stats.LiveElements, l.max)
	}
	buf, err := l.a.Allocate(n)
	if err != nil {
		l.stats.Failed++
		return nil, err
	}
	l.stats.Allocs++
	l.stats.LiveElements += int64(len(buf))
	return buf, nil
}

// Deallocate is a part of Allocator
func (l *Limited[T]) Deallocate(buf []T) {
	l.stats.Frees++
	l.stats.LiveElements -= int64(len(buf))
	l.a.Deallocate(buf)
}

// Available returns how many elements could be allocated yet
func (l *Limited[T]) Available() int {
	return int(l.max - l.stats.LiveElements)
}

// Stats returns the allocator counters
func (l *Limited[T]) Stats() Stats {
	return l.stats
}
