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
	"github.com/eapache/queue"
	"github.com/jrivets/log4g"
	"github.com/pkg/errors"
)

type (
	// Pool recycles released buffers of one length. Buffers of other lengths
	// are served and released by the heap. At most maxIdle released buffers
	// are kept, the rest are dropped for the garbage collector.
	Pool[T any] struct {
		size    int
		maxIdle int
		idle    *queue.Queue
		stats   Stats
		logger  log4g.Logger
	}
)

// NewPool returns new Pool which keeps up to maxIdle buffers of size elements
func NewPool[T any](size, maxIdle int) *Pool[T] {
	if size < 1 {
		panic("size must be positive")
	}
	if maxIdle < 0 {
		panic("maxIdle must not be negative")
	}
	p := new(Pool[T])
	p.size = size
	p.maxIdle = maxIdle
	p.idle = queue.New()
	p.logger = log4g.GetLogger("alloc.Pool")
	return p
}

// Allocate is a part of Allocator
func (p *Pool[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		p.stats.Failed++
		return nil, errors.Wrapf(ErrOutOfMemory, "negative allocation size %d", n)
	}
	p.stats.Allocs++
	p.stats.LiveElements += int64(n)
	if n == p.size && p.idle.Length() > 0 {
		p.stats.Reused++
		return p.idle.Remove().([]T), nil
	}
	return make([]T, n), nil
}

// Deallocate is a part of Allocator. The buffer is zeroed before it gets to
// the idle queue, so a reused buffer always looks freshly made.
func (p *Pool[T]) Deallocate(buf []T) {
	p.stats.Frees++
	p.stats.LiveElements -= int64(len(buf))
	clear(buf)
	if len(buf) != p.size || cap(buf) < p.size {
		return
	}
	if p.idle.Length() >= p.maxIdle {
		p.logger.Trace("Idle queue is full (", p.maxIdle, "), dropping the buffer")
		return
	}
	p.idle.Add(buf[:p.size])
}

// Idle returns number of released buffers ready for reuse
func (p *Pool[T]) Idle() int {
	return p.idle.Length()
}

// Stats returns the allocator counters
func (p *Pool[T]) Stats() Stats {
	return p.stats
}
