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

package chunklist

import (
	"github.com/logrange/chunklist/pkg/alloc"
	"github.com/pkg/errors"
)

// noChunk is the link value of the chain ends
const noChunk = -1

// chunk is a record of the chunks arena. The buffer always has the chunk
// capacity length, n of its slots are occupied. prev and next are positions
// of the neighbours in the arena, they are navigational only, the arena owns
// the records.
type chunk[T any] struct {
	buf  []T
	n    int
	prev int
	next int
}

// copyFrom copies all the slots and the occupancy of src, the links stay
func (c *chunk[T]) copyFrom(src *chunk[T], cp func(T) T) {
	if cp == nil {
		copy(c.buf, src.buf)
	} else {
		for i := 0; i < src.n; i++ {
			c.buf[i] = cp(src.buf[i])
		}
	}
	c.n = src.n
}

// allocator returns the list allocator, the Heap for zero value lists
func (l *List[T, N]) allocator() alloc.Allocator[T] {
	if l.alloc == nil {
		l.alloc = alloc.NewHeap[T]()
	}
	return l.alloc
}

// head returns the arena position of the first chunk in the chain
func (l *List[T, N]) head() int {
	if len(l.chunks) == 0 {
		return noChunk
	}
	return 0
}

// grow allocates an empty chunk and links it to the tail of the chain
func (l *List[T, N]) grow() error {
	buf, err := l.allocator().Allocate(chunkSize[N]())
	if err != nil {
		return errors.Wrapf(err, "could not allocate chunk #%d", len(l.chunks))
	}
	pos := len(l.chunks)
	c := chunk[T]{buf: buf, prev: pos - 1, next: noChunk}
	if pos > 0 {
		l.chunks[pos-1].next = pos
	}
	l.chunks = append(l.chunks, c)
	return nil
}

// dropTail removes the last chunk of the chain and returns its storage
func (l *List[T, N]) dropTail() {
	last := len(l.chunks) - 1
	l.allocator().Deallocate(l.chunks[last].buf)
	l.chunks[last] = chunk[T]{}
	l.chunks = l.chunks[:last]
	if last > 0 {
		l.chunks[last-1].next = noChunk
	}
}

// release returns storage of all the chunks and leaves the list with no chunks
func (l *List[T, N]) release() {
	for i := range l.chunks {
		l.allocator().Deallocate(l.chunks[i].buf)
	}
	l.chunks = nil
	l.size = 0
}

// slot returns address of the element i, no bounds check
func (l *List[T, N]) slot(i int) *T {
	n := chunkSize[N]()
	return &l.chunks[i/n].buf[i%n]
}

// pushBack appends v. The element goes to the chunk size/N, which is either
// the partially filled tail of the occupied prefix or a reserve chunk, a new
// chunk is allocated only when there is no such one.
func (l *List[T, N]) pushBack(v T) error {
	ci := l.size / chunkSize[N]()
	if ci == len(l.chunks) {
		if err := l.grow(); err != nil {
			return err
		}
	}
	c := &l.chunks[ci]
	c.buf[c.n] = v
	c.n++
	l.size++
	return nil
}

// popBack removes the last element, the list must not be empty. The chunk
// which becomes empty stays in the chain as reserve.
func (l *List[T, N]) popBack() {
	l.size--
	c := &l.chunks[l.size/chunkSize[N]()]
	c.n--
	var zero T
	c.buf[c.n] = zero
}

// truncate pops elements until the list has size elements
func (l *List[T, N]) truncate(size int) {
	for l.size > size {
		l.popBack()
	}
}

// rollback shrinks the list back to size elements and returns the chunks
// grown after the arena had chunks records
func (l *List[T, N]) rollback(size, chunks int) {
	l.truncate(size)
	for len(l.chunks) > chunks {
		l.dropTail()
	}
}

// shiftRight opens a hole of k elements at position p. The list grows by k
// default elements first, then the elements starting from p are moved k
// slots later walking backward from the tail. The hole keeps stale values,
// the caller overwrites them. On allocation failure the list and its chunks
// are not changed.
func (l *List[T, N]) shiftRight(p, k int) error {
	old, oldChunks := l.size, len(l.chunks)
	var zero T
	for i := 0; i < k; i++ {
		if err := l.pushBack(zero); err != nil {
			l.rollback(old, oldChunks)
			return err
		}
	}
	for i := l.size - 1; i >= p+k; i-- {
		*l.slot(i) = *l.slot(i - k)
	}
	return nil
}

// shiftLeft removes k elements at position p moving the following elements
// k slots earlier, then drops the last k slots.
func (l *List[T, N]) shiftLeft(p, k int) {
	for i := p; i+k < l.size; i++ {
		*l.slot(i) = *l.slot(i + k)
	}
	l.truncate(l.size - k)
}
