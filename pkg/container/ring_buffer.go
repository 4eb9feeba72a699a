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

package container

type (
	// RingBuffer is a fixed capacity FIFO of T with head and tail. When the
	// buffer is full, pushing a new value to the tail evicts the head one.
	// It is used for bounded histories, where the newest elements are at
	// the tail and are taken back by PopTail.
	//
	// Removed slots are zeroed, so the buffer doesn't keep references to
	// the elements it returned. RingBuffer is not safe for concurrent use.
	RingBuffer[T any] struct {
		v []T
		h int
		n int
	}
)

// NewRingBuffer returns new ring buffer with size elements reserved
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size < 1 {
		panic("size must be positive")
	}
	rb := new(RingBuffer[T])
	rb.v = make([]T, size)
	return rb
}

func (rb *RingBuffer[T]) Len() int {
	return rb.n
}

func (rb *RingBuffer[T]) Capacity() int {
	return len(rb.v)
}

// Push places v at the tail. If the buffer is full, the head element is
// evicted and returned with true.
func (rb *RingBuffer[T]) Push(v T) (T, bool) {
	var evicted T
	full := rb.IsFull()
	if full {
		evicted = rb.v[rb.h]
		rb.h = rb.getIdx(rb.h + 1)
	} else {
		rb.n++
	}
	rb.v[rb.getIdx(rb.h+rb.n-1)] = v
	return evicted, full
}

// PopHead removes and returns the oldest element. Will panic if the buffer
// is empty
func (rb *RingBuffer[T]) PopHead() T {
	if rb.n < 1 {
		panic("The buffer is empty")
	}
	var zero T
	v := rb.v[rb.h]
	rb.v[rb.h] = zero
	rb.h = rb.getIdx(rb.h + 1)
	rb.n--
	return v
}

// PopTail removes and returns the newest element. Will panic if the buffer
// is empty
func (rb *RingBuffer[T]) PopTail() T {
	if rb.n < 1 {
		panic("The buffer is empty")
	}
	var zero T
	i := rb.getIdx(rb.h + rb.n - 1)
	v := rb.v[i]
	rb.v[i] = zero
	rb.n--
	return v
}

func (rb *RingBuffer[T]) IsFull() bool {
	return rb.n == len(rb.v)
}

func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.n == 0
}

// Clear drops all the elements calling f (if not nil) for every of them,
// from head to tail.
func (rb *RingBuffer[T]) Clear(f func(v T)) {
	for rb.n > 0 {
		v := rb.PopHead()
		if f != nil {
			f(v)
		}
	}
	rb.h = 0
}

func (rb *RingBuffer[T]) getIdx(i int) int {
	if i >= len(rb.v) {
		return i - len(rb.v)
	}
	if i < 0 {
		return len(rb.v) + i
	}
	return i
}
