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
	"fmt"

	"github.com/logrange/chunklist/pkg/alloc"
	"github.com/mohae/deepcopy"
)

type (
	// List is a sequence of T stored in chunks of N.ChunkSize() elements.
	// The zero value is an empty list with no chunks, which uses the Heap
	// allocator.
	List[T any, N Size] struct {
		chunks []chunk[T]
		size   int
		alloc  alloc.Allocator[T]
		hld    *holder[T, N]
	}

	// Option configures a List on construction
	Option[T any] func(o *options[T])

	options[T any] struct {
		alloc alloc.Allocator[T]
	}
)

// WithAllocator makes the list to take its chunks from a
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(o *options[T]) {
		o.alloc = a
	}
}

func newList[T any, N Size](opts []Option[T]) *List[T, N] {
	if cs := chunkSize[N](); cs < 1 {
		panic(fmt.Sprintf("chunk size must be positive, but %T defines %d", *new(N), cs))
	}
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	l := new(List[T, N])
	l.alloc = o.alloc
	return l
}

// New returns an empty list with one empty chunk allocated
func New[T any, N Size](opts ...Option[T]) (*List[T, N], error) {
	l := newList[T, N](opts)
	if err := l.grow(); err != nil {
		return nil, err
	}
	return l, nil
}

// Repeat returns a list of count copies of value
func Repeat[T any, N Size](count int, value T, opts ...Option[T]) (*List[T, N], error) {
	if count < 0 {
		return nil, errCount(count)
	}
	l, err := New[T, N](opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		if err := l.pushBack(value); err != nil {
			l.release()
			return nil, err
		}
	}
	return l, nil
}

// Sized returns a list of count zero values of T
func Sized[T any, N Size](count int, opts ...Option[T]) (*List[T, N], error) {
	var zero T
	return Repeat[T, N](count, zero, opts...)
}

// FromSlice returns a list with copies of vals in the same order. An empty
// vals gives a list with no chunks.
func FromSlice[T any, N Size](vals []T, opts ...Option[T]) (*List[T, N], error) {
	l := newList[T, N](opts)
	for _, v := range vals {
		if err := l.pushBack(v); err != nil {
			l.release()
			return nil, err
		}
	}
	return l, nil
}

// FromRange returns a list with copies of elements in [first, last) of
// another list, which may have a different chunk size.
func FromRange[T any, N Size, M Size](first, last ConstCursor[T, M], opts ...Option[T]) (*List[T, N], error) {
	vals, err := collect(first, last)
	if err != nil {
		return nil, err
	}
	return FromSlice[T, N](vals, opts...)
}

// Of returns a Heap allocated list of vals
func Of[T any, N Size](vals ...T) *List[T, N] {
	return Must(FromSlice[T, N](vals))
}

// Must returns l or panics if err is not nil
func Must[T any, N Size](l *List[T, N], err error) *List[T, N] {
	if err != nil {
		panic(err)
	}
	return l
}

// Allocator returns the allocator of the list
func (l *List[T, N]) Allocator() alloc.Allocator[T] {
	return l.allocator()
}

// Clone returns an independent deep copy of the chain. Every chunk is copied
// with all its slots and occupancy, elements are copied by assignment.
func (l *List[T, N]) Clone() (*List[T, N], error) {
	return l.cloneWith(l.allocator(), nil)
}

// CloneWith is Clone which takes the chunks of the copy from a
func (l *List[T, N]) CloneWith(a alloc.Allocator[T]) (*List[T, N], error) {
	return l.cloneWith(a, nil)
}

// CloneDeep is Clone which also deep copies every element, so elements
// holding pointers, slices or maps share nothing with the source.
func (l *List[T, N]) CloneDeep() (*List[T, N], error) {
	return l.cloneWith(l.allocator(), func(v T) T {
		if c, ok := deepcopy.Copy(v).(T); ok {
			return c
		}
		// nil interface values
		return v
	})
}

func (l *List[T, N]) cloneWith(a alloc.Allocator[T], cp func(T) T) (*List[T, N], error) {
	res := &List[T, N]{alloc: a}
	for i := range l.chunks {
		if err := res.grow(); err != nil {
			res.release()
			return nil, err
		}
		res.chunks[i].copyFrom(&l.chunks[i], cp)
	}
	res.size = l.size
	return res, nil
}

// Move returns a list which owns the chain of l. l is left with no chunks
// and size 0, it keeps its allocator and stays usable.
func (l *List[T, N]) Move() *List[T, N] {
	res := &List[T, N]{chunks: l.chunks, size: l.size, alloc: l.allocator()}
	l.chunks = nil
	l.size = 0
	return res
}

// MoveFrom releases the chain of l and adopts the chain and the allocator
// of other. other is left with no chunks and size 0.
func (l *List[T, N]) MoveFrom(other *List[T, N]) {
	if other == l {
		return
	}
	l.release()
	l.chunks = other.chunks
	l.size = other.size
	l.alloc = other.allocator()
	other.chunks = nil
	other.size = 0
}

// CopyFrom replaces content of l by a copy of other. The copy is built
// first, if it fails l is not changed.
func (l *List[T, N]) CopyFrom(other *List[T, N]) error {
	if other == l {
		return nil
	}
	cp, err := other.cloneWith(l.allocator(), nil)
	if err != nil {
		return err
	}
	l.adopt(cp)
	return nil
}

// Assign replaces content of l by count copies of value
func (l *List[T, N]) Assign(count int, value T) error {
	if count < 0 {
		return errCount(count)
	}
	tmp := &List[T, N]{alloc: l.allocator()}
	for i := 0; i < count; i++ {
		if err := tmp.pushBack(value); err != nil {
			tmp.release()
			return err
		}
	}
	l.adopt(tmp)
	return nil
}

// AssignSlice replaces content of l by copies of vals
func (l *List[T, N]) AssignSlice(vals []T) error {
	tmp, err := FromSlice[T, N](vals, WithAllocator(l.allocator()))
	if err != nil {
		return err
	}
	l.adopt(tmp)
	return nil
}

// AssignRange replaces content of l by copies of [first, last), the range
// may belong to l itself.
func (l *List[T, N]) AssignRange(first, last ConstCursor[T, N]) error {
	vals, err := collect(first, last)
	if err != nil {
		return err
	}
	return l.AssignSlice(vals)
}

// adopt releases the chain of l and takes the chain of tmp, which must use
// the same allocator
func (l *List[T, N]) adopt(tmp *List[T, N]) {
	l.release()
	l.chunks = tmp.chunks
	l.size = tmp.size
}
