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
	"github.com/pkg/errors"
)

// Position is a place in a list used by the structural mutations. Both
// Cursor and ConstCursor are positions, the end cursor stands for Len().
type Position interface {
	Index() int
	IsEnd() bool

	owner() any
}

// position resolves pos to an index in [0, size]
func (l *List[T, N]) position(pos Position) (int, error) {
	if pos == nil || pos.IsEnd() {
		return l.size, nil
	}
	if o, ok := pos.owner().(*List[T, N]); !ok || o != l {
		return 0, errors.Wrap(ErrPrecondition, "the cursor belongs to another list")
	}
	i := pos.Index()
	if i < 0 || i > l.size {
		return 0, errors.Wrapf(ErrOutOfRange, "position %d is out of [0, %d]", i, l.size)
	}
	return i, nil
}

// Insert inserts v before pos and returns a cursor to it
func (l *List[T, N]) Insert(pos Position, v T) (Cursor[T, N], error) {
	p, err := l.position(pos)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if err = l.shiftRight(p, 1); err != nil {
		return Cursor[T, N]{}, err
	}
	*l.slot(p) = v
	return Cursor[T, N]{l.cursorAt(p)}, nil
}

// InsertN inserts count copies of v before pos. It returns a cursor to the
// first inserted element, or to pos if count is 0.
func (l *List[T, N]) InsertN(pos Position, count int, v T) (Cursor[T, N], error) {
	if count < 0 {
		return Cursor[T, N]{}, errCount(count)
	}
	p, err := l.position(pos)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if err = l.shiftRight(p, count); err != nil {
		return Cursor[T, N]{}, err
	}
	for i := p; i < p+count; i++ {
		*l.slot(i) = v
	}
	return Cursor[T, N]{l.cursorAt(p)}, nil
}

// InsertSlice inserts copies of vals before pos keeping their order. It
// returns a cursor to the first inserted element, or to pos if vals is empty.
func (l *List[T, N]) InsertSlice(pos Position, vals []T) (Cursor[T, N], error) {
	p, err := l.position(pos)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if err = l.shiftRight(p, len(vals)); err != nil {
		return Cursor[T, N]{}, err
	}
	for i, v := range vals {
		*l.slot(p + i) = v
	}
	return Cursor[T, N]{l.cursorAt(p)}, nil
}

// InsertRange inserts copies of [first, last) before pos. The range is
// copied before the list is touched, so it may belong to l.
func (l *List[T, N]) InsertRange(pos Position, first, last ConstCursor[T, N]) (Cursor[T, N], error) {
	vals, err := collect(first, last)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	return l.InsertSlice(pos, vals)
}

// InsertFunc inserts one zero element before pos and lets init construct it
// in place.
func (l *List[T, N]) InsertFunc(pos Position, init func(v *T)) (Cursor[T, N], error) {
	p, err := l.position(pos)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if err = l.shiftRight(p, 1); err != nil {
		return Cursor[T, N]{}, err
	}
	e := l.slot(p)
	var zero T
	*e = zero
	init(e)
	return Cursor[T, N]{l.cursorAt(p)}, nil
}

// Emplace inserts vals as one run before pos, see InsertSlice. Every value
// becomes a separate element, to construct one element in place use
// InsertFunc.
func (l *List[T, N]) Emplace(pos Position, vals ...T) (Cursor[T, N], error) {
	return l.InsertSlice(pos, vals)
}

// Erase removes the element at pos. It returns a cursor to the element which
// takes its place, that is the end cursor if the last element was removed.
func (l *List[T, N]) Erase(pos Position) (Cursor[T, N], error) {
	p, err := l.position(pos)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if p == l.size {
		return Cursor[T, N]{}, errIndex(p, l.size)
	}
	l.shiftLeft(p, 1)
	return Cursor[T, N]{l.cursorAt(p)}, nil
}

// EraseRange removes elements in [first, last) and returns a cursor to the
// element following the removed ones.
func (l *List[T, N]) EraseRange(first, last Position) (Cursor[T, N], error) {
	f, err := l.position(first)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	e, err := l.position(last)
	if err != nil {
		return Cursor[T, N]{}, err
	}
	if f > e {
		return Cursor[T, N]{}, errors.Wrapf(ErrOutOfRange, "wrong range [%d, %d)", f, e)
	}
	l.shiftLeft(f, e-f)
	return Cursor[T, N]{l.cursorAt(f)}, nil
}

// PushBack appends v to the list. A chunk is allocated, when the last one is
// full. The list with no chunks gets its head chunk back.
func (l *List[T, N]) PushBack(v T) error {
	return l.pushBack(v)
}

// EmplaceBack appends every value of vals and returns address of the last
// element. If an allocation fails, none of vals is appended and the chunks
// allocated for them are returned.
func (l *List[T, N]) EmplaceBack(vals ...T) (*T, error) {
	old, oldChunks := l.size, len(l.chunks)
	for _, v := range vals {
		if err := l.pushBack(v); err != nil {
			l.rollback(old, oldChunks)
			return nil, err
		}
	}
	return l.BackRef()
}

// PopBack removes the last element
func (l *List[T, N]) PopBack() error {
	if l.size == 0 {
		return errEmpty("PopBack()")
	}
	l.popBack()
	return nil
}

// PushFront inserts v before the first element, it is O(n)
func (l *List[T, N]) PushFront(v T) error {
	_, err := l.Insert(l.CBegin(), v)
	return err
}

// EmplaceFront inserts vals as one run at the front and returns address of
// the first element.
func (l *List[T, N]) EmplaceFront(vals ...T) (*T, error) {
	if _, err := l.InsertSlice(l.CBegin(), vals); err != nil {
		return nil, err
	}
	return l.FrontRef()
}

// PopFront removes the first element, it is O(n)
func (l *List[T, N]) PopFront() error {
	if l.size == 0 {
		return errEmpty("PopFront()")
	}
	l.shiftLeft(0, 1)
	return nil
}

// Resize makes the list count elements long, removing the tail elements or
// appending zero values.
func (l *List[T, N]) Resize(count int) error {
	var zero T
	return l.ResizeWith(count, zero)
}

// ResizeWith is Resize which appends copies of v
func (l *List[T, N]) ResizeWith(count int, v T) error {
	if count < 0 {
		return errCount(count)
	}
	if count <= l.size {
		l.truncate(count)
		return nil
	}
	old, oldChunks := l.size, len(l.chunks)
	for l.size < count {
		if err := l.pushBack(v); err != nil {
			l.rollback(old, oldChunks)
			return err
		}
	}
	return nil
}

// Swap exchanges the chains, sizes and allocators of l and other. No
// element is moved, and a cursor follows its chain: after the swap a cursor
// obtained from l points to the same element, which now belongs to other.
func (l *List[T, N]) Swap(other *List[T, N]) {
	if other == l {
		return
	}
	l.chunks, other.chunks = other.chunks, l.chunks
	l.size, other.size = other.size, l.size
	l.alloc, other.alloc = other.alloc, l.alloc
	lh, oh := l.holder(), other.holder()
	l.hld, other.hld = oh, lh
	l.hld.l, other.hld.l = l, other
}

// Clear removes all elements and releases all the chunks. The list is left
// with no head chunk, the next PushBack allocates it.
func (l *List[T, N]) Clear() {
	l.release()
}
