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

// At returns the element pos
func (l *List[T, N]) At(pos int) (T, error) {
	p, err := l.Ref(pos)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Ref returns address of the element pos. The address stays valid until
// a structural mutation of the list.
func (l *List[T, N]) Ref(pos int) (*T, error) {
	if pos < 0 || pos >= l.size {
		return nil, errIndex(pos, l.size)
	}
	return l.slot(pos), nil
}

// Set assigns v to the element pos
func (l *List[T, N]) Set(pos int, v T) error {
	p, err := l.Ref(pos)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Index returns address of the element pos like Ref does, but it panics if
// pos is out of range, as indexing of a slice does.
func (l *List[T, N]) Index(pos int) *T {
	p, err := l.Ref(pos)
	if err != nil {
		panic(err)
	}
	return p
}

// Front returns the first element
func (l *List[T, N]) Front() (T, error) {
	p, err := l.FrontRef()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// FrontRef returns address of the first element
func (l *List[T, N]) FrontRef() (*T, error) {
	if l.size == 0 {
		return nil, errEmpty("Front()")
	}
	return l.slot(0), nil
}

// Back returns the last element
func (l *List[T, N]) Back() (T, error) {
	p, err := l.BackRef()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// BackRef returns address of the last element
func (l *List[T, N]) BackRef() (*T, error) {
	if l.size == 0 {
		return nil, errEmpty("Back()")
	}
	return l.slot(l.size - 1), nil
}

// Begin returns a cursor to the first element, it is the end cursor for an
// empty list.
func (l *List[T, N]) Begin() Cursor[T, N] {
	return Cursor[T, N]{l.cursorAt(0)}
}

// CBegin is the read-only Begin
func (l *List[T, N]) CBegin() ConstCursor[T, N] {
	return ConstCursor[T, N]{l.cursorAt(0)}
}

// End returns the end cursor
func (l *List[T, N]) End() Cursor[T, N] {
	return Cursor[T, N]{}
}

// CEnd returns the read-only end cursor
func (l *List[T, N]) CEnd() ConstCursor[T, N] {
	return ConstCursor[T, N]{}
}

// CursorAt returns a cursor to the element i, or the end cursor when i is
// the list size.
func (l *List[T, N]) CursorAt(i int) (Cursor[T, N], error) {
	if i < 0 || i > l.size {
		return Cursor[T, N]{}, errIndex(i, l.size)
	}
	return Cursor[T, N]{l.cursorAt(i)}, nil
}

// ConstCursorAt is the read-only CursorAt
func (l *List[T, N]) ConstCursorAt(i int) (ConstCursor[T, N], error) {
	c, err := l.CursorAt(i)
	return c.Const(), err
}

// cursorAt resolves i in [0, size]
func (l *List[T, N]) cursorAt(i int) cursor[T, N] {
	if i >= l.size {
		return cursor[T, N]{}
	}
	return cursor[T, N]{h: l.holder(), idx: i, elem: l.slot(i)}
}

// Range calls f for every element in order walking the chunks chain, it
// stops as soon as f returns false.
func (l *List[T, N]) Range(f func(i int, v T) bool) {
	idx := 0
	for ci := l.head(); ci != noChunk; ci = l.chunks[ci].next {
		c := &l.chunks[ci]
		for j := 0; j < c.n; j++ {
			if !f(idx, c.buf[j]) {
				return
			}
			idx++
		}
	}
}

// Slice returns a copy of the elements
func (l *List[T, N]) Slice() []T {
	res := make([]T, 0, l.size)
	l.Range(func(_ int, v T) bool {
		res = append(res, v)
		return true
	})
	return res
}

// Empty returns whether the list has no elements
func (l *List[T, N]) Empty() bool {
	return l.size == 0
}

// Len returns number of elements in the list
func (l *List[T, N]) Len() int {
	return l.size
}

// MaxSize returns the number of slots in the occupied chunks, which is Len()
// rounded up to a multiple of the chunk size.
func (l *List[T, N]) MaxSize() int {
	n := chunkSize[N]()
	if r := l.size % n; r != 0 {
		return l.size + n - r
	}
	return l.size
}

// ChunkSize returns capacity of one chunk
func (l *List[T, N]) ChunkSize() int {
	return chunkSize[N]()
}

// Chunks returns number of chunks in the chain, including the empty ones
func (l *List[T, N]) Chunks() int {
	return len(l.chunks)
}

// Capacity returns number of slots in all the chunks of the chain
func (l *List[T, N]) Capacity() int {
	return len(l.chunks) * chunkSize[N]()
}

// ShrinkToFit is a non-binding request to release unused chunks. It trims
// the empty chunks from the tail of the chain, the head chunk is kept. All
// cursors, including the end one, are invalidated.
func (l *List[T, N]) ShrinkToFit() {
	for len(l.chunks) > 1 && l.chunks[len(l.chunks)-1].n == 0 {
		l.dropTail()
	}
}
