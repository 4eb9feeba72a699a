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
	"math"

	"github.com/pkg/errors"
)

type (
	// holder refers to the list which currently owns a chunks chain. Swap
	// exchanges the holders of the lists together with their chains, so
	// cursors follow the elements they were resolved to.
	holder[T any, N Size] struct {
		l *List[T, N]
	}

	// cursor is the state shared by Cursor and ConstCursor. A positioned
	// cursor has the holder of the chain, an index in [0, size) and the
	// element address it was resolved to. The end cursor has no holder,
	// index 0 and no element.
	cursor[T any, N Size] struct {
		h    *holder[T, N]
		idx  int
		elem *T
	}

	// Cursor is a random-access position in a List which allows to modify
	// the element it points to.
	Cursor[T any, N Size] struct {
		cursor[T, N]
	}

	// ConstCursor is a read-only random-access position in a List.
	ConstCursor[T any, N Size] struct {
		cursor[T, N]
	}
)

// Index returns the logical index of the cursor, it is 0 for the end cursor
func (c cursor[T, N]) Index() int {
	return c.idx
}

// IsEnd returns whether c is the end cursor
func (c cursor[T, N]) IsEnd() bool {
	return c.elem == nil
}

// holder returns the holder of the list chain, it is created on first use
func (l *List[T, N]) holder() *holder[T, N] {
	if l.hld == nil {
		l.hld = &holder[T, N]{l: l}
	}
	return l.hld
}

// list returns the list which owns the chain, nil for the end cursor
func (c cursor[T, N]) list() *List[T, N] {
	if c.h == nil {
		return nil
	}
	return c.h.l
}

func (c cursor[T, N]) owner() any {
	return c.list()
}

// Value returns the element the cursor points to. The index is checked
// against the current list size and resolved again, so a cursor left behind
// by a mutation reports ErrOutOfRange instead of reading stale storage.
func (c cursor[T, N]) Value() (T, error) {
	p, err := c.ref()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

func (c cursor[T, N]) ref() (*T, error) {
	if c.IsEnd() {
		return nil, errors.Wrap(ErrPrecondition, "the end cursor could not be dereferenced")
	}
	return c.h.l.Ref(c.idx)
}

// Next moves the cursor to the following element. The cursor at the last
// element becomes the end cursor.
func (c *cursor[T, N]) Next() error {
	if c.IsEnd() {
		return errors.Wrap(ErrPrecondition, "could not advance the end cursor")
	}
	return c.moveTo(c.idx + 1)
}

// Prev moves the cursor to the previous element. It fails for the first
// element and for the end cursor, which is not bound to a list.
func (c *cursor[T, N]) Prev() error {
	if c.IsEnd() {
		return errors.Wrap(ErrPrecondition, "could not step back from the end cursor")
	}
	if c.idx == 0 {
		return errors.Wrap(ErrPrecondition, "could not step back from the first element")
	}
	return c.moveTo(c.idx - 1)
}

// Advance moves the cursor n elements forward, or backward if n is
// negative. Landing right after the last element gives the end cursor.
func (c *cursor[T, N]) Advance(n int) error {
	nc, err := c.step(n)
	if err != nil {
		return err
	}
	*c = nc
	return nil
}

func (c *cursor[T, N]) moveTo(i int) error {
	return c.Advance(i - c.idx)
}

// step returns the cursor n elements away. The cursor itself is not changed.
func (c cursor[T, N]) step(n int) (cursor[T, N], error) {
	if c.IsEnd() {
		return c, errors.Wrap(ErrPrecondition, "the end cursor could not be moved")
	}
	l := c.h.l
	i := c.idx + n
	if i == l.size {
		return cursor[T, N]{}, nil
	}
	p, err := l.Ref(i)
	if err != nil {
		return c, err
	}
	return cursor[T, N]{h: c.h, idx: i, elem: p}, nil
}

// Compare compares logical indexes of the cursors. The end cursor is ordered
// after any element position. Note that Index() of the end cursor is 0, so
// loops should stop on IsEnd() rather than on an index comparison.
func (c cursor[T, N]) Compare(o Position) int {
	a, b := rank(c), rank(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func rank(p Position) int {
	if p == nil || p.IsEnd() {
		return math.MaxInt
	}
	return p.Index()
}

// Less returns whether c is ordered before o, see Compare
func (c cursor[T, N]) Less(o Position) bool {
	return c.Compare(o) < 0
}

// Add returns the cursor n elements after c
func (c Cursor[T, N]) Add(n int) (Cursor[T, N], error) {
	nc, err := c.step(n)
	return Cursor[T, N]{nc}, err
}

// Sub returns the cursor n elements before c
func (c Cursor[T, N]) Sub(n int) (Cursor[T, N], error) {
	return c.Add(-n)
}

// Equal returns whether both cursors refer to the same element storage. All
// end cursors are equal.
func (c Cursor[T, N]) Equal(o Cursor[T, N]) bool {
	return c.elem == o.elem
}

// Ref returns address of the element
func (c Cursor[T, N]) Ref() (*T, error) {
	return c.ref()
}

// Set assigns v to the element
func (c Cursor[T, N]) Set(v T) error {
	p, err := c.ref()
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Const returns the read-only cursor to the same position
func (c Cursor[T, N]) Const() ConstCursor[T, N] {
	return ConstCursor[T, N]{c.cursor}
}

// Add returns the cursor n elements after c
func (c ConstCursor[T, N]) Add(n int) (ConstCursor[T, N], error) {
	nc, err := c.step(n)
	return ConstCursor[T, N]{nc}, err
}

// Sub returns the cursor n elements before c
func (c ConstCursor[T, N]) Sub(n int) (ConstCursor[T, N], error) {
	return c.Add(-n)
}

// Equal returns whether both cursors refer to the same element storage. All
// end cursors are equal.
func (c ConstCursor[T, N]) Equal(o ConstCursor[T, N]) bool {
	return c.elem == o.elem
}

// collect copies elements of [first, last) of the list first belongs to. An
// end first is the empty range only when last is the end cursor too.
func collect[T any, M Size](first, last ConstCursor[T, M]) ([]T, error) {
	if first.IsEnd() {
		if !last.IsEnd() {
			return nil, errors.Wrapf(ErrOutOfRange, "wrong range [end, %d)", last.idx)
		}
		return nil, nil
	}
	src := first.list()
	end := src.size
	if !last.IsEnd() {
		if last.list() != src {
			return nil, errors.Wrap(ErrPrecondition, "the range bounds belong to different lists")
		}
		end = last.idx
	}
	if first.idx > end || end > src.size {
		return nil, errors.Wrapf(ErrOutOfRange, "wrong range [%d, %d) for the list of %d elements", first.idx, end, src.size)
	}
	res := make([]T, end-first.idx)
	for i := range res {
		res[i] = *src.slot(first.idx + i)
	}
	return res, nil
}
