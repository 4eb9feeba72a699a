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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorIterate(t *testing.T) {
	l := Of[int, C4](seq(0, 11)...)
	var got []int
	for c := l.CBegin(); !c.IsEnd(); {
		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, len(got), c.Index())
		got = append(got, v)
		require.NoError(t, c.Next())
	}
	assert.Equal(t, seq(0, 11), got)

	e := Of[int, C4]()
	assert.True(t, e.Begin().IsEnd())
	assert.True(t, e.Begin().Equal(e.End()))
	assert.True(t, e.CBegin().Equal(e.CEnd()))
}

func TestCursorOrdering(t *testing.T) {
	l := Of[int, C4](seq(0, 10)...)
	it1 := l.Begin()
	it2 := l.Begin()
	assert.True(t, it1.Equal(it2))
	assert.Equal(t, 0, it1.Compare(it2))

	require.NoError(t, it1.Next())
	assert.False(t, it1.Equal(it2))
	assert.Equal(t, 1, it1.Compare(it2))
	assert.True(t, it2.Less(it1))

	require.NoError(t, it2.Advance(7))
	assert.Equal(t, 1, it2.Compare(it1))
	assert.True(t, it1.Less(it2))
	v, _ := it2.Value()
	assert.Equal(t, 7, v)

	assert.True(t, it2.Less(l.End()))
	assert.Equal(t, 1, l.CEnd().Compare(it1))
	assert.Equal(t, 0, l.End().Compare(l.CEnd()))

	// cursors of different lists are never equal
	o := Of[int, C4](seq(0, 10)...)
	assert.False(t, l.Begin().Equal(o.Begin()))
}

func TestCursorArithmetic(t *testing.T) {
	l := Of[int, C4](seq(0, 10)...)
	c, err := l.Begin().Add(6)
	require.NoError(t, err)
	v, _ := c.Value()
	assert.Equal(t, 6, v)

	c, err = c.Sub(5)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Index())

	e, err := l.Begin().Add(10)
	require.NoError(t, err)
	assert.True(t, e.IsEnd())
	assert.True(t, e.Equal(l.End()))

	_, err = l.Begin().Add(11)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))
	_, err = l.CBegin().Sub(1)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))

	// failed moves leave the cursor where it was
	assert.Equal(t, ErrOutOfRange, errors.Cause(c.Advance(100)))
	assert.Equal(t, 1, c.Index())
	v, _ = c.Value()
	assert.Equal(t, 1, v)
}

func TestCursorPrev(t *testing.T) {
	l := Of[int, C4](1, 2, 3)
	c := l.Begin()
	assert.Equal(t, ErrPrecondition, errors.Cause(c.Prev()))
	cc := l.CBegin()
	assert.Equal(t, ErrPrecondition, errors.Cause(cc.Prev()))

	c, _ = l.CursorAt(2)
	require.NoError(t, c.Prev())
	v, _ := c.Value()
	assert.Equal(t, 2, v)
}

func TestCursorEnd(t *testing.T) {
	l := Of[int, C4](1, 2, 3)
	e := l.End()
	_, err := e.Value()
	assert.Equal(t, ErrPrecondition, errors.Cause(err))
	assert.Equal(t, ErrPrecondition, errors.Cause(e.Set(1)))
	assert.Equal(t, ErrPrecondition, errors.Cause(e.Next()))
	assert.Equal(t, ErrPrecondition, errors.Cause(e.Prev()))
	_, err = e.Add(-1)
	assert.Equal(t, ErrPrecondition, errors.Cause(err))

	c, _ := l.CursorAt(2)
	require.NoError(t, c.Next())
	assert.True(t, c.IsEnd())
	assert.True(t, c.Equal(e))

	_, err = l.CursorAt(4)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))
}

func TestCursorModify(t *testing.T) {
	l := Of[int, C4](1, 2, 3, 4, 5)
	c, _ := l.CursorAt(4)
	require.NoError(t, c.Set(50))
	p, err := c.Ref()
	require.NoError(t, err)
	*p++
	checkList(t, l, 1, 2, 3, 4, 51)

	cc := c.Const()
	v, _ := cc.Value()
	assert.Equal(t, 51, v)
	assert.Equal(t, 4, cc.Index())
}

func TestCursorStale(t *testing.T) {
	l := Of[int, C4](1, 2, 3, 4, 5)
	c, _ := l.CursorAt(4)
	cc := c.Const()
	require.NoError(t, l.PopBack())

	_, err := c.Value()
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))
	assert.Equal(t, ErrOutOfRange, errors.Cause(c.Set(1)))
	_, err = cc.Value()
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))

	// a cursor keeps its index, so it sees the shifted content
	c, _ = l.CursorAt(1)
	_, err = l.Erase(l.Begin())
	require.NoError(t, err)
	v, _ := c.Value()
	assert.Equal(t, 3, v)
}

func TestCursorSurvivesPushBack(t *testing.T) {
	l := Of[int, C4](1, 2, 3)
	c, _ := l.CursorAt(2)
	for i := 0; i < 20; i++ {
		require.NoError(t, l.PushBack(i))
	}
	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	p, _ := c.Ref()
	assert.True(t, p == l.Index(2))
}

func TestCursorSurvivesSwap(t *testing.T) {
	a := Of[int, C4](1, 2, 3, 4, 5)
	b := Of[int, C4](9)
	c := a.Begin()
	c2, err := a.CursorAt(3)
	require.NoError(t, err)
	cb := b.CBegin()

	a.Swap(b)
	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = c2.Value()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	v, err = cb.Value()
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	// the cursors belong to the list which holds their elements now
	require.NoError(t, c2.Set(40))
	checkList(t, b, 1, 2, 3, 40, 5)
	require.NoError(t, c2.Next())
	v, _ = c2.Value()
	assert.Equal(t, 5, v)
	_, err = b.Insert(c, 0)
	require.NoError(t, err)
	checkList(t, b, 0, 1, 2, 3, 40, 5)
	_, err = a.Insert(c, 0)
	assert.Equal(t, ErrPrecondition, errors.Cause(err))
	_, err = a.Erase(cb)
	require.NoError(t, err)
	checkList(t, a)

	// swapping back returns them
	Swap(a, b)
	v, err = c.Value()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.True(t, c.Equal(a.Begin()))
}

func TestCursorRangeFromEnd(t *testing.T) {
	l := Of[int, C4](1, 2, 3)
	last, _ := l.ConstCursorAt(1)
	_, err := l.InsertRange(l.CBegin(), l.CEnd(), last)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))
	_, err = FromRange[int, C8](l.CEnd(), last)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))
	checkList(t, l, 1, 2, 3)

	_, err = l.InsertRange(l.CBegin(), l.CEnd(), l.CEnd())
	require.NoError(t, err)
	checkList(t, l, 1, 2, 3)
}

func BenchmarkCursorIterate(b *testing.B) {
	l := Of[int, C64](seq(0, 10000)...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for c := l.CBegin(); !c.IsEnd(); _ = c.Next() {
		}
	}
}
