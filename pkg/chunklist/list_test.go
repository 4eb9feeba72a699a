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

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/logrange/chunklist/pkg/alloc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroSize struct{}

func (zeroSize) ChunkSize() int { return 0 }

func checkList[T any, N Size](t *testing.T, l *List[T, N], want ...T) {
	t.Helper()
	if diff := cmp.Diff(want, l.Slice(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected list content (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(want), l.Len())
	assert.Equal(t, len(want) == 0, l.Empty())
}

func seq(from, to int) []int {
	res := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		res = append(res, i)
	}
	return res
}

func TestNew(t *testing.T) {
	l, err := New[int, C12]()
	require.NoError(t, err)
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.MaxSize())
	assert.Equal(t, 1, l.Chunks())
	assert.Equal(t, 12, l.ChunkSize())

	assert.Panics(t, func() { _, _ = New[int, zeroSize]() })
}

func TestZeroValue(t *testing.T) {
	var l List[string, C4]
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Chunks())
	require.NoError(t, l.PushBack("a"))
	checkList(t, &l, "a")
	assert.Equal(t, 1, l.Chunks())
}

func TestConstructors(t *testing.T) {
	r, err := Repeat[int, C4](6, 7)
	require.NoError(t, err)
	checkList(t, r, 7, 7, 7, 7, 7, 7)
	assert.Equal(t, 2, r.Chunks())

	s, err := Sized[int, C4](3)
	require.NoError(t, err)
	checkList(t, s, 0, 0, 0)

	_, err = Repeat[int, C4](-1, 7)
	assert.Equal(t, ErrOutOfRange, errors.Cause(err))

	f, err := FromSlice[int, C10]([]int{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	assert.True(t, Equal(f, Of[int, C10](1, 2, 3, 4, 5, 6, 7)))

	e, err := FromSlice[int, C10](nil)
	require.NoError(t, err)
	assert.True(t, e.Empty())
	assert.Equal(t, 0, e.Chunks())

	// the same content built by different construction paths
	pushed, err := New[int, C10]()
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		require.NoError(t, pushed.PushBack(i))
	}
	assert.True(t, Equal(pushed, Of[int, C10](1, 2, 3, 4, 5)))
	assert.True(t, Equal(Of[int, C10](1, 2, 3, 4, 5), pushed))
	assert.True(t, Equal(pushed, pushed))
}

func TestFromRange(t *testing.T) {
	src := Of[int, C10](1, 2, 3, 4, 5, 6, 7)
	first, err := src.CBegin().Add(2)
	require.NoError(t, err)
	l, err := FromRange[int, C4](first, src.CEnd())
	require.NoError(t, err)
	checkList(t, l, 3, 4, 5, 6, 7)

	last, err := src.ConstCursorAt(4)
	require.NoError(t, err)
	l, err = FromRange[int, C4](src.CBegin(), last)
	require.NoError(t, err)
	checkList(t, l, 1, 2, 3, 4)

	other := Of[int, C10](1)
	_, err = FromRange[int, C4](src.CBegin(), other.CBegin())
	assert.Equal(t, ErrPrecondition, errors.Cause(err))
}

func TestAccess(t *testing.T) {
	l, err := New[int, C10]()
	require.NoError(t, err)
	for i := 0; i < 15; i++ {
		require.NoError(t, l.PushBack(i))
	}
	for i := 0; i < 15; i++ {
		v, err := l.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, v)
		assert.Equal(t, i, *l.Index(i))
	}

	for _, i := range []int{-1, 15, 16, 100} {
		_, err := l.At(i)
		assert.Equal(t, ErrOutOfRange, errors.Cause(err), "index %d", i)
		assert.Panics(t, func() { l.Index(i) })
	}

	require.NoError(t, l.Set(11, -11))
	p, err := l.Ref(11)
	require.NoError(t, err)
	assert.Equal(t, -11, *p)
	*p = 111
	v, _ := l.At(11)
	assert.Equal(t, 111, v)
	assert.Equal(t, ErrOutOfRange, errors.Cause(l.Set(15, 1)))
}

func TestFrontBack(t *testing.T) {
	l := Of[int, C10](42, 1, 5, 7, 4, 1)
	f, err := l.Front()
	require.NoError(t, err)
	assert.Equal(t, 42, f)

	l = Of[int, C10](1, 1, 5, 8, 0, 2, 5, 7, 42)
	b, err := l.Back()
	require.NoError(t, err)
	assert.Equal(t, 42, b)

	e := Of[int, C10]()
	_, err = e.Front()
	assert.Equal(t, ErrPrecondition, errors.Cause(err))
	_, err = e.Back()
	assert.Equal(t, ErrPrecondition, errors.Cause(err))
}

func TestMaxSize(t *testing.T) {
	l := Of[int, C4](1, 2, 3, 4, 5, 6, 7)
	assert.Equal(t, 7, l.Len())
	assert.Equal(t, 8, l.MaxSize())
	require.NoError(t, l.PushBack(8))
	assert.Equal(t, 8, l.MaxSize())
	require.NoError(t, l.PushBack(9))
	assert.Equal(t, 12, l.MaxSize())

	e, _ := New[int, C4]()
	assert.Equal(t, 0, e.MaxSize())
}

func TestShrinkToFit(t *testing.T) {
	l := Of[int, C4](seq(0, 9)...)
	assert.Equal(t, 3, l.Chunks())
	for i := 0; i < 5; i++ {
		require.NoError(t, l.PopBack())
	}
	checkList(t, l, 0, 1, 2, 3)
	assert.Equal(t, 3, l.Chunks())

	// reserve chunks are taken by the following pushes
	require.NoError(t, l.PushBack(4))
	assert.Equal(t, 3, l.Chunks())
	require.NoError(t, l.PopBack())

	l.ShrinkToFit()
	assert.Equal(t, 1, l.Chunks())
	assert.Equal(t, 4, l.Capacity())
	checkList(t, l, 0, 1, 2, 3)

	e, _ := New[int, C4]()
	e.ShrinkToFit()
	assert.Equal(t, 1, e.Chunks())
}

func TestCloneIsIndependent(t *testing.T) {
	l := Of[int, C4](seq(0, 10)...)
	c, err := l.Clone()
	require.NoError(t, err)
	assert.True(t, Equal(l, c))
	assert.Equal(t, l.Chunks(), c.Chunks())

	require.NoError(t, c.Set(0, 100))
	require.NoError(t, c.PushBack(10))
	checkList(t, l, seq(0, 10)...)
	assert.False(t, Equal(l, c))
}

func TestCloneWith(t *testing.T) {
	l := Of[int, C4](1, 2, 3, 4, 5)
	lim := alloc.NewLimited[int](nil, 4)
	_, err := l.CloneWith(lim)
	assert.Equal(t, ErrOutOfMemory, errors.Cause(err))
	assert.Equal(t, 4, lim.Available())

	p := alloc.NewPool[int](4, 4)
	c, err := l.CloneWith(p)
	require.NoError(t, err)
	checkList(t, c, 1, 2, 3, 4, 5)
	assert.Equal(t, alloc.Allocator[int](p), c.Allocator())
	c.Clear()
	assert.Equal(t, 2, p.Idle())
}

func TestCloneDeep(t *testing.T) {
	l := Of[[]int, C4]([]int{1, 2}, []int{3})
	c, err := l.CloneDeep()
	require.NoError(t, err)
	(*c.Index(0))[0] = 100

	v, _ := l.At(0)
	assert.Equal(t, []int{1, 2}, v)

	s, err := l.Clone()
	require.NoError(t, err)
	(*s.Index(0))[0] = 100
	v, _ = l.At(0)
	assert.Equal(t, []int{100, 2}, v)

	var nils List[any, C4]
	require.NoError(t, nils.PushBack(nil))
	nc, err := nils.CloneDeep()
	require.NoError(t, err)
	checkList(t, nc, nil)
}

func TestMove(t *testing.T) {
	l := Of[int, C4](1, 2, 3, 4, 5)
	m := l.Move()
	checkList(t, m, 1, 2, 3, 4, 5)
	checkList(t, l)
	assert.Equal(t, 0, l.Chunks())

	require.NoError(t, l.PushBack(6))
	checkList(t, l, 6)
	checkList(t, m, 1, 2, 3, 4, 5)

	d := Of[int, C4](9, 9)
	d.MoveFrom(m)
	checkList(t, d, 1, 2, 3, 4, 5)
	checkList(t, m)
	d.MoveFrom(d)
	checkList(t, d, 1, 2, 3, 4, 5)
}

func TestCopyFrom(t *testing.T) {
	src := Of[int, C4](seq(1, 9)...)
	lim := alloc.NewLimited[int](nil, 8)
	dst, err := FromSlice[int, C4]([]int{1, 2, 3}, WithAllocator[int](lim))
	require.NoError(t, err)

	// the copy needs two chunks while the old one is still held
	err = dst.CopyFrom(src)
	assert.Equal(t, ErrOutOfMemory, errors.Cause(err))
	checkList(t, dst, 1, 2, 3)
	assert.Equal(t, 4, lim.Available())

	small := Of[int, C4](7, 8)
	require.NoError(t, dst.CopyFrom(small))
	checkList(t, dst, 7, 8)
	assert.Equal(t, 4, lim.Available())
	require.NoError(t, small.Set(0, 0))
	checkList(t, dst, 7, 8)

	require.NoError(t, dst.CopyFrom(dst))
	checkList(t, dst, 7, 8)
}

func TestAssign(t *testing.T) {
	l1, _ := New[int, C10]()
	l2, _ := New[int, C10]()
	for i := 0; i < 10; i++ {
		require.NoError(t, l1.PushBack(7))
	}
	require.NoError(t, l2.Assign(10, 7))
	assert.True(t, Equal(l1, l2))

	require.NoError(t, l2.AssignSlice([]int{1, 2, 3, 4, 5, 6, 7}))
	checkList(t, l2, 1, 2, 3, 4, 5, 6, 7)

	first, _ := l2.CBegin().Add(4)
	require.NoError(t, l2.AssignRange(first, l2.CEnd()))
	checkList(t, l2, 5, 6, 7)

	require.NoError(t, l2.AssignSlice(nil))
	checkList(t, l2)
	assert.Equal(t, ErrOutOfRange, errors.Cause(l2.Assign(-1, 0)))
}

func TestAssignOutOfMemory(t *testing.T) {
	lim := alloc.NewLimited[int](nil, 8)
	l, err := FromSlice[int, C4]([]int{1, 2}, WithAllocator[int](lim))
	require.NoError(t, err)
	err = l.Assign(5, 0)
	assert.Equal(t, ErrOutOfMemory, errors.Cause(err))
	checkList(t, l, 1, 2)
	assert.Equal(t, 4, lim.Available())

	require.NoError(t, l.Assign(4, 0))
	checkList(t, l, 0, 0, 0, 0)
	assert.Equal(t, 4, lim.Available())
}

func TestRange(t *testing.T) {
	l := Of[int, C4](seq(0, 11)...)
	var got []int
	l.Range(func(i int, v int) bool {
		assert.Equal(t, i, v)
		got = append(got, v)
		return v < 5
	})
	assert.Equal(t, seq(0, 6), got)
}

func BenchmarkPushBack(b *testing.B) {
	l, _ := New[int, C64]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.PushBack(i)
	}
}

func BenchmarkAt(b *testing.B) {
	l := Of[int, C64](seq(0, 10000)...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.At(i % 10000)
	}
}
