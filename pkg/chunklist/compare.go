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
	"cmp"
)

// Equal returns whether a and b have the same size and equal elements
func Equal[T comparable, N Size](a, b *List[T, N]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// NotEqual is !Equal(a, b)
func NotEqual[T comparable, N Size](a, b *List[T, N]) bool {
	return !Equal(a, b)
}

// EqualFunc is Equal with the eq function to compare elements
func EqualFunc[T any, N Size](a, b *List[T, N], eq func(x, y T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if !eq(*a.slot(i), *b.slot(i)) {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 if a is less, equal or greater than b.
//
// The order is NOT the usual lexicographic one: the longer list is always
// greater regardless of the content, and only lists of equal length are
// compared element by element. So {9} < {1, 2}.
func Compare[T cmp.Ordered, N Size](a, b *List[T, N]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is Compare with the c function to compare elements
func CompareFunc[T any, N Size](a, b *List[T, N], c func(x, y T) int) int {
	switch {
	case a.size < b.size:
		return -1
	case a.size > b.size:
		return 1
	}
	for i := 0; i < a.size; i++ {
		if r := c(*a.slot(i), *b.slot(i)); r != 0 {
			return r
		}
	}
	return 0
}

// Less returns whether a < b in the order of Compare
func Less[T cmp.Ordered, N Size](a, b *List[T, N]) bool {
	return Compare(a, b) < 0
}

// LessOrEqual returns whether a <= b in the order of Compare
func LessOrEqual[T cmp.Ordered, N Size](a, b *List[T, N]) bool {
	return Compare(a, b) <= 0
}

// Greater returns whether a > b in the order of Compare
func Greater[T cmp.Ordered, N Size](a, b *List[T, N]) bool {
	return Compare(a, b) > 0
}

// GreaterOrEqual returns whether a >= b in the order of Compare
func GreaterOrEqual[T cmp.Ordered, N Size](a, b *List[T, N]) bool {
	return Compare(a, b) >= 0
}

// Swap exchanges the content of a and b, see List.Swap
func Swap[T any, N Size](a, b *List[T, N]) {
	a.Swap(b)
}

// Erase removes all the elements equal to v and returns how many were removed
func Erase[T comparable, N Size](l *List[T, N], v T) int {
	return EraseIf(l, func(e T) bool { return e == v })
}

// EraseIf removes all the elements pred returns true for, keeping order of
// the others. It returns number of the removed elements.
func EraseIf[T any, N Size](l *List[T, N], pred func(v T) bool) int {
	w := 0
	for r := 0; r < l.size; r++ {
		v := *l.slot(r)
		if pred(v) {
			continue
		}
		if w != r {
			*l.slot(w) = v
		}
		w++
	}
	removed := l.size - w
	l.truncate(w)
	return removed
}
