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

var (
	// ErrOutOfRange is reported for an index or a cursor step outside of the
	// list bounds
	ErrOutOfRange = errors.New("index out of range")

	// ErrPrecondition is reported when an operation is not allowed in the
	// current state, like Front() of an empty list or stepping below the
	// first element
	ErrPrecondition = errors.New("precondition violated")

	// ErrOutOfMemory is reported when the allocator refuses to provide a chunk
	ErrOutOfMemory = alloc.ErrOutOfMemory
)

func errEmpty(op string) error {
	return errors.Wrapf(ErrPrecondition, "%s: the list is empty", op)
}

func errIndex(i, size int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, but the list size is %d", i, size)
}

func errCount(n int) error {
	return errors.Wrapf(ErrOutOfRange, "negative count %d", n)
}
