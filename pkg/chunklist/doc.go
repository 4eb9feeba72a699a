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

/*
Package chunklist provides List, a random-access sequence container which keeps
its elements in fixed-capacity chunks. Elements of one chunk are stored
together, like in a slice, while the chain of chunks grows one chunk at a time,
like a linked list, so appending never moves the existing elements.

The chunk capacity is a part of the List type. It is defined by a Size type
parameter, for example

	l, err := chunklist.New[int, chunklist.C10]()

creates an empty list of ints with 10 elements per chunk. A custom capacity is
a zero-size type with a ChunkSize method:

	type C100 struct{}

	func (C100) ChunkSize() int { return 100 }

The chunks are kept in an arena, a slice of chunk records which refer to each
other by position. Chunk i of the chain is the record i of the arena, so the
element with logical index i is found at chunk i/N, offset i%N. Insertion and
removal in the middle shift the following elements one by one through this
mapping, so they are O(n).

Storage for the chunks comes from an alloc.Allocator. The default one is
alloc.Heap, other allocators are set with WithAllocator.

Cursor and ConstCursor are positions in a list. They keep the owning list,
a logical index and the address of the element they were resolved to. Every
dereference re-validates the index against the current list size. Any
structural mutation (Insert, Erase, Clear, shrinking Resize, PushFront,
PopFront, ShrinkToFit) invalidates the cursors at or after the mutated
position. PushBack invalidates only the end cursor, PopBack also the cursor
to the removed element. Swap keeps the positioned cursors valid, they follow
their elements to the other list. The end cursor belongs to no list: its
Index() is 0 and it is ordered after all the element positions.

Errors are reported with the sentinels ErrOutOfRange, ErrPrecondition and
ErrOutOfMemory wrapped with the details, use errors.Cause to compare them.
Checks are done before the list is modified, so a failed operation leaves the
list as it was, including the chunks it holds.

The List is not safe for concurrent use.
*/
package chunklist
