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

type (
	// Size defines the chunk capacity of a List on the type level. The
	// implementations are expected to be zero-size types returning a constant.
	Size interface {
		ChunkSize() int
	}

	// C4 .. C128 are the predefined chunk capacities
	C4   struct{}
	C8   struct{}
	C10  struct{}
	C12  struct{}
	C16  struct{}
	C32  struct{}
	C64  struct{}
	C128 struct{}
)

func (C4) ChunkSize() int   { return 4 }
func (C8) ChunkSize() int   { return 8 }
func (C10) ChunkSize() int  { return 10 }
func (C12) ChunkSize() int  { return 12 }
func (C16) ChunkSize() int  { return 16 }
func (C32) ChunkSize() int  { return 32 }
func (C64) ChunkSize() int  { return 64 }
func (C128) ChunkSize() int { return 128 }

// chunkSize returns the capacity defined by N
func chunkSize[N Size]() int {
	var n N
	return n.ChunkSize()
}
