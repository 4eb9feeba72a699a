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

package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/logrange/chunklist/pkg/chunklist"
	"github.com/pkg/errors"
)

type benchStep struct {
	name string
	ops  int
	fn   func(i int) error
}

// front operations move all the elements, so they are limited
const benchFrontOps = 100

// Bench runs the list benchmark for count elements with the cfg settings and
// prints the results to w.
func Bench(ctx context.Context, cfg *Config, count int, w io.Writer) error {
	return withSession(ctx, cfg, func(s *Session) error {
		return s.Bench(ctx, w, count)
	})
}

func (le *listExec[N]) bench(ctx context.Context, w io.Writer, count int) error {
	if count < 1 {
		return fmt.Errorf("count=%d must be positive", count)
	}
	a := newAllocator(le.cfg)
	l, err := chunklist.New[int64, N](chunklist.WithAllocator[int64](a))
	if err != nil {
		return err
	}
	defer l.Clear()

	fronts := count
	if fronts > benchFrontOps {
		fronts = benchFrontOps
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	steps := []benchStep{
		{"PushBack", count, func(i int) error { return l.PushBack(int64(i)) }},
		{"At", count, func(int) error {
			_, err := l.At(rnd.Intn(count))
			return err
		}},
		{"InsertFront", fronts, func(i int) error {
			_, err := l.Insert(l.CBegin(), int64(i))
			return err
		}},
		{"EraseFront", fronts, func(int) error {
			_, err := l.Erase(l.Begin())
			return err
		}},
		{"PopBack", count, func(int) error { return l.PopBack() }},
	}

	fmt.Fprintf(w, "%s elements, chunk size %d\n", humanize.Comma(int64(count)), l.ChunkSize())
	for _, s := range steps {
		start := time.Now()
		for i := 0; i < s.ops; i++ {
			if err := s.fn(i); err != nil {
				return errors.Wrapf(err, "%s #%d", s.name, i)
			}
			if i&0xfff == 0 && ctx.Err() != nil {
				return ctx.Err()
			}
		}
		d := time.Since(start)
		fmt.Fprintf(w, "%-12s %12s ops %14v %12v/op\n", s.name, humanize.Comma(int64(s.ops)), d, d/time.Duration(s.ops))
	}
	fmt.Fprintf(w, "%-12s %s\n", "allocator:", a.Stats())
	return nil
}
