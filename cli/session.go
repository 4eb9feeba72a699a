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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jrivets/log4g"
	"github.com/logrange/chunklist/pkg/alloc"
	"github.com/logrange/chunklist/pkg/chunklist"
	"github.com/logrange/chunklist/pkg/container"
	rerrors "github.com/logrange/range/pkg/utils/errors"
	"github.com/pkg/errors"
)

type (
	// Session executes list commands against one chunklist.List of int64
	// values. The chunk capacity of the list is chosen by Config.ChunkSize
	// when the session is initialized.
	Session struct {
		Config *Config `inject:""`

		cfg    *Config
		logger log4g.Logger
		exec   executor
	}

	executor interface {
		run(w io.Writer, c *Command) error
		bench(ctx context.Context, w io.Writer, count int) error
		setUndoDepth(depth int)
		close()
	}

	statsAllocator interface {
		alloc.Allocator[int64]
		Stats() alloc.Stats
	}

	listExec[N chunklist.Size] struct {
		cfg      *Config
		list     *chunklist.List[int64, N]
		alloc    statsAllocator
		snapshot *alloc.Heap[int64]
		undo     *container.RingBuffer[*chunklist.List[int64, N]]
	}
)

var errNothingToUndo = errors.New("nothing to undo")

func NewSession() *Session {
	s := new(Session)
	s.logger = log4g.GetLogger("cli.Session")
	return s
}

// Init is a part of linker.Initializer
func (s *Session) Init(ctx context.Context) error {
	if err := s.Config.Check(); err != nil {
		return err
	}
	s.cfg = s.Config.Copy()
	e, err := newExecutor(s.cfg)
	if err != nil {
		return err
	}
	s.exec = e
	s.logger.Info("Session is started with config:", s.cfg)
	return nil
}

// Shutdown is a part of linker.Shutdowner
func (s *Session) Shutdown() {
	if s.exec == nil {
		return
	}
	s.exec.close()
	s.exec = nil
	s.logger.Info("Session is closed")
}

// Exec parses input as a list command and runs it, writing the command
// output to w.
func (s *Session) Exec(w io.Writer, input string) error {
	if s.exec == nil {
		return rerrors.ClosedState
	}
	c, err := ParseCommand(input)
	if err != nil {
		return err
	}
	return s.exec.run(w, c)
}

// Bench runs the list benchmark for count elements.
func (s *Session) Bench(ctx context.Context, w io.Writer, count int) error {
	if s.exec == nil {
		return rerrors.ClosedState
	}
	return s.exec.bench(ctx, w, count)
}

func (s *Session) SetPrintLimit(n int) error {
	if s.exec == nil {
		return rerrors.ClosedState
	}
	if n < 1 {
		return fmt.Errorf("print-limit=%d must be positive", n)
	}
	s.cfg.PrintLimit = n
	return nil
}

// SetUndoDepth changes the number of kept snapshots. The snapshots taken
// so far are dropped.
func (s *Session) SetUndoDepth(n int) error {
	if s.exec == nil {
		return rerrors.ClosedState
	}
	if n < 0 {
		return fmt.Errorf("undo=%d must not be negative", n)
	}
	s.cfg.UndoDepth = n
	s.exec.setUndoDepth(n)
	return nil
}

// Options returns the current session options in logfmt
func (s *Session) Options() string {
	if s.cfg == nil {
		return ""
	}
	return fmt.Sprintf("print-limit=%d undo=%d", s.cfg.PrintLimit, s.cfg.UndoDepth)
}

func newExecutor(cfg *Config) (executor, error) {
	switch cfg.ChunkSize {
	case 4:
		return newListExec[chunklist.C4](cfg)
	case 8:
		return newListExec[chunklist.C8](cfg)
	case 10:
		return newListExec[chunklist.C10](cfg)
	case 12:
		return newListExec[chunklist.C12](cfg)
	case 16:
		return newListExec[chunklist.C16](cfg)
	case 32:
		return newListExec[chunklist.C32](cfg)
	case 64:
		return newListExec[chunklist.C64](cfg)
	case 128:
		return newListExec[chunklist.C128](cfg)
	}
	return nil, fmt.Errorf("unsupported chunk size %d", cfg.ChunkSize)
}

func newAllocator(cfg *Config) statsAllocator {
	var a statsAllocator = alloc.NewHeap[int64]()
	if strings.ToLower(cfg.Allocator) == AllocatorPool {
		a = alloc.NewPool[int64](cfg.ChunkSize, cfg.PoolIdle)
	}
	if cfg.MaxElements > 0 {
		a = alloc.NewLimited[int64](a, cfg.MaxElements)
	}
	return a
}

func newListExec[N chunklist.Size](cfg *Config) (*listExec[N], error) {
	le := new(listExec[N])
	le.cfg = cfg
	le.alloc = newAllocator(cfg)
	le.snapshot = alloc.NewHeap[int64]()
	l, err := chunklist.New[int64, N](chunklist.WithAllocator[int64](le.alloc))
	if err != nil {
		return nil, err
	}
	le.list = l
	le.setUndoDepth(cfg.UndoDepth)
	return le, nil
}

func (le *listExec[N]) setUndoDepth(depth int) {
	if le.undo != nil {
		le.undo.Clear(func(l *chunklist.List[int64, N]) { l.Clear() })
		le.undo = nil
	}
	if depth > 0 {
		le.undo = container.NewRingBuffer[*chunklist.List[int64, N]](depth)
	}
}

func (le *listExec[N]) close() {
	le.setUndoDepth(0)
	le.list.Clear()
}

func (le *listExec[N]) run(w io.Writer, c *Command) error {
	if c.Undo {
		return le.restore()
	}
	if !c.Mutates() || le.undo == nil {
		return le.apply(w, c)
	}

	snap, err := le.list.CloneWith(le.snapshot)
	if err != nil {
		return err
	}
	if err = le.apply(w, c); err != nil {
		snap.Clear()
		return err
	}
	if old, ok := le.undo.Push(snap); ok {
		old.Clear()
	}
	return nil
}

func (le *listExec[N]) restore() error {
	if le.undo == nil {
		return errors.Wrap(errNothingToUndo, "undo is disabled")
	}
	if le.undo.IsEmpty() {
		return errNothingToUndo
	}
	// the snapshot content has fitted the allocator before, so the current
	// content is released first
	snap := le.undo.PopTail()
	le.list.Clear()
	if err := le.list.CopyFrom(snap); err != nil {
		le.undo.Push(snap)
		return err
	}
	snap.Clear()
	return nil
}

func (le *listExec[N]) apply(w io.Writer, c *Command) error {
	l := le.list
	switch {
	case c.Push != nil:
		_, err := l.EmplaceBack(c.Push.Values...)
		return err
	case c.PushFront != nil:
		// the same result as pushing the values one by one
		vals := make([]int64, len(c.PushFront.Values))
		for i, v := range c.PushFront.Values {
			vals[len(vals)-1-i] = v
		}
		_, err := l.EmplaceFront(vals...)
		return err
	case c.Pop:
		return l.PopBack()
	case c.PopFront:
		return l.PopFront()
	case c.Insert != nil:
		pos, err := l.CursorAt(int(c.Insert.Index))
		if err != nil {
			return err
		}
		_, err = l.InsertSlice(pos, c.Insert.Values)
		return err
	case c.InsertN != nil:
		pos, err := l.CursorAt(int(c.InsertN.Index))
		if err != nil {
			return err
		}
		_, err = l.InsertN(pos, int(c.InsertN.Count), c.InsertN.Value)
		return err
	case c.Emplace != nil:
		pos, err := l.CursorAt(int(c.Emplace.Index))
		if err != nil {
			return err
		}
		_, err = l.Emplace(pos, c.Emplace.Values...)
		return err
	case c.Erase != nil:
		return le.erase(c.Erase)
	case c.Remove != nil:
		fmt.Fprintf(w, "removed %s\n", humanize.Comma(int64(chunklist.Erase(l, *c.Remove))))
	case c.RemoveIf != nil:
		fmt.Fprintf(w, "removed %s\n", humanize.Comma(int64(chunklist.EraseIf(l, c.RemoveIf.Func()))))
	case c.At != nil:
		v, err := l.At(int(*c.At))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
	case c.Set != nil:
		return l.Set(int(c.Set.Index), c.Set.Value)
	case c.Front:
		v, err := l.Front()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
	case c.Back:
		v, err := l.Back()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
	case c.Resize != nil:
		return l.ResizeWith(int(c.Resize.Count), c.Resize.value())
	case c.Assign != nil:
		return l.Assign(int(c.Assign.Count), c.Assign.value())
	case c.Clear:
		l.Clear()
	case c.Shrink:
		l.ShrinkToFit()
	case c.Print:
		le.print(w)
	case c.Stats:
		le.stats(w)
	case c.Cmp != nil:
		other, err := chunklist.FromSlice[int64, N](c.Cmp.Values)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, []string{"less", "equal", "greater"}[chunklist.Compare(l, other)+1])
	default:
		return fmt.Errorf("unknown command %+v", c)
	}
	return nil
}

func (le *listExec[N]) erase(r *IndexRange) error {
	l := le.list
	first, err := l.CursorAt(int(r.From))
	if err != nil {
		return err
	}
	if r.To == nil {
		_, err = l.Erase(first)
		return err
	}
	last, err := l.CursorAt(int(*r.To))
	if err != nil {
		return err
	}
	_, err = l.EraseRange(first, last)
	return err
}

func (le *listExec[N]) print(w io.Writer) {
	var sb strings.Builder
	sb.WriteString("[")
	le.list.Range(func(i int, v int64) bool {
		if i == le.cfg.PrintLimit {
			sb.WriteString(" ...")
			return false
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprint(&sb, v)
		return true
	})
	sb.WriteString("]")
	if le.list.Len() > le.cfg.PrintLimit {
		fmt.Fprintf(&sb, " %s elements", humanize.Comma(int64(le.list.Len())))
	}
	fmt.Fprintln(w, sb.String())
}

func (le *listExec[N]) stats(w io.Writer) {
	l := le.list
	fmt.Fprintf(w, "%-10s %s\n", "elements:", humanize.Comma(int64(l.Len())))
	fmt.Fprintf(w, "%-10s %d of %d elements (capacity %s, %s)\n", "chunks:", l.Chunks(), l.ChunkSize(),
		humanize.Comma(int64(l.Capacity())), humanize.Bytes(uint64(l.Capacity())*8))
	fmt.Fprintf(w, "%-10s %s %s\n", "allocator:", strings.ToLower(le.cfg.Allocator), le.alloc.Stats())
	if le.undo != nil {
		fmt.Fprintf(w, "%-10s %d of %d\n", "undo:", le.undo.Len(), le.undo.Capacity())
	}
}
