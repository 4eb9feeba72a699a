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
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/pkg/errors"
)

var (
	cmdLexer = lexer.Must(newLineLexDef(`(\s+)` +
		`|(?P<Keyword>(?i)\b(?:PUSH|PUSHFRONT|POP|POPFRONT|INSERT|INSERTN|EMPLACE|ERASE|REMOVE|REMOVEIF|AT|SET|` +
		`FRONT|BACK|RESIZE|ASSIGN|CLEAR|SHRINK|PRINT|STATS|CMP|UNDO|LT|LE|GT|GE|EQ|NE)\b)` +
		`|(?P<Int>[-+]?\d+)`,
	))

	cmdParser = participle.MustBuild(
		&Command{},
		participle.Lexer(cmdLexer),
		participle.CaseInsensitive("Keyword"),
	)
)

type (
	// Command is one parsed list operation. Exactly one field is set.
	Command struct {
		Push      *Values      `  "PUSH" @@`
		PushFront *Values      `| "PUSHFRONT" @@`
		Pop       bool         `| @"POP"`
		PopFront  bool         `| @"POPFRONT"`
		Insert    *IndexValues `| "INSERT" @@`
		InsertN   *IndexCount  `| "INSERTN" @@`
		Emplace   *IndexValues `| "EMPLACE" @@`
		Erase     *IndexRange  `| "ERASE" @@`
		Remove    *int64       `| "REMOVE" @Int`
		RemoveIf  *Predicate   `| "REMOVEIF" @@`
		At        *int64       `| "AT" @Int`
		Set       *IndexValue  `| "SET" @@`
		Front     bool         `| @"FRONT"`
		Back      bool         `| @"BACK"`
		Resize    *CountValue  `| "RESIZE" @@`
		Assign    *CountValue  `| "ASSIGN" @@`
		Clear     bool         `| @"CLEAR"`
		Shrink    bool         `| @"SHRINK"`
		Print     bool         `| @"PRINT"`
		Stats     bool         `| @"STATS"`
		Cmp       *Values      `| "CMP" @@`
		Undo      bool         `| @"UNDO"`
	}

	Values struct {
		Values []int64 `@Int { @Int }`
	}

	IndexValues struct {
		Index  int64   `@Int`
		Values []int64 `@Int { @Int }`
	}

	IndexValue struct {
		Index int64 `@Int`
		Value int64 `@Int`
	}

	IndexCount struct {
		Index int64 `@Int`
		Count int64 `@Int`
		Value int64 `@Int`
	}

	IndexRange struct {
		From int64  `@Int`
		To   *int64 `[ @Int ]`
	}

	// CountValue is a count with an optional value, the value is 0 if omitted
	CountValue struct {
		Count int64  `@Int`
		Value *int64 `[ @Int ]`
	}

	Predicate struct {
		Op    string `@("LT"|"LE"|"GT"|"GE"|"EQ"|"NE")`
		Value int64  `@Int`
	}
)

// ParseCommand parses one list operation, like "insert 3 -1 -2"
func ParseCommand(s string) (*Command, error) {
	c := &Command{}
	if err := cmdParser.ParseString(s, c); err != nil {
		return nil, errors.Wrapf(err, "could not parse %q", s)
	}
	return c, nil
}

// Mutates returns whether the command could change the list content
func (c *Command) Mutates() bool {
	return c.Push != nil || c.PushFront != nil || c.Pop || c.PopFront || c.Insert != nil ||
		c.InsertN != nil || c.Emplace != nil || c.Erase != nil || c.Remove != nil ||
		c.RemoveIf != nil || c.Set != nil || c.Resize != nil || c.Assign != nil || c.Clear
}

func (cv *CountValue) value() int64 {
	if cv.Value == nil {
		return 0
	}
	return *cv.Value
}

// Func returns the predicate as a function
func (p *Predicate) Func() func(v int64) bool {
	switch strings.ToUpper(p.Op) {
	case "LT":
		return func(v int64) bool { return v < p.Value }
	case "LE":
		return func(v int64) bool { return v <= p.Value }
	case "GT":
		return func(v int64) bool { return v > p.Value }
	case "GE":
		return func(v int64) bool { return v >= p.Value }
	case "EQ":
		return func(v int64) bool { return v == p.Value }
	}
	return func(v int64) bool { return v != p.Value }
}
