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
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"unicode/utf8"

	"github.com/alecthomas/participle/lexer"
)

type (
	// lineLexDef is a lexer definition built from a regular expression where
	// every named group is a token type, and anonymous groups are skipped.
	// Commands are one-liners, so only the column is tracked.
	lineLexDef struct {
		re      *regexp.Regexp
		symbols map[string]rune
	}

	lineLexer struct {
		pos   lexer.Position
		b     []byte
		re    *regexp.Regexp
		names []string
	}
)

func newLineLexDef(pattern string) (lexer.Definition, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	symbols := map[string]rune{
		"EOF": lexer.EOF,
	}
	for i, sym := range re.SubexpNames()[1:] {
		if sym != "" {
			symbols[sym] = lexer.EOF - 1 - rune(i)
		}
	}

	re.Longest()
	return &lineLexDef{re: re, symbols: symbols}, nil
}

func (d *lineLexDef) Lex(r io.Reader) (lexer.Lexer, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &lineLexer{
		pos:   lexer.Position{Filename: lexer.NameOfReader(r), Line: 1, Column: 1},
		b:     b,
		re:    d.re,
		names: d.re.SubexpNames(),
	}, nil
}

func (d *lineLexDef) Symbols() map[string]rune {
	return d.symbols
}

func (l *lineLexer) Next() (lexer.Token, error) {
	for len(l.b) != 0 {
		m := l.re.FindSubmatchIndex(l.b)
		if m == nil || m[0] != 0 {
			rn, _ := utf8.DecodeRune(l.b)
			return lexer.Token{}, fmt.Errorf("unexpected %q at column %d", rn, l.pos.Column)
		}

		tok := lexer.Token{Pos: l.pos, Value: string(l.b[:m[1]])}
		l.pos.Offset += m[1]
		l.pos.Column += utf8.RuneCount(l.b[:m[1]])
		l.b = l.b[m[1]:]

		if tp, ok := l.tokenType(m); ok {
			tok.Type = tp
			return tok, nil
		}
	}
	return lexer.EOFToken(l.pos), nil
}

// tokenType returns the type of the first matched named group
func (l *lineLexer) tokenType(m []int) (rune, bool) {
	for i := 2; i < len(m); i += 2 {
		if m[i] == -1 {
			continue
		}
		if l.names[i/2] == "" {
			return 0, false
		}
		return lexer.EOF - rune(i/2), true
	}
	return 0, false
}
