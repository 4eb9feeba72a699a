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
	"regexp"
	"strconv"
	"strings"

	"github.com/kr/logfmt"
	"github.com/pkg/errors"
)

type (
	command struct {
		name    string
		matcher *regexp.Regexp
		cmdFn   cmdFn
		help    string
	}

	// cmdCtx is the state shared by the commands of one shell
	cmdCtx struct {
		sess  *Session
		w     io.Writer
		input string
		optKV string
	}

	cmdFn func(cc *cmdCtx, ctx context.Context) error

	// optHandler receives setopt key=value pairs from logfmt
	optHandler struct {
		cc *cmdCtx
	}
)

const (
	cmdSetOptName = "setoption"
	cmdQuitName   = "quit"
	cmdHelpName   = "help"
	cmdListName   = "list"

	optPrintLimit = "print-limit"
	optUndo       = "undo"
)

// errQuit is returned by the quit command to stop the commands loop
var errQuit = errors.New("quit")

var commands []command

// listOps is the help for the list commands
var listOps = [][2]string{
	{"push v...", "append the values to the back"},
	{"pushfront v...", "push the values to the front one by one"},
	{"pop, popfront", "remove the back or the front element"},
	{"insert i v...", "insert the values before the element i"},
	{"insertn i n v", "insert n copies of v before the element i"},
	{"emplace i v...", "the same as insert"},
	{"erase i [j]", "erase the element i, or the elements [i, j)"},
	{"remove v", "remove all the elements equal to v"},
	{"removeif op v", "remove the elements matching op (lt, le, gt, ge, eq, ne) v"},
	{"at i, set i v", "print or assign the element i"},
	{"front, back", "print the first or the last element"},
	{"resize n [v]", "resize the list to n elements, new elements are v"},
	{"assign n v", "replace the content by n copies of v"},
	{"clear, shrink", "remove all the elements, or release the unused chunks"},
	{"print, stats", "print the content, or the list and allocator statistics"},
	{"cmp v...", "compare the list with the values"},
	{"undo", "revert the last modification"},
}

func init() {
	commands = []command{
		{
			name: cmdSetOptName,
			matcher: regexp.MustCompile("(?i)^(?:(setoption$|setopt$)|(setoption|setopt)\\s+(?P<" +
				cmdSetOptName + ">.+))"),
			cmdFn: setoptFn,
			help:  "show or set options, e.g. 'setopt print-limit=20 undo=5'",
		},
		{
			name:    cmdQuitName,
			matcher: regexp.MustCompile("(?i)^(?:quit|exit)$"),
			cmdFn:   quitFn,
			help:    "exit the program",
		},
		{
			name:    cmdHelpName,
			matcher: regexp.MustCompile("(?i)^help$"),
			cmdFn:   helpFn,
			help:    "show help",
		},
		{
			name:    cmdListName,
			matcher: regexp.MustCompile("^.+$"),
			cmdFn:   listFn,
			help:    "list commands, see below",
		},
	}
}

func execCmd(input string, cc *cmdCtx, ctx context.Context) error {
	for _, d := range commands {
		if !d.matcher.MatchString(input) {
			continue
		}
		vars := getInputVars(d.matcher, input)
		cc.optKV = vars[cmdSetOptName]
		cc.input = input
		return d.cmdFn(cc, ctx)
	}
	return fmt.Errorf("unknown command=%v", input)
}

func getInputVars(re *regexp.Regexp, input string) map[string]string {
	match := re.FindStringSubmatch(input)
	varsMap := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i > 0 && i < len(match) {
			varsMap[name] = match[i]
		}
	}
	return varsMap
}

//===================== list =====================

func listFn(cc *cmdCtx, _ context.Context) error {
	return cc.sess.Exec(cc.w, cc.input)
}

//===================== setopt =====================

func setoptFn(cc *cmdCtx, _ context.Context) error {
	if strings.TrimSpace(cc.optKV) == "" {
		fmt.Fprintln(cc.w, cc.sess.Options())
		return nil
	}
	return logfmt.Unmarshal([]byte(cc.optKV), optHandler{cc})
}

func (oh optHandler) HandleLogfmt(key, val []byte) error {
	opt := strings.ToLower(string(key))
	n, err := strconv.Atoi(string(val))
	if err != nil {
		return fmt.Errorf("wrong value=%q for option=%v, integer expected", val, opt)
	}

	switch opt {
	case optPrintLimit:
		err = oh.cc.sess.SetPrintLimit(n)
	case optUndo:
		err = oh.cc.sess.SetUndoDepth(n)
	default:
		return fmt.Errorf("unknown option=%v", opt)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(oh.cc.w, "%s=%d\n", opt, n)
	return nil
}

//===================== quit =====================

func quitFn(_ *cmdCtx, _ context.Context) error {
	return errQuit
}

//===================== help =====================

func helpFn(cc *cmdCtx, _ context.Context) error {
	fmt.Fprintf(cc.w, "\n\t%-10s\n", "[HELP]")
	for _, c := range commands {
		fmt.Fprintf(cc.w, "\n\t%-15s %s", c.name, c.help)
	}
	fmt.Fprint(cc.w, "\n")
	for _, op := range listOps {
		fmt.Fprintf(cc.w, "\n\t    %-15s %s", op[0], op[1])
	}
	fmt.Fprint(cc.w, "\n\n")
	return nil
}
