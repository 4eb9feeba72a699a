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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/jrivets/log4g"
	"github.com/logrange/linker"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

type (
	// history keeps the interactive shell commands in Config.HistoryFile.
	// The file is accessed under a flock, so concurrent shells don't
	// corrupt it.
	history struct {
		Config *Config `inject:""`

		fn     string
		logger log4g.Logger
	}

	shell struct {
		sess *Session
		hist *history
	}
)

const shellPrompt = "cl>"

// Shell starts the chunklist shell. It is interactive if stdin is a
// terminal, otherwise the commands are read from stdin line by line.
func Shell(ctx context.Context, cfg *Config) error {
	hist := newHistory()
	return withSession(ctx, cfg, func(s *Session) error {
		fd := os.Stdin.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return runScript(ctx, s, os.Stdin, os.Stdout)
		}
		newShell(s, hist).run(ctx)
		return nil
	}, linker.Component{Name: "", Value: hist})
}

// Exec runs the commands one by one. It stops on the first failed command.
func Exec(ctx context.Context, cfg *Config, cmds []string, w io.Writer) error {
	return withSession(ctx, cfg, func(s *Session) error {
		cc := &cmdCtx{sess: s, w: w}
		for _, c := range cmds {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			err := execCmd(c, cc, ctx)
			if err == errQuit {
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "command %q failed", c)
			}
		}
		return nil
	})
}

// withSession builds the session components, runs f and shuts the
// components down.
func withSession(ctx context.Context, cfg *Config, f func(s *Session) error, comps ...linker.Component) error {
	sess := NewSession()
	comps = append(comps,
		linker.Component{Name: "", Value: cfg},
		linker.Component{Name: "", Value: sess},
	)
	inj, err := initComponents(ctx, comps)
	if err != nil {
		return err
	}
	defer inj.Shutdown()
	return f(sess)
}

// initComponents returns an error instead of the injector panic
func initComponents(ctx context.Context, comps []linker.Component) (inj *linker.Injector, err error) {
	defer func() {
		if r := recover(); r != nil {
			inj = nil
			err = fmt.Errorf("could not initialize components: %v", r)
		}
	}()
	inj = linker.New()
	inj.SetLogger(log4g.GetLogger("injector"))
	inj.Register(comps...)
	inj.Init(ctx)
	return inj, nil
}

// runScript executes commands read from r. Empty lines and lines started
// with '#' are skipped. Failed commands are reported, but don't stop the
// script.
func runScript(ctx context.Context, s *Session, r io.Reader, w io.Writer) error {
	cc := &cmdCtx{sess: s, w: w}
	sc := bufio.NewScanner(r)
	for sc.Scan() && ctx.Err() == nil {
		inp := strings.TrimSpace(sc.Text())
		if inp == "" || strings.HasPrefix(inp, "#") {
			continue
		}
		err := execCmd(inp, cc, ctx)
		if err == errQuit {
			return nil
		}
		if err != nil {
			printError(err)
		}
	}
	return sc.Err()
}

func printError(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
}

//===================== shell =====================

func newShell(sess *Session, hist *history) *shell {
	s := new(shell)
	s.sess = sess
	s.hist = hist
	return s
}

func (s *shell) run(ctx context.Context) {
	lnr := liner.NewLiner()
	lnr.SetCtrlCAborts(true)

	s.hist.load(lnr)
	defer func() {
		s.hist.save(lnr)
		_ = lnr.Close()
		fmt.Println("bye!")
	}()

	cc := &cmdCtx{sess: s.sess, w: os.Stdout}
	for ctx.Err() == nil {
		inp, err := lnr.Prompt(shellPrompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				break
			}
			printError(err)
			continue
		}

		inp = strings.TrimSpace(inp)
		if inp == "" {
			continue
		}

		lnr.AppendHistory(inp)
		err = execCmd(inp, cc, ctx)
		if err == errQuit {
			break
		}
		if err != nil {
			printError(err)
		}
	}
}

//===================== history =====================

func newHistory() *history {
	h := new(history)
	h.logger = log4g.GetLogger("cli.history")
	return h
}

// PostConstruct is a part of linker.PostConstructor
func (h *history) PostConstruct() {
	h.fn = h.Config.HistoryFile
}

func (h *history) load(lnr *liner.State) {
	h.withLock(func() error {
		f, err := os.OpenFile(h.fn, os.O_RDONLY|os.O_CREATE, 0640)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = lnr.ReadHistory(f)
		return err
	})
}

func (h *history) save(lnr *liner.State) {
	h.withLock(func() error {
		f, err := os.OpenFile(h.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = lnr.WriteHistory(f)
		return err
	})
}

func (h *history) withLock(f func() error) {
	if h.fn == "" {
		return
	}
	fl := flock.New(h.fn + ".lock")
	if ok, err := fl.TryLock(); !ok || err != nil {
		h.logger.Warn("Could not lock ", h.fn, ", the history is skipped, err=", err)
		return
	}
	defer fl.Unlock()
	if err := f(); err != nil {
		h.logger.Warn("History file ", h.fn, " error: ", err)
	}
}
