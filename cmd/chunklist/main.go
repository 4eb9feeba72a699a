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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/jrivets/log4g"
	"github.com/logrange/chunklist/cli"
	"github.com/pkg/errors"
	ucli "gopkg.in/urfave/cli.v2"
)

const (
	Version = "0.1.0"
)

const (
	// Common flag names
	argLogCfgFile = "log-config-file"
	argCfgFile    = "config-file"

	// List flag names
	argChunkSize   = "chunk-size"
	argAllocator   = "allocator"
	argMaxElements = "max-elements"

	// Bench flag names
	argBenchCount = "count"
)

var log = log4g.GetLogger("chunklist")
var cfg = cli.NewDefaultConfig()

func main() {
	defer log4g.Shutdown()

	dc := cli.NewDefaultConfig()
	listFlags := []ucli.Flag{
		&ucli.IntFlag{
			Name:  argChunkSize,
			Usage: fmt.Sprintf("The list chunk capacity, one of %v", cli.ChunkSizes),
			Value: dc.ChunkSize,
		},
		&ucli.StringFlag{
			Name:  argAllocator,
			Usage: "The chunk allocator, \"heap\" or \"pool\"",
			Value: dc.Allocator,
		},
		&ucli.IntFlag{
			Name:  argMaxElements,
			Usage: "The maximum number of allocated elements, 0 means no limit",
			Value: dc.MaxElements,
		},
	}

	app := &ucli.App{
		Name:    "chunklist",
		Version: Version,
		Usage:   "Chunked list shell and benchmark",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  argLogCfgFile,
				Usage: "The log4g configuration file name",
			},
			&ucli.StringFlag{
				Name:  argCfgFile,
				Usage: "The chunklist configuration file name (.json, .yaml)",
			},
		},
		Before: before,
		Commands: []*ucli.Command{
			{
				Name:      "shell",
				Usage:     "Run the list shell, reads the commands from stdin if it is not a terminal",
				UsageText: "chunklist shell [command options]",
				Action:    runShell,
				Flags:     listFlags,
			},
			{
				Name:      "exec",
				Usage:     "Execute list commands",
				ArgsUsage: "[command]...",
				Action:    runExec,
				Flags:     listFlags,
			},
			{
				Name:      "bench",
				Usage:     "Run the list benchmark",
				UsageText: "chunklist bench [command options]",
				Action:    runBench,
				Flags: append([]ucli.Flag{
					&ucli.IntFlag{
						Name:  argBenchCount,
						Usage: "Number of elements",
						Value: 1000000,
					},
				}, listFlags...),
			},
		},
	}

	sort.Sort(ucli.FlagsByName(app.Flags))
	for _, c := range app.Commands {
		sort.Sort(ucli.FlagsByName(c.Flags))
	}
	sort.Sort(ucli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func before(c *ucli.Context) error {
	logCfgFile := c.String(argLogCfgFile)
	if logCfgFile != "" {
		if _, err := os.Stat(logCfgFile); os.IsNotExist(err) {
			log.Warn("No file ", logCfgFile, " will use default log4g configuration")
		} else {
			log.Info("Loading log4g config from ", logCfgFile)
			err := log4g.ConfigF(logCfgFile)
			if err != nil {
				err := errors.Wrapf(err, "Could not parse %s file as a log4g configuration, please check syntax ", logCfgFile)
				log.Fatal(err)
				return err
			}
		}
	}

	fc, err := cli.ReadConfigFromFile(c.String(argCfgFile))
	if err != nil {
		return err
	}
	if fc != nil {
		cfg = fc
	}
	return nil
}

func runShell(c *ucli.Context) error {
	if c.Args().Len() > 0 {
		return fmt.Errorf("no arguments expected, but %s", c.Args().Slice())
	}
	applyParamsToCfg(c)
	return cli.Shell(newCtx(), cfg)
}

func runExec(c *ucli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one command is expected, e.g. chunklist exec \"push 1 2 3\" print")
	}
	applyParamsToCfg(c)
	return cli.Exec(newCtx(), cfg, c.Args().Slice(), os.Stdout)
}

func runBench(c *ucli.Context) error {
	applyParamsToCfg(c)
	return cli.Bench(newCtx(), cfg, c.Int(argBenchCount), os.Stdout)
}

// applyParamsToCfg overrides cfg by the flags which differ from the defaults
func applyParamsToCfg(c *ucli.Context) {
	dc := cli.NewDefaultConfig()
	if cs := c.Int(argChunkSize); dc.ChunkSize != cs {
		cfg.ChunkSize = cs
	}
	if a := c.String(argAllocator); dc.Allocator != a {
		cfg.Allocator = a
	}
	if me := c.Int(argMaxElements); dc.MaxElements != me {
		cfg.MaxElements = me
	}
}

func newCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		s := <-sigChan
		log.Info("Got signal \"", s, "\", cancelling context ")
		cancel()
	}()
	return ctx
}
