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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/jrivets/log4g"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Config struct defines the chunklist shell settings
	Config struct {
		// ChunkSize is the capacity of one chunk of the session list. Only
		// the predefined capacities (4, 8, 10, 12, 16, 32, 64, 128) are
		// supported
		ChunkSize int `mapstructure:"chunkSize"`

		// Allocator is the chunk allocator: "heap" or "pool"
		Allocator string `mapstructure:"allocator"`

		// MaxElements limits the number of list elements which could be
		// allocated. 0 means no limit
		MaxElements int `mapstructure:"maxElements"`

		// PoolIdle is the number of free chunks kept by the "pool" allocator
		PoolIdle int `mapstructure:"poolIdle"`

		// UndoDepth is the number of snapshots kept for the undo command. 0
		// disables undo
		UndoDepth int `mapstructure:"undoDepth"`

		// PrintLimit is the maximum number of elements printed by print
		PrintLimit int `mapstructure:"printLimit"`

		// HistoryFile is where the interactive shell keeps the commands history
		HistoryFile string `mapstructure:"historyFile"`
	}
)

const (
	AllocatorHeap = "heap"
	AllocatorPool = "pool"

	shellHistoryFileName = ".chunklist_history"
)

// ChunkSizes contains the chunk capacities a session could be started with
var ChunkSizes = []int{4, 8, 10, 12, 16, 32, 64, 128}

var configLog = log4g.GetLogger("cli.Config")

func NewDefaultConfig() *Config {
	cfg := new(Config)
	cfg.ChunkSize = 16
	cfg.Allocator = AllocatorHeap
	cfg.MaxElements = 10000000
	cfg.PoolIdle = 16
	cfg.UndoDepth = 16
	cfg.PrintLimit = 100
	cfg.HistoryFile = historyFilePath()
	return cfg
}

func historyFilePath() string {
	var fileDir = os.TempDir()
	usr, err := user.Current()
	if err == nil {
		fileDir = usr.HomeDir
	}
	return filepath.Join(fileDir, shellHistoryFileName)
}

func (c *Config) Check() error {
	if !supportedChunkSize(c.ChunkSize) {
		return fmt.Errorf("unsupported chunkSize=%d, expected one of %v", c.ChunkSize, ChunkSizes)
	}
	switch strings.ToLower(c.Allocator) {
	case AllocatorHeap, AllocatorPool:
	default:
		return fmt.Errorf("unknown allocator=%q, expected %q or %q", c.Allocator, AllocatorHeap, AllocatorPool)
	}
	if c.MaxElements < 0 {
		return fmt.Errorf("maxElements=%d must not be negative", c.MaxElements)
	}
	if c.PoolIdle < 0 {
		return fmt.Errorf("poolIdle=%d must not be negative", c.PoolIdle)
	}
	if c.UndoDepth < 0 {
		return fmt.Errorf("undoDepth=%d must not be negative", c.UndoDepth)
	}
	if c.PrintLimit < 1 {
		return fmt.Errorf("printLimit=%d must be positive", c.PrintLimit)
	}
	return nil
}

// Copy returns a deep copy of c
func (c *Config) Copy() *Config {
	return deepcopy.Copy(c).(*Config)
}

func (c *Config) String() string {
	return fmt.Sprint("\n\tChunkSize=", c.ChunkSize,
		"\n\tAllocator=", c.Allocator,
		"\n\tMaxElements=", c.MaxElements,
		"\n\tPoolIdle=", c.PoolIdle,
		"\n\tUndoDepth=", c.UndoDepth,
		"\n\tPrintLimit=", c.PrintLimit,
		"\n\tHistoryFile=", c.HistoryFile,
	)
}

func supportedChunkSize(n int) bool {
	for _, cs := range ChunkSizes {
		if cs == n {
			return true
		}
	}
	return false
}

// ReadConfigFromFile reads the config from filename. The file could be JSON
// or YAML, which is chosen by the file extension (.yaml, .yml are YAML, JSON
// otherwise). The keys of the file override the default config, so an
// explicit 0 there is kept. It returns nil, if filename is empty or the file
// is not found.
func ReadConfigFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		configLog.Warn("There is no file ", filename, " for reading chunklist config, will use default configuration.")
		return nil, nil
	}

	cfgData, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read data from config file %s", filename)
	}

	var m map[string]interface{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(cfgData, &m)
	default:
		err = json.Unmarshal(cfgData, &m)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal data from config file %s", filename)
	}

	c, err := decodeConfig(m)
	if err != nil {
		return nil, errors.Wrapf(err, "wrong config in %s", filename)
	}
	configLog.Info("Configuration read from ", filename)
	return c, nil
}

// decodeConfig decodes m over the default config
func decodeConfig(m map[string]interface{}) (*Config, error) {
	c := NewDefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return nil, err
	}
	if err = dec.Decode(m); err != nil {
		return nil, err
	}
	return c, nil
}
