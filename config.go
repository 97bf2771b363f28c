// Copyright 2025 Poiesic Systems
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


package leitmotif

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/poiesic/leitmotif/midi"
)

// Environment variables read by LoadConfig.
const (
	EnvDBPath   = "LEITMOTIF_DB"
	EnvPoolSize = "LEITMOTIF_POOL_SIZE"
	EnvGrid     = "LEITMOTIF_GRID"
)

// DefaultDBPath is the score library directory used when none is configured.
const DefaultDBPath = "leitmotif-data"

// Config holds configuration for a score Library.
type Config struct {
	// DBPath is the BadgerDB directory. Ignored when InMemory is set.
	DBPath string

	// InMemory keeps the library in memory; nothing is written to disk.
	InMemory bool

	// PoolSize is the worker count for searches and imports.
	// Zero means runtime.NumCPU() / 2, with a minimum of 1.
	PoolSize int

	// Grid is the MIDI quantization step in quarter lengths.
	// Default: 0.25 (a sixteenth)
	Grid float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDBPath sets the BadgerDB directory.
func WithDBPath(path string) ConfigOption {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithInMemory keeps the library in memory.
func WithInMemory(inMemory bool) ConfigOption {
	return func(c *Config) {
		c.InMemory = inMemory
	}
}

// WithPoolSize sets the worker count for searches and imports.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithGrid sets the MIDI quantization step.
func WithGrid(quarters float64) ConfigOption {
	return func(c *Config) {
		c.Grid = quarters
	}
}

// DefaultConfig returns a Config for an on-disk library in DefaultDBPath.
func DefaultConfig() *Config {
	return &Config{
		DBPath: DefaultDBPath,
		Grid:   midi.DefaultGrid,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDBPath("/var/lib/leitmotif"),
//	    WithPoolSize(4),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig builds a Config from the environment. Variables found in the
// given dotenv files (default ".env") are added to the environment first;
// missing files are ignored and variables already set are not overridden.
// Options are applied last.
func LoadConfig(files []string, opts ...ConfigOption) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading env file: %w", err)
	}

	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvPoolSize); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvPoolSize, err)
		}
		cfg.PoolSize = size
	}
	if v, ok := os.LookupEnv(EnvGrid); ok && v != "" {
		grid, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvGrid, err)
		}
		cfg.Grid = grid
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if !c.InMemory && c.DBPath == "" {
		return errors.New("config: DBPath is required unless InMemory is set")
	}
	if c.PoolSize < 0 {
		return errors.New("config: PoolSize must not be negative")
	}
	if c.Grid <= 0 {
		return errors.New("config: Grid must be positive")
	}
	return nil
}
