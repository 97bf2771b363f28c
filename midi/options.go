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


package midi

import "log/slog"

// DefaultGrid is the default quantization step in quarter lengths.
const DefaultGrid = 0.25

type config struct {
	grid     float64
	title    string
	composer string
	logger   *slog.Logger
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		grid:   DefaultGrid,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Option configures how a file is read.
type Option func(*config) error

// WithGrid sets the quantization step in quarter lengths.
func WithGrid(quarters float64) Option {
	return func(c *config) error {
		if quarters <= 0 {
			return ErrInvalidGrid
		}
		c.grid = quarters
		return nil
	}
}

// WithTitle sets the score title.
func WithTitle(title string) Option {
	return func(c *config) error {
		c.title = title
		return nil
	}
}

// WithComposer sets the score composer.
func WithComposer(composer string) Option {
	return func(c *config) error {
		c.composer = composer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}
