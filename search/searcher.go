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


package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/leitmotif/core"
)

// Searcher runs motif searches, scanning the parts of a score concurrently.
type Searcher struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the number of parts scanned concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new Searcher. Call Release when done with it.
func NewSearcher(opts ...Option) (*Searcher, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Search finds every occurrence of the query's motif in score.
func (s *Searcher) Search(ctx context.Context, score *core.Score, query Query) (*Result, error) {
	return s.SearchWithMonitor(ctx, score, query, nil)
}

// SearchWithMonitor is Search with a monitor observing each stage.
// Cancellation is checked before each part is scanned; a cancelled search
// returns the context's error and no result.
func (s *Searcher) SearchWithMonitor(ctx context.Context, score *core.Score, query Query, monitor SearchMonitor) (*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if score == nil {
		return nil, ErrScoreRequired
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	monitor.Start(query)

	motif, err := ResolveMotif(score, query)
	if err != nil {
		s.logger.Error("error resolving motif", "mode", query.Mode, "err", err)
		return nil, err
	}
	m, err := newMatcher(query, motif)
	if err != nil {
		return nil, err
	}
	monitor.MotifResolved(motif)

	parts := make([]partResult, len(score.Parts))
	var wg sync.WaitGroup
	for i := range score.Parts {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			parts[i].regular, parts[i].inverse = m.scan(&score.Parts[i], i)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			s.logger.Error("error submitting part scan", "part", i, "err", submitErr)
			return nil, submitErr
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Debug("search cancelled", "mode", query.Mode, "err", err)
		return nil, err
	}

	for i, p := range parts {
		monitor.PartScanned(i, p.regular, p.inverse)
	}

	result := assemble(motif, parts, query.Order)
	s.logger.Debug("search complete", "mode", query.Mode, "motif", motif.Source,
		"regular", len(result.Regular), "inverse", len(result.Inverse))
	monitor.Finish(result)

	return result, nil
}

// Release releases the worker pool.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
