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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/ingestion"
	"github.com/poiesic/leitmotif/search"
	"github.com/poiesic/leitmotif/storage"
	"github.com/poiesic/leitmotif/storage/badger"
)

// Library is a persistent collection of scores that can be searched for motifs.
type Library struct {
	cfg      *Config
	backend  *badger.Backend
	repo     storage.ScoreRepository
	searcher *search.Searcher
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(o *libraryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens the library described by cfg. A nil cfg means DefaultConfig().
func Open(cfg *Config, opts ...LibraryOption) (*Library, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &libraryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.DBPath, cfg.InMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewScoreRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if cfg.PoolSize > 0 {
		searchOpts = append(searchOpts, search.WithPoolSize(cfg.PoolSize))
	}
	searcher, err := search.NewSearcher(searchOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Library{
		cfg:      cfg,
		backend:  backend,
		repo:     repo,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

func (l *Library) Close() error {
	l.searcher.Release()

	if err := l.repo.Close(); err != nil {
		l.logger.Error("error closing score repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (l *Library) ScoreRepository() storage.ScoreRepository {
	return l.repo
}

// NewPipeline creates an import pipeline writing into this library. The
// configured pool size and grid apply unless opts override them.
func (l *Library) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	base := []ingestion.Option{ingestion.WithLogger(l.logger), ingestion.WithGrid(l.cfg.Grid)}
	if l.cfg.PoolSize > 0 {
		base = append(base, ingestion.WithPoolSize(l.cfg.PoolSize))
	}
	return ingestion.NewPipeline(l.repo, append(base, opts...)...)
}

// Import reads the given MIDI files into the library.
func (l *Library) Import(ctx context.Context, paths ...string) (*ingestion.ImportReport, error) {
	pipeline, err := l.NewPipeline()
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.Import(ctx, paths...)
}

func (l *Library) List(ctx context.Context) ([]storage.ScoreSummary, error) {
	return l.repo.ListScores(ctx)
}

// Score resolves ref to a stored score. A decimal ref is tried as an ID
// first; any other ref, or an ID that is not stored, is looked up as a title.
func (l *Library) Score(ctx context.Context, ref string) (*core.Score, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		score, err := l.repo.GetScore(ctx, core.ID(id))
		if err == nil {
			return score, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}
	score, err := l.repo.FindScoreByTitle(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("score %q: %w", ref, err)
	}
	return score, nil
}

// Search finds the query's motif in the score named by ref.
func (l *Library) Search(ctx context.Context, ref string, query search.Query) (*core.Score, *search.Result, error) {
	return l.SearchWithMonitor(ctx, ref, query, nil)
}

// SearchWithMonitor is Search with progress hooks.
func (l *Library) SearchWithMonitor(ctx context.Context, ref string, query search.Query, monitor search.SearchMonitor) (*core.Score, *search.Result, error) {
	score, err := l.Score(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	result, err := l.searcher.SearchWithMonitor(ctx, score, query, monitor)
	if err != nil {
		return nil, nil, err
	}
	return score, result, nil
}

// Delete removes the score named by ref and returns it.
func (l *Library) Delete(ctx context.Context, ref string) (*core.Score, error) {
	var score *core.Score
	err := l.repo.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		score, err = l.Score(ctx, ref)
		if err != nil {
			return err
		}
		return l.repo.DeleteScore(ctx, score.Id)
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug("score deleted", "id", score.Id, "title", score.Title)
	return score, nil
}
