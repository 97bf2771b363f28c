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


package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/storage"
)

// ScoreRepository implements storage.ScoreRepository for BadgerDB.
type ScoreRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ScoreRepository = (*ScoreRepository)(nil)

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(backend *Backend) (*ScoreRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &ScoreRepository{
		backend: backend,
		logger:  backend.logger.With("component", "score-repository"),
	}, nil
}

// Close releases resources. ScoreRepository has no resources to release.
func (r *ScoreRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ScoreRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

func (r *ScoreRepository) AddScore(ctx context.Context, score *core.Score) (*core.Score, error) {
	if err := core.ValidateScore(score); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	score.Id = core.IDFromContent(score.Key())

	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		key := makeScoreKey(score.Id)
		existing, err := readScore(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: score %q by %q", storage.ErrDuplicateKey, score.Title, score.Composer)
		}

		if err := tx.Set(key, storage.MarshalScore(score)); err != nil {
			return err
		}
		return tx.Set(makeScoreTitleKey(score.Title, score.Id), storage.MarshalID(score.Id))
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("score stored", "id", score.Id, "title", score.Title, "parts", len(score.Parts))
	return score, nil
}

func (r *ScoreRepository) GetScore(ctx context.Context, id core.ID) (*core.Score, error) {
	var result *core.Score
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readScore(tx, makeScoreKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

func (r *ScoreRepository) FindScoreByTitle(ctx context.Context, title string) (*core.Score, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is empty", storage.ErrInvalidQuery)
	}

	var result *core.Score
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		prefix := makePartialScoreTitleKey(title)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Index keys end in big-endian IDs, so the first hit has the lowest ID.
		iter.Seek(prefix)
		if !iter.ValidForPrefix(prefix) {
			return storage.ErrNotFound
		}

		var id core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readScore(tx, makeScoreKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			r.logger.Warn("title index points at missing score", "title", title, "id", id)
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

func (r *ScoreRepository) ListScores(ctx context.Context) ([]storage.ScoreSummary, error) {
	var results []storage.ScoreSummary
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(scoreRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			var score *core.Score
			err := item.Value(func(val []byte) error {
				var err error
				score, err = storage.UnmarshalScore(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, storage.Summarize(score))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		ti, tj := normalizeTitle(results[i].Title), normalizeTitle(results[j].Title)
		if ti != tj {
			return ti < tj
		}
		return results[i].Id < results[j].Id
	})
	return results, nil
}

func (r *ScoreRepository) DeleteScore(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		key := makeScoreKey(id)
		score, err := readScore(tx, key)
		if err != nil {
			return err
		}
		if score == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeScoreTitleKey(score.Title, score.Id)); err != nil {
			return err
		}
		return tx.Delete(key)
	}, true)
}

// readScore reads a score from the transaction. A missing key yields nil, nil.
func readScore(tx *badger.Txn, key []byte) (*core.Score, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var score *core.Score
	err = item.Value(func(val []byte) error {
		var err error
		score, err = storage.UnmarshalScore(val)
		return err
	})
	return score, err
}
