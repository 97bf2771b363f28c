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


package storage

import (
	"context"

	"github.com/poiesic/leitmotif/core"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// Repository calls made with the context passed to fn join the
	// transaction. If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ScoreSummary describes a stored score without its events.
type ScoreSummary struct {
	Id       core.ID
	Title    string
	Composer string
	Parts    int
	Notes    int
}

// Summarize builds the summary of a score.
func Summarize(score *core.Score) ScoreSummary {
	s := ScoreSummary{
		Id:       score.Id,
		Title:    score.Title,
		Composer: score.Composer,
		Parts:    len(score.Parts),
	}
	for i := range score.Parts {
		s.Notes += len(score.Parts[i].Notes())
	}
	return s
}

type ScoreRepository interface {
	Repository
	// AddScore validates and stores a score.
	// The ID is set from the score's composer and title.
	// Returns ErrDuplicateKey if a score with that ID already exists.
	AddScore(ctx context.Context, score *core.Score) (*core.Score, error)

	// GetScore retrieves a score by ID.
	// Returns ErrNotFound if the score doesn't exist.
	GetScore(ctx context.Context, id core.ID) (*core.Score, error)

	// FindScoreByTitle finds a score by title, ignoring case and surrounding
	// space. When several composers share a title the lowest ID wins.
	// Returns ErrNotFound if no score has the title.
	FindScoreByTitle(ctx context.Context, title string) (*core.Score, error)

	// ListScores returns summaries of all stored scores ordered by title.
	ListScores(ctx context.Context) ([]ScoreSummary, error)

	// DeleteScore removes a score and its title index entry.
	// Returns ErrNotFound if the score doesn't exist.
	DeleteScore(ctx context.Context, id core.ID) error
}
