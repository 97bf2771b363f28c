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


package ingestion

import (
	"context"
	"log/slog"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/midi"
	"github.com/poiesic/leitmotif/storage"
)

// processor is an internal interface for importing one file.
type processor interface {
	// process reads the file at path and stores the resulting score.
	process(ctx context.Context, path string) (*core.Score, error)
}

// midiProcessor reads Standard MIDI Files and stores them in a repository.
type midiProcessor struct {
	repository storage.ScoreRepository
	opts       []midi.Option
	logger     *slog.Logger
}

func newMidiProcessor(repository storage.ScoreRepository, opts []midi.Option, logger *slog.Logger) *midiProcessor {
	return &midiProcessor{
		repository: repository,
		opts:       append([]midi.Option{midi.WithLogger(logger)}, opts...),
		logger:     logger,
	}
}

func (m *midiProcessor) process(ctx context.Context, path string) (*core.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	score, err := midi.ReadFile(path, m.opts...)
	if err != nil {
		return nil, err
	}
	stored, err := m.repository.AddScore(ctx, score)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("imported score", "path", path, "id", stored.Id, "parts", len(stored.Parts))
	return stored, nil
}
