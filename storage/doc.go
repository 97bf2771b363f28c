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


// Package storage defines the persistence layer for the score library.
//
// Scores are stored whole and addressed by a content ID derived from their
// composer and title, so importing the same piece twice is detected as a
// duplicate rather than stored again.
//
// # Constructor Return Type Pattern
//
// Backend constructors return the storage interfaces rather than concrete
// types:
//
//	repo, err := badger.NewScoreRepository(backend)  // returns storage.ScoreRepository
//
// Callers depend on ScoreRepository only, which keeps BadgerDB details out of
// the search and import code and lets tests use the in-memory backend.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewScoreRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	added, err := repo.AddScore(ctx, score)
//
// For tests:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// Repository implementations are safe for concurrent use.
package storage
