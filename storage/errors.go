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

import "errors"

// Errors returned by score repositories. Backends wrap them with detail;
// compare with errors.Is.
var (
	// ErrNotFound means no score has the requested ID or title.
	ErrNotFound = errors.New("score not found")

	// ErrDuplicateKey means a score with the same composer and title is already stored.
	ErrDuplicateKey = errors.New("score already stored")

	// ErrTransactionFailed means a write could not be committed.
	ErrTransactionFailed = errors.New("storage: commit failed")

	// ErrStorageClosed means the backend was used after Close.
	ErrStorageClosed = errors.New("storage: closed")

	// ErrInvalidQuery means a lookup was given an unusable key, such as a blank title.
	ErrInvalidQuery = errors.New("storage: invalid lookup")

	// ErrSerializationFailed means a stored score could not be decoded.
	ErrSerializationFailed = errors.New("storage: score encoding invalid")

	// ErrTruncatedData means a stored value is empty or cut short.
	ErrTruncatedData = errors.New("storage: truncated value")
)
