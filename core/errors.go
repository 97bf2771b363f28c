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


package core

import "errors"

// Domain errors
var (
	// ErrMalformedNotation indicates a motif string could not be parsed.
	ErrMalformedNotation = errors.New("malformed notation")

	// ErrInvalidMotif indicates a motif is too short for the requested search mode.
	ErrInvalidMotif = errors.New("invalid motif")

	// ErrInvalidDenominator indicates a rhythm denominator has no note value.
	ErrInvalidDenominator = errors.New("invalid rhythm denominator")

	// ErrIndexOutOfRange indicates a part index or note slice is outside the score.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInexpressibleDuration indicates a length has no single dotted note value.
	ErrInexpressibleDuration = errors.New("duration cannot be expressed as a dotted note value")

	// ErrInvalidScore indicates a Score failed validation.
	ErrInvalidScore = errors.New("invalid score")

	// ErrInvalidPart indicates a Part failed validation.
	ErrInvalidPart = errors.New("invalid part")

	// ErrEmptyTitle indicates the score Title field is empty.
	ErrEmptyTitle = errors.New("score title cannot be empty")
)
