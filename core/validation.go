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

import (
	"fmt"
)

// ValidateScore validates a Score according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - every part must pass ValidatePart
//
// NOT validated:
//   - ID (assigned by storage)
//   - Composer (optional)
func ValidateScore(score *Score) error {
	if score == nil {
		return fmt.Errorf("%w: score is nil", ErrInvalidScore)
	}

	if score.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScore, ErrEmptyTitle)
	}

	for i := range score.Parts {
		if err := ValidatePart(&score.Parts[i]); err != nil {
			return fmt.Errorf("%w: part %d: %w", ErrInvalidScore, i, err)
		}
	}

	return nil
}

// ValidatePart validates a Part according to domain rules.
//
// Validation rules:
//   - every element has a known Kind
//   - offsets and measure numbers never decrease
//   - notes have a letter A-G and at most one sharp or flat
//   - note and rest durations have a known type and no negative dots
func ValidatePart(part *Part) error {
	if part == nil {
		return fmt.Errorf("%w: part is nil", ErrInvalidPart)
	}

	prevOffset := 0.0
	prevMeasure := 0
	for i, e := range part.Elements {
		if e.Kind < KindNote || e.Kind > KindMarker {
			return fmt.Errorf("%w: element %d has unknown kind %d", ErrInvalidPart, i, e.Kind)
		}
		if i > 0 {
			if e.Offset < prevOffset {
				return fmt.Errorf("%w: element %d offset %g precedes %g", ErrInvalidPart, i, e.Offset, prevOffset)
			}
			if e.Measure < prevMeasure {
				return fmt.Errorf("%w: element %d measure %d precedes %d", ErrInvalidPart, i, e.Measure, prevMeasure)
			}
		}
		prevOffset = e.Offset
		prevMeasure = e.Measure

		if e.IsNote() {
			if e.Pitch.Letter > LetterB {
				return fmt.Errorf("%w: element %d has letter %d", ErrInvalidPart, i, e.Pitch.Letter)
			}
			if e.Pitch.Accidental < Flat || e.Pitch.Accidental > Sharp {
				return fmt.Errorf("%w: element %d has accidental %d", ErrInvalidPart, i, e.Pitch.Accidental)
			}
		}
		if e.IsNoteOrRest() {
			if !e.Duration.Type.valid() || e.Duration.Dots < 0 {
				return fmt.Errorf("%w: element %d has duration %v", ErrInvalidPart, i, e.Duration)
			}
		}
	}

	return nil
}
