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


package notation

import (
	"fmt"
	"unicode"

	"github.com/poiesic/leitmotif/core"
)

// quarter is the duration given to parsed pitches, which carry no rhythm.
var quarter = core.Duration{Type: core.Quarter}

func malformed(s string, pos int, format string, args ...any) error {
	return fmt.Errorf("%w: %q at %d: %s", core.ErrMalformedNotation, s, pos, fmt.Sprintf(format, args...))
}

func accidentalFromRune(r rune) (core.Accidental, bool) {
	switch r {
	case '#':
		return core.Sharp, true
	case '-':
		return core.Flat, true
	}
	return core.Natural, false
}

// ParsePitches reads pitch names without octaves.
//
// A letter A-G (either case) starts a note; a "#" or "-" directly after it
// is that note's accidental. A letter in final position is a complete note.
// An accidental only ever attaches to the letter immediately before it, so
// a stray or doubled accidental is malformed.
func ParsePitches(s string) ([]core.Event, error) {
	rs := []rune(s)
	events := make([]core.Event, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if unicode.IsSpace(r) {
			continue
		}
		letter, ok := core.LetterFromRune(r)
		if !ok {
			return nil, malformed(s, i, "unexpected %q", r)
		}
		p := core.Pitch{Letter: letter}
		if i+1 < len(rs) {
			if acc, ok := accidentalFromRune(rs[i+1]); ok {
				p.Accidental = acc
				i++
			}
		}
		events = append(events, core.NewNote(p, quarter))
	}
	return events, nil
}

// ParsePitchesWithOctave reads tokens of the form letter [accidental] digit.
// The octave is exactly one digit.
func ParsePitchesWithOctave(s string) ([]core.Event, error) {
	rs := []rune(s)
	events := make([]core.Event, 0, len(rs)/2)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if unicode.IsSpace(r) {
			continue
		}
		letter, ok := core.LetterFromRune(r)
		if !ok {
			return nil, malformed(s, i, "unexpected %q", r)
		}
		p := core.Pitch{Letter: letter, HasOctave: true}
		j := i + 1
		if j < len(rs) {
			if acc, ok := accidentalFromRune(rs[j]); ok {
				p.Accidental = acc
				j++
			}
		}
		if j >= len(rs) || !isDigit(rs[j]) {
			return nil, malformed(s, i, "pitch %s has no octave", p.Name())
		}
		p.Octave = int(rs[j] - '0')
		if j+1 < len(rs) && isDigit(rs[j+1]) {
			return nil, malformed(s, j, "octave must be a single digit")
		}
		events = append(events, core.NewNote(p, quarter))
		i = j
	}
	return events, nil
}

// ParseMelody picks the octave-aware parser when s contains any digit and
// the pitch-only parser otherwise.
func ParseMelody(s string) ([]core.Event, error) {
	for _, r := range s {
		if isDigit(r) {
			return ParsePitchesWithOctave(s)
		}
	}
	return ParsePitches(s)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
