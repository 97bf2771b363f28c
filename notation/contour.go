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
	"unicode"

	"github.com/poiesic/leitmotif/core"
)

// ContourStart is the placeholder pitch of the first contour event.
var ContourStart = core.Pitch{Letter: core.LetterG, Octave: 4, HasOctave: true}

// ParseContour reads a Parsons code string. It must begin with "*", which
// yields the first event; each following u, d or r (either case) yields an
// event one semitone above, one semitone below, or equal to the previous one.
func ParseContour(s string) ([]core.Event, error) {
	rs := []rune(s)
	first := -1
	for i, r := range rs {
		if !unicode.IsSpace(r) {
			first = i
			break
		}
	}
	if first < 0 || rs[first] != '*' {
		return nil, malformed(s, max(first, 0), "contour must start with '*'")
	}

	ps := ContourStart.PS()
	events := []core.Event{core.NewNote(ContourStart, quarter)}
	for i := first + 1; i < len(rs); i++ {
		switch rs[i] {
		case 'u', 'U':
			ps++
		case 'd', 'D':
			ps--
		case 'r', 'R':
		default:
			if unicode.IsSpace(rs[i]) {
				continue
			}
			return nil, malformed(s, i, "unexpected %q", rs[i])
		}
		events = append(events, core.NewNote(core.PitchFromPS(ps), quarter))
	}
	return events, nil
}
