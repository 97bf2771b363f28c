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


package search

import (
	"fmt"

	"github.com/poiesic/leitmotif/core"
)

// matcher scans parts for windows that agree with one motif.
type matcher struct {
	window       int // events per window
	comparisons  int
	restsAllowed bool
	// deferSymmetric leaves the orientation open while comparisons hold
	// both ways; only contour repeats do this.
	deferSymmetric bool
	compare        comparator
	radius         int
}

func newMatcher(q Query, motif core.Motif) (*matcher, error) {
	if motif.Len() < q.Mode.MinMotifLength() {
		return nil, fmt.Errorf("%w: %s search needs at least %d events, got %d",
			core.ErrInvalidMotif, q.Mode, q.Mode.MinMotifLength(), motif.Len())
	}
	m := &matcher{
		window:      motif.Len(),
		comparisons: motif.Len(),
		radius:      q.ContextRadius,
	}
	if q.Mode.Pairwise() {
		m.comparisons = motif.Len() - 1
	}

	events := motif.Events
	switch q.Mode {
	case ModeNote:
		m.compare = noteComparator(events, q.IgnoreOctave)
	case ModePitch:
		m.compare = pitchComparator(events, q.IgnoreOctave)
	case ModeRhythm:
		m.compare = rhythmComparator(events)
		m.restsAllowed = true
	case ModeChromatic:
		m.compare = chromaticComparator(events, q.AllowInverse)
	case ModeGeneric:
		m.compare = genericComparator(events, q.AllowApprox, q.AllowInverse)
	case ModeContour:
		m.compare = contourComparator(events, q.AllowInverse)
		m.deferSymmetric = true
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidQuery, q.Mode)
	}
	return m, nil
}

// evaluate runs every comparison over a window and returns the orientation
// it matched under. The first comparison fixes the orientation, regular
// whenever the direct reading holds. In contour mode a comparison that holds
// under both readings leaves it open until one holds under only one reading.
func (m *matcher) evaluate(window []core.Event) (core.Orientation, bool) {
	orientation := core.OrientationNone
	for k := 0; k < m.comparisons; k++ {
		v := m.compare(k, window)
		switch orientation {
		case core.OrientationNone:
			switch {
			case v.regular && v.inverse && m.deferSymmetric:
			case v.regular:
				orientation = core.OrientationRegular
			case v.inverse:
				orientation = core.OrientationInverse
			default:
				return core.OrientationNone, false
			}
		case core.OrientationRegular:
			if !v.regular {
				return core.OrientationNone, false
			}
		case core.OrientationInverse:
			if !v.inverse {
				return core.OrientationNone, false
			}
		}
	}
	if orientation == core.OrientationNone {
		orientation = core.OrientationRegular
	}
	return orientation, true
}

// scan returns the regular and inverse matches in one part, in window order.
func (m *matcher) scan(part *core.Part, partIndex int) (regular, inverse []core.Match) {
	events := part.Events()
	positions := part.EventPositions()

	for s := 0; s+m.window <= len(events); s++ {
		window := events[s : s+m.window]
		if !m.restsAllowed && hasRest(window) {
			continue
		}
		orientation, ok := m.evaluate(window)
		if !ok {
			continue
		}

		before, after := expandContext(part, positions[s], positions[s+m.window-1], m.radius)
		matched := make([]core.Event, 0, len(before)+m.window+len(after))
		matched = append(matched, before...)
		matched = append(matched, window...)
		matched = append(matched, after...)

		match := core.Match{
			PartIndex:   partIndex,
			Start:       s,
			Length:      m.window,
			Before:      len(before),
			After:       len(after),
			Events:      matched,
			Orientation: orientation,
			Clef:        part.Clef,
		}
		if orientation == core.OrientationInverse {
			inverse = append(inverse, match)
		} else {
			regular = append(regular, match)
		}
	}
	return regular, inverse
}

func hasRest(events []core.Event) bool {
	for _, e := range events {
		if !e.IsNote() {
			return true
		}
	}
	return false
}
