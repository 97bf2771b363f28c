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


// Package report turns search results into text and highlight ranges.
// Nothing here changes a score or a result.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/search"
)

// DefaultColor is the highlight color used when none is given.
const DefaultColor = "#FF0000"

// ErrMatchNotLocated is returned for a match whose first event has no
// counterpart in the score.
var ErrMatchNotLocated = errors.New("match not located in score")

// Line summarizes one match.
func Line(m core.Match) string {
	line := fmt.Sprintf("Part %d from measure %d to %d", m.PartIndex, m.FirstMeasure(), m.LastMeasure())
	if m.Orientation == core.OrientationInverse {
		line += " (inverse)"
	}
	return line
}

// Lines summarizes every match of r in the result's order.
func Lines(r *search.Result) []string {
	all := r.All()
	lines := make([]string, len(all))
	for i, m := range all {
		lines[i] = Line(m)
	}
	return lines
}

// Write prints the match count followed by one indented line per match.
func Write(w io.Writer, r *search.Result) error {
	if _, err := fmt.Fprintf(w, "%d match(es) found:\n", r.Len()); err != nil {
		return err
	}
	for _, line := range Lines(r) {
		if _, err := fmt.Fprintf(w, "\t%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// Highlight marks the elements of one part covered by a match.
// First and Last are inclusive indices into Part.Elements.
type Highlight struct {
	PartIndex int
	First     int
	Last      int
	Color     string
}

// Highlights locates each match in score by the offset of its first event
// and returns the element range it covers. Matches that cannot be located
// are skipped and reported together in the returned error, each wrapping
// ErrMatchNotLocated.
func Highlights(score *core.Score, matches []core.Match, color string) ([]Highlight, error) {
	if color == "" {
		color = DefaultColor
	}
	highlights := make([]Highlight, 0, len(matches))
	var errs []error
	for _, m := range matches {
		h, ok := locate(score, m)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: part %d offset %g", ErrMatchNotLocated, m.PartIndex, m.Offset()))
			continue
		}
		h.Color = color
		highlights = append(highlights, h)
	}
	return highlights, errors.Join(errs...)
}

func locate(score *core.Score, m core.Match) (Highlight, bool) {
	p, err := score.Part(m.PartIndex)
	if err != nil || len(m.Events) == 0 {
		return Highlight{}, false
	}
	offset := m.Offset()
	first := -1
	for i, e := range p.Elements {
		if e.IsNoteOrRest() && e.Offset == offset {
			first = i
			break
		}
	}
	if first < 0 {
		return Highlight{}, false
	}

	remaining := len(m.Events)
	for i := first; i < len(p.Elements); i++ {
		if !p.Elements[i].IsNoteOrRest() {
			continue
		}
		remaining--
		if remaining == 0 {
			return Highlight{PartIndex: m.PartIndex, First: first, Last: i}, true
		}
	}
	return Highlight{}, false
}
