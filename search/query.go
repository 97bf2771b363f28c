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
	"strings"

	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/notation"
)

// Mode selects the equivalence used to compare a motif with a window.
type Mode uint8

const (
	ModeNote Mode = iota + 1
	ModePitch
	ModeRhythm
	ModeChromatic
	ModeGeneric
	ModeContour
)

var modeNames = map[Mode]string{
	ModeNote:      "note",
	ModePitch:     "pitch",
	ModeRhythm:    "rhythm",
	ModeChromatic: "chromatic",
	ModeGeneric:   "generic",
	ModeContour:   "contour",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidQuery, s)
}

// Pairwise reports whether the mode compares adjacent pairs of events
// rather than single events.
func (m Mode) Pairwise() bool {
	return m == ModeChromatic || m == ModeGeneric || m == ModeContour
}

// MinMotifLength is the shortest motif the mode can search for.
func (m Mode) MinMotifLength() int {
	if m.Pairwise() {
		return 2
	}
	return 1
}

// Order selects how matches are ordered in a Result.
type Order uint8

const (
	// OrderSource orders by part index, then by window start.
	OrderSource Order = iota
	// OrderMeasure orders by the measure of each match's first event.
	OrderMeasure
)

func (o Order) String() string {
	switch o {
	case OrderSource:
		return "source"
	case OrderMeasure:
		return "measure"
	}
	return fmt.Sprintf("Order(%d)", o)
}

// ParseOrder returns the order with the given name. "part" is accepted as
// a synonym for "source".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source", "part":
		return OrderSource, nil
	case "measure":
		return OrderMeasure, nil
	}
	return 0, fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, s)
}

// MaxContextRadius is the largest supported ContextRadius.
const MaxContextRadius = 3

// Query describes one search.
//
// When Motif is set it is parsed and used as the motif, and Part, Start and
// End are ignored. Otherwise the motif is notes [Start, End) of part Part,
// counting notes only. Start and End skip rests while Match.Start counts
// notes and rests, so the two differ on a part that contains a rest.
type Query struct {
	Mode          Mode
	Motif         string
	Part          int
	Start         int
	End           int
	IgnoreOctave  bool
	AllowApprox   bool
	AllowInverse  bool
	ContextRadius int
	Order         Order
}

// Validate checks the query fields that do not depend on a score.
func (q Query) Validate() error {
	if _, ok := modeNames[q.Mode]; !ok {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidQuery, q.Mode)
	}
	if q.Order != OrderSource && q.Order != OrderMeasure {
		return fmt.Errorf("%w: unknown order %d", ErrInvalidQuery, q.Order)
	}
	if q.ContextRadius < 0 || q.ContextRadius > MaxContextRadius {
		return fmt.Errorf("%w: context radius %d outside 0..%d", ErrInvalidQuery, q.ContextRadius, MaxContextRadius)
	}
	return nil
}

// ResolveMotif parses the query's motif string, or slices the motif out of
// the score when no string is given. The motif must be long enough for the
// query's mode.
func ResolveMotif(score *core.Score, q Query) (core.Motif, error) {
	var (
		motif core.Motif
		err   error
	)
	if q.Motif != "" {
		motif.Source = q.Motif
		motif.Events, err = parseMotif(q.Mode, q.Motif)
	} else {
		if score == nil {
			return core.Motif{}, ErrScoreRequired
		}
		motif.Source = fmt.Sprintf("part %d notes %d-%d", q.Part, q.Start, q.End)
		motif.Events, err = score.SliceNotes(q.Part, q.Start, q.End)
	}
	if err != nil {
		return core.Motif{}, err
	}
	if motif.Len() < q.Mode.MinMotifLength() {
		return core.Motif{}, fmt.Errorf("%w: %s search needs at least %d events, got %d",
			core.ErrInvalidMotif, q.Mode, q.Mode.MinMotifLength(), motif.Len())
	}
	return motif, nil
}

func parseMotif(mode Mode, s string) ([]core.Event, error) {
	switch mode {
	case ModeRhythm:
		return notation.ParseRhythm(s)
	case ModeContour:
		return notation.ParseContour(s)
	}
	return notation.ParseMelody(s)
}
