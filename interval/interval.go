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


package interval

import (
	"fmt"

	"github.com/poiesic/leitmotif/core"
)

// Direction is the melodic direction of an interval.
type Direction int8

const (
	Descending Direction = -1
	Unison     Direction = 0
	Ascending  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return "unison"
}

func directionOf(n int) Direction {
	switch {
	case n > 0:
		return Ascending
	case n < 0:
		return Descending
	}
	return Unison
}

// Chromatic is a signed distance in semitones.
type Chromatic int

// ChromaticBetween returns the semitone distance from a to b.
func ChromaticBetween(a, b core.Pitch) Chromatic {
	return Chromatic(b.PS() - a.PS())
}

// Invert returns the interval with the opposite direction.
func (c Chromatic) Invert() Chromatic { return -c }

// Generic is a staff-step interval. Size counts both endpoints, so a unison
// is 1, a second 2, an octave 8.
type Generic struct {
	Size      int
	Direction Direction
}

// GenericBetween returns the staff-step interval from a to b, ignoring
// accidentals.
func GenericBetween(a, b core.Pitch) Generic {
	steps := b.Diatonic() - a.Diatonic()
	size := steps
	if size < 0 {
		size = -size
	}
	return Generic{Size: size + 1, Direction: directionOf(steps)}
}

// Invert flips the direction and keeps the size.
func (g Generic) Invert() Generic {
	return Generic{Size: g.Size, Direction: -g.Direction}
}

var ordinals = [...]string{"", "unison", "second", "third", "fourth", "fifth", "sixth", "seventh", "octave"}

func (g Generic) String() string {
	name := fmt.Sprintf("%d-step", g.Size)
	if g.Size > 0 && g.Size < len(ordinals) {
		name = ordinals[g.Size]
	}
	if g.Direction == Unison {
		return name
	}
	return g.Direction.String() + " " + name
}

// Class is an approximate grouping of generic intervals.
type Class uint8

const (
	// Unclassified covers unisons and intervals of an octave or more.
	Unclassified Class = iota
	ClassStep
	ClassPerfect
	ClassLeap
)

func (c Class) String() string {
	switch c {
	case ClassStep:
		return "step"
	case ClassPerfect:
		return "perfect"
	case ClassLeap:
		return "leap"
	}
	return "unclassified"
}

// classes is indexed by generic size.
var classes = [...]Class{
	2: ClassStep,
	3: ClassStep,
	4: ClassPerfect,
	5: ClassPerfect,
	6: ClassLeap,
	7: ClassLeap,
}

// Classify returns the approximate class of g.
func Classify(g Generic) Class {
	if g.Size < 0 || g.Size >= len(classes) {
		return Unclassified
	}
	return classes[g.Size]
}

// Approximately reports whether two generic intervals are equal, or share
// an approximate class and a direction. Unclassified intervals only match
// themselves.
func Approximately(a, b Generic) bool {
	if a == b {
		return true
	}
	ca := Classify(a)
	return ca != Unclassified && ca == Classify(b) && a.Direction == b.Direction
}

// Step is one Parsons-code contour step.
type Step int8

const (
	Down   Step = -1
	Repeat Step = 0
	Up     Step = 1
)

// ContourBetween returns the direction of b relative to a by pitch space.
func ContourBetween(a, b core.Pitch) Step {
	return Step(directionOf(b.PS() - a.PS()))
}

// Invert swaps up and down; a repeat stays a repeat.
func (s Step) Invert() Step { return -s }

// String returns the Parsons-code letter for the step.
func (s Step) String() string {
	switch s {
	case Up:
		return "u"
	case Down:
		return "d"
	}
	return "r"
}
