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
	"math"
)

// DurationType is a notated note value.
// The zero value is unset and reads as a quarter.
type DurationType uint8

const (
	DurationUnset DurationType = iota
	Whole
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth
	OneTwentyEighth
)

// MaxDots is the largest dot count DurationFromQuarterLength will try.
const MaxDots = 3

var durationTypes = [...]struct {
	denominator int
	name        string
}{
	DurationUnset:   {4, "quarter"},
	Whole:           {1, "whole"},
	Half:            {2, "half"},
	Quarter:         {4, "quarter"},
	Eighth:          {8, "eighth"},
	Sixteenth:       {16, "16th"},
	ThirtySecond:    {32, "32nd"},
	SixtyFourth:     {64, "64th"},
	OneTwentyEighth: {128, "128th"},
}

// TypeFromDenominator maps a rhythm denominator (1, 2, 4, 8, ...) to its
// DurationType. Only the denominators in the table are accepted.
func TypeFromDenominator(d int) (DurationType, error) {
	for t := Whole; t <= OneTwentyEighth; t++ {
		if durationTypes[t].denominator == d {
			return t, nil
		}
	}
	return DurationUnset, fmt.Errorf("%w: %d", ErrInvalidDenominator, d)
}

func (t DurationType) valid() bool {
	return int(t) < len(durationTypes)
}

// Denominator returns the rhythm denominator for the type (4 for a quarter).
func (t DurationType) Denominator() int {
	if !t.valid() {
		return 4
	}
	return durationTypes[t].denominator
}

// BaseQuarterLength returns the undotted length of the type in quarters.
func (t DurationType) BaseQuarterLength() float64 {
	return 4 / float64(t.Denominator())
}

func (t DurationType) String() string {
	if !t.valid() {
		return fmt.Sprintf("DurationType(%d)", t)
	}
	return durationTypes[t].name
}

// QuarterLength returns base × (2 − 2^−dots): each dot adds half of the previous value.
func QuarterLength(t DurationType, dots int) float64 {
	if dots < 0 {
		dots = 0
	}
	return t.BaseQuarterLength() * (2 - math.Pow(2, -float64(dots)))
}

// Duration is a note value with augmentation dots.
type Duration struct {
	Type DurationType
	Dots int
}

// QuarterLength returns the duration in quarter lengths. It is always positive.
func (d Duration) QuarterLength() float64 {
	return QuarterLength(d.Type, d.Dots)
}

// Equal compares durations by quarter length.
func (d Duration) Equal(o Duration) bool {
	return d.QuarterLength() == o.QuarterLength()
}

func (d Duration) String() string {
	switch d.Dots {
	case 0:
		return d.Type.String()
	case 1:
		return "dotted " + d.Type.String()
	case 2:
		return "double-dotted " + d.Type.String()
	}
	return fmt.Sprintf("%d-dotted %s", d.Dots, d.Type)
}

// DurationFromQuarterLength finds the type and dot count with exactly the given length.
func DurationFromQuarterLength(ql float64) (Duration, error) {
	for t := Whole; t <= OneTwentyEighth; t++ {
		for dots := 0; dots <= MaxDots; dots++ {
			if QuarterLength(t, dots) == ql {
				return Duration{Type: t, Dots: dots}, nil
			}
		}
	}
	return Duration{}, fmt.Errorf("%w: %g quarters", ErrInexpressibleDuration, ql)
}

// NearestDuration returns the expressible duration closest to ql.
// Ties prefer the longer base type.
func NearestDuration(ql float64) Duration {
	best := Duration{Type: Whole}
	bestDiff := math.Inf(1)
	for t := Whole; t <= OneTwentyEighth; t++ {
		for dots := 0; dots <= MaxDots; dots++ {
			diff := math.Abs(QuarterLength(t, dots) - ql)
			if diff < bestDiff {
				best = Duration{Type: t, Dots: dots}
				bestDiff = diff
			}
		}
	}
	return best
}
