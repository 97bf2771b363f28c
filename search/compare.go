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
	"github.com/poiesic/leitmotif/core"
	"github.com/poiesic/leitmotif/interval"
)

// verdict is the outcome of one comparison under each reading of the motif.
type verdict struct {
	regular bool
	inverse bool
}

// comparator evaluates comparison k of a motif against a candidate window.
type comparator func(k int, window []core.Event) verdict

func pitchesMatch(motif, candidate core.Pitch, ignoreOctave bool) bool {
	if !motif.SameName(candidate) {
		return false
	}
	if ignoreOctave || !motif.HasOctave {
		return true
	}
	return motif.EffectiveOctave() == candidate.EffectiveOctave()
}

func pitchComparator(motif []core.Event, ignoreOctave bool) comparator {
	return func(k int, window []core.Event) verdict {
		return verdict{regular: pitchesMatch(motif[k].Pitch, window[k].Pitch, ignoreOctave)}
	}
}

func noteComparator(motif []core.Event, ignoreOctave bool) comparator {
	return func(k int, window []core.Event) verdict {
		ok := pitchesMatch(motif[k].Pitch, window[k].Pitch, ignoreOctave) &&
			motif[k].Duration.Equal(window[k].Duration)
		return verdict{regular: ok}
	}
}

func rhythmComparator(motif []core.Event) comparator {
	return func(k int, window []core.Event) verdict {
		return verdict{regular: motif[k].Duration.Equal(window[k].Duration)}
	}
}

// pairTokens computes the token between each adjacent pair of motif events.
func pairTokens[T any](motif []core.Event, between func(a, b core.Pitch) T) []T {
	tokens := make([]T, len(motif)-1)
	for i := range tokens {
		tokens[i] = between(motif[i].Pitch, motif[i+1].Pitch)
	}
	return tokens
}

func chromaticComparator(motif []core.Event, allowInverse bool) comparator {
	tokens := pairTokens(motif, interval.ChromaticBetween)
	return func(k int, window []core.Event) verdict {
		c := interval.ChromaticBetween(window[k].Pitch, window[k+1].Pitch)
		return verdict{
			regular: c == tokens[k],
			inverse: allowInverse && c == tokens[k].Invert(),
		}
	}
}

func genericComparator(motif []core.Event, allowApprox, allowInverse bool) comparator {
	tokens := pairTokens(motif, interval.GenericBetween)
	equal := func(a, b interval.Generic) bool {
		if allowApprox {
			return interval.Approximately(a, b)
		}
		return a == b
	}
	return func(k int, window []core.Event) verdict {
		g := interval.GenericBetween(window[k].Pitch, window[k+1].Pitch)
		return verdict{
			regular: equal(g, tokens[k]),
			inverse: allowInverse && equal(g, tokens[k].Invert()),
		}
	}
}

func contourComparator(motif []core.Event, allowInverse bool) comparator {
	tokens := pairTokens(motif, interval.ContourBetween)
	return func(k int, window []core.Event) verdict {
		s := interval.ContourBetween(window[k].Pitch, window[k+1].Pitch)
		return verdict{
			regular: s == tokens[k],
			inverse: allowInverse && s == tokens[k].Invert(),
		}
	}
}
