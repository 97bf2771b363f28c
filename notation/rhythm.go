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
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/leitmotif/core"
)

// ParseRhythm reads rhythm tokens such as "8 8. 4..".
//
// A token is an optional pseudo-pitch (letter plus optional accidental, which
// is ignored), a denominator, and any number of dots. A digit or dot that is
// directly followed by a letter ends a token, so "8.8" is one token and
// "8.c8" is two.
func ParseRhythm(s string) ([]core.Event, error) {
	tokens := strings.Fields(splitBeforeLetters(s))
	events := make([]core.Event, 0, len(tokens))
	for _, tok := range tokens {
		d, err := parseRhythmToken(tok)
		if err != nil {
			return nil, err
		}
		events = append(events, core.NewNote(core.Pitch{Letter: core.LetterC}, d))
	}
	return events, nil
}

func splitBeforeLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev rune
	for i, r := range s {
		if i > 0 && (isDigit(prev) || prev == '.') && unicode.IsLetter(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func parseRhythmToken(tok string) (core.Duration, error) {
	rs := []rune(tok)
	i := 0
	if _, ok := core.LetterFromRune(rs[0]); ok {
		i++
		if i < len(rs) {
			if _, ok := accidentalFromRune(rs[i]); ok {
				i++
			}
		}
	}
	start := i
	for i < len(rs) && isDigit(rs[i]) {
		i++
	}
	if i == start {
		return core.Duration{}, malformed(tok, start, "missing denominator")
	}
	denom, err := strconv.Atoi(string(rs[start:i]))
	if err != nil {
		return core.Duration{}, malformed(tok, start, "bad denominator: %v", err)
	}
	typ, err := core.TypeFromDenominator(denom)
	if err != nil {
		return core.Duration{}, err
	}
	dots := 0
	for i < len(rs) && rs[i] == '.' {
		dots++
		i++
	}
	if i != len(rs) {
		return core.Duration{}, malformed(tok, i, "unexpected %q", rs[i])
	}
	return core.Duration{Type: typ, Dots: dots}, nil
}
