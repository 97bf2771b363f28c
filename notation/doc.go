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


// Package notation parses the compact textual motif encodings into event
// sequences.
//
// Four grammars are supported:
//   - pitch names, "A B C# D E-" (ParsePitches)
//   - pitch names with octave digits, "A3 B-3 C#4" (ParsePitchesWithOctave)
//   - rhythm denominators with dots, "8 8." (ParseRhythm)
//   - Parsons code contours, "*dduurrdrruur" (ParseContour)
//
// Sharps are written "#" and flats "-". Whitespace separates tokens in every
// grammar; any other character a grammar does not recognize makes the parse
// fail with core.ErrMalformedNotation.
package notation
