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


// Package search finds occurrences of a motif inside a score.
//
// A search compares every window of a part's note and rest stream against
// the motif under one of six equivalences:
//   - ModeNote: pitch name and duration
//   - ModePitch: pitch name, optionally with octave
//   - ModeRhythm: duration only; rests take part
//   - ModeChromatic: signed semitone intervals
//   - ModeGeneric: staff-step intervals, optionally by approximate class
//   - ModeContour: up, down and repeat steps
//
// Interval and contour searches can also report melodic inversions. A
// window commits to the regular or inverse reading at its first comparison
// that tells them apart and never switches afterwards.
//
// Parts are scanned independently on a worker pool and merged in part order,
// so results do not depend on scheduling.
package search
