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


// Package midi reads Standard MIDI Files into scores.
//
// Every track that holds notes becomes one part, read as a single voice:
// a note is cut short by the next onset, and notes starting together keep
// only the highest. Silences become rests. Onsets and ends are snapped to a
// grid, a sixteenth by default, and measures follow the file's first time
// signature (4/4 when there is none).
package midi
