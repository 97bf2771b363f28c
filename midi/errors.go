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


package midi

import "errors"

var (
	// ErrUnreadable is returned when a file cannot be parsed as a Standard MIDI File.
	ErrUnreadable = errors.New("unreadable MIDI file")

	// ErrUnsupportedTimeFormat is returned for files timed in SMPTE frames.
	ErrUnsupportedTimeFormat = errors.New("unsupported MIDI time format")

	// ErrNoNotes is returned when no track holds a note.
	ErrNoNotes = errors.New("MIDI file has no notes")

	// ErrInvalidGrid is returned for a quantization grid that is not positive.
	ErrInvalidGrid = errors.New("quantization grid must be positive")
)
