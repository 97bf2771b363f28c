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


package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/leitmotif/core"
)

const (
	scoreRecordPrefix = "scorec"
	scoreTitlePrefix  = "scotitl"
)

// makeScoreKey generates a key for a score by ID.
func makeScoreKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", scoreRecordPrefix, id))
}

// normalizeTitle folds case and trims space so lookups match loosely typed titles.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// makeScoreTitleKey generates a composite key for the title index.
func makeScoreTitleKey(title string, id core.ID) []byte {
	prefix := makePartialScoreTitleKey(title)
	buf := make([]byte, len(prefix)+8) // 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialScoreTitleKey generates the prefix shared by every score with a title.
func makePartialScoreTitleKey(title string) []byte {
	return []byte(scoreTitlePrefix + ":" + normalizeTitle(title) + "\x00")
}
