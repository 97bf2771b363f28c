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

import "github.com/poiesic/leitmotif/core"

// expandContext collects up to radius notes or rests on each side of the
// elements first..last. Barlines are stepped over without counting; a marker
// or the end of the part stops the walk. before is returned in score order.
func expandContext(part *core.Part, first, last, radius int) (before, after []core.Event) {
	if radius <= 0 {
		return nil, nil
	}
	elements := part.Elements

	for i := first - 1; i >= 0 && len(before) < radius; i-- {
		e := elements[i]
		if e.Kind == core.KindBarline {
			continue
		}
		if !e.IsNoteOrRest() {
			break
		}
		before = append(before, e)
	}
	for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
		before[i], before[j] = before[j], before[i]
	}

	for i := last + 1; i < len(elements) && len(after) < radius; i++ {
		e := elements[i]
		if e.Kind == core.KindBarline {
			continue
		}
		if !e.IsNoteOrRest() {
			break
		}
		after = append(after, e)
	}
	return before, after
}
