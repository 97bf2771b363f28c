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
	"sort"

	"github.com/poiesic/leitmotif/core"
)

// Result holds the matches of one search. Inverse is empty unless the query
// allowed inversion.
type Result struct {
	Motif   core.Motif
	Regular []core.Match
	Inverse []core.Match
	Order   Order
}

// Len returns the total number of matches.
func (r *Result) Len() int {
	return len(r.Regular) + len(r.Inverse)
}

// All returns the regular matches followed by the inverse ones. In measure
// order the combined list is re-sorted by first measure, keeping regular
// before inverse on ties.
func (r *Result) All() []core.Match {
	all := make([]core.Match, 0, r.Len())
	all = append(all, r.Regular...)
	all = append(all, r.Inverse...)
	if r.Order == OrderMeasure {
		sortByMeasure(all)
	}
	return all
}

func sortByMeasure(matches []core.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FirstMeasure() < matches[j].FirstMeasure()
	})
}

// partResult is the output of scanning one part.
type partResult struct {
	regular []core.Match
	inverse []core.Match
}

// assemble merges per-part results in part order and applies the order.
func assemble(motif core.Motif, parts []partResult, order Order) *Result {
	r := &Result{
		Motif:   motif,
		Regular: []core.Match{},
		Inverse: []core.Match{},
		Order:   order,
	}
	for _, p := range parts {
		r.Regular = append(r.Regular, p.regular...)
		r.Inverse = append(r.Inverse, p.inverse...)
	}
	if order == OrderMeasure {
		sortByMeasure(r.Regular)
		sortByMeasure(r.Inverse)
	}
	return r
}
