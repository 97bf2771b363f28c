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

// SearchMonitor observes the stages of a search. Every hook is called from
// the goroutine that called SearchWithMonitor, in this order: Start,
// MotifResolved, PartScanned once per part in part order, Finish.
type SearchMonitor interface {
	Start(query Query)
	MotifResolved(motif core.Motif)
	PartScanned(partIndex int, regular, inverse []core.Match)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                        {}
func (n *noopMonitor) MotifResolved(_ core.Motif)           {}
func (n *noopMonitor) PartScanned(_ int, _, _ []core.Match) {}
func (n *noopMonitor) Finish(_ *Result)                     {}
