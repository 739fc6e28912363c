// Copyright 2026 Cobalt Lane Systems
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


// Package search implements retrieval over the vector index.
//
// Searcher exposes three operations. Search returns raw nearest
// neighbours. SearchMeetings over-fetches and reranks with a preference
// for meeting records and recent dates. SearchInDateWindow over-fetches
// heavily, keeps only candidates tied to the window (meetings held in it,
// reminders valid during it), and reranks the survivors by recency.
//
// Rerank combines a normalized similarity base term with additive
// heuristic bonuses. The base term is mapped into [0,1] so the fixed
// bonus weights keep a stable priority over it: reminder validity
// dominates folder preference, which dominates tag overlap, which
// dominates the tiny recency term.
//
// Each operation has a WithMonitor variant that reports stage progress
// through the SearchMonitor interface.
package search
