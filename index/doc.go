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


// Package index holds the in-memory vector index used for similarity search.
//
// The index is an immutable snapshot built once from the chunk repository.
// Queries scan it exhaustively, which is exact rather than approximate and
// works well up to a few hundred thousand vectors. New or re-embedded
// chunks become visible by loading a fresh snapshot.
//
// Raw scores follow the configured metric: dot product for inner product
// spaces (higher is better), squared euclidean distance for l2 spaces
// (lower is better). Interpretation of raw scores is left to the caller;
// the search package normalizes them before reranking.
package index
