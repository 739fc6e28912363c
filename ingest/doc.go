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


// Package ingest builds the retrieval archive.
//
// The pipeline stores chunk records synchronously, then embeds them on an
// ants worker pool and writes the vectors back. Embedding calls are
// idempotent, so transient service failures are retried with exponential
// backoff. Searchers see new chunks after the next index load.
package ingest
