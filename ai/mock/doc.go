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


// Package mock provides test doubles for the ai interfaces.
//
// MockEmbedder produces deterministic FNV-hash-seeded vectors by default,
// so tests get stable similarity orderings without an embedding service.
// Behavior can be overridden per test via the public function fields.
package mock
