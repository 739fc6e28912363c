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


// Package temporal resolves natural language time references into date
// windows and filters retrieval candidates against them.
//
// Resolution is rule-based, not a full date parser: a fixed set of phrases
// ("yesterday", "last week", "Q3 2025", "from 2025-01-01 to 2025-03-31")
// is matched in priority order and the first hit wins. Queries with no
// recognized phrase resolve to no window, which callers treat as
// "search without a time constraint".
package temporal
