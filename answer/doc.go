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


// Package answer turns retrieval hits into a grounded reply.
//
// The Synthesizer routes a question to date-aware, meetings-biased, or
// plain search, builds a context block from the top hits, and asks a
// langchaingo model for an answer cited with [source] markers. With no
// model configured, or when the model call fails, it degrades to a
// deterministic plain-text extract of the top matches.
package answer
