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


// Package ai provides abstractions for the embedding services used in Hindsight.
//
// This package defines the Embedder interface for turning text into dense
// vectors, plus the shared configuration for the concrete backends. It follows
// the dependency inversion principle: the retrieval pipeline depends on the
// Embedder abstraction, never on a specific provider.
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/openai: OpenAI-compatible remote APIs (the "remote" backend)
//   - ai/ollama: local Ollama server (the "local" backend)
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder, ollama.NewEmbedder) return the
// ai.Embedder INTERFACE to enforce abstraction and prevent accidental
// coupling to concrete implementations.
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection:
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.WithEmbedTextFunc(...)     // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithBackend(ai.BackendRemote),
//	    ai.WithModel("text-embedding-3-small"),
//	    ai.WithDimension(1536),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vec, err := embedder.EmbedText(ctx, "renew the support contract")
package ai
