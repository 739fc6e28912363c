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


// Package openai implements ai.Embedder using OpenAI-compatible APIs.
//
// It uses the langchaingo library to communicate with OpenAI or
// OpenAI-compatible services (such as Ollama's /v1 endpoint, LocalAI,
// or vLLM). If the batching wrapper fails, the embedder falls back to
// the raw embedding endpoint, which keeps older servers working.
//
// Vectors are checked against the configured dimension, and normalized
// to unit length when the configured metric is inner product.
//
// # Usage
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("https://api.openai.com"),  // /v1 added automatically
//	    ai.WithToken(os.Getenv("OPENAI_API_KEY")),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
package openai
