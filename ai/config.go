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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Backend selects which embedding implementation serves a Config.
type Backend string

const (
	// BackendRemote uses an OpenAI-compatible HTTP API (ai/openai).
	BackendRemote Backend = "remote"

	// BackendLocal uses a local Ollama server (ai/ollama).
	BackendLocal Backend = "local"
)

// Metric identifies the similarity metric the embedding space was trained for.
// The index and the reranker both branch on it.
type Metric string

const (
	// MetricInnerProduct scores by dot product. Higher raw scores are better.
	// Vectors are normalized to unit length so the dot product equals
	// cosine similarity.
	MetricInnerProduct Metric = "ip"

	// MetricL2 scores by squared euclidean distance. Lower raw scores are better.
	MetricL2 Metric = "l2"
)

var (
	// ErrUnsupportedBackend is returned when a Config names a backend
	// no implementation package provides.
	ErrUnsupportedBackend = errors.New("unsupported embedding backend")

	// ErrUnsupportedMetric is returned when a Config names a similarity
	// metric other than ip or l2.
	ErrUnsupportedMetric = errors.New("unsupported similarity metric")

	// ErrDimensionMismatch is returned when an embedding service produces
	// a vector whose length differs from the configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Config holds configuration for embedding service backends.
type Config struct {
	// Backend selects the implementation: BackendRemote or BackendLocal.
	Backend Backend

	// Host is the base URL of the embedding service.
	// Example: "https://api.openai.com/v1" or "http://localhost:11434"
	Host string

	// Token is the API key for the remote backend. The local backend
	// ignores it. Use "none" for services without authentication.
	Token string

	// Model is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small", "embeddinggemma"
	Model string

	// Dim is the expected embedding dimension. Every vector the backend
	// returns must have exactly this length.
	Dim int

	// Metric is the similarity metric of the embedding space.
	Metric Metric
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend selects the embedding backend.
func WithBackend(backend Backend) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithHost sets the embedding service base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API key for the remote backend.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithDimension sets the expected embedding dimension.
func WithDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.Dim = dim
	}
}

// WithMetric sets the similarity metric of the embedding space.
func WithMetric(metric Metric) ConfigOption {
	return func(c *Config) {
		c.Metric = metric
	}
}

// DefaultConfig returns a Config with sensible defaults for the OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendRemote,
		Host:    "https://api.openai.com/v1",
		Token:   "none",
		Model:   "text-embedding-3-small",
		Dim:     1536,
		Metric:  MetricInnerProduct,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithBackend(BackendLocal),
//	    WithHost("http://localhost:11434"),
//	    WithModel("embeddinggemma"),
//	    WithDimension(768),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// For the remote backend it adds the /v1 suffix to the host if missing,
// which OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc) require.
// The local backend talks to the Ollama native API and keeps the host as-is.
func (c *Config) Normalize() {
	if c.Backend == BackendRemote && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Backend {
	case BackendRemote, BackendLocal:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, c.Backend)
	}
	switch c.Metric {
	case MetricInnerProduct, MetricL2:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMetric, c.Metric)
	}
	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Dim <= 0 {
		return errors.New("ai config: Dim must be positive")
	}
	return nil
}
