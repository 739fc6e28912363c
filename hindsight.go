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


// Package hindsight is a retrieval archive for meeting notes and reminders.
//
// An Archive wraps a Badger-backed chunk store, an embedding backend, and
// an in-memory vector index. Open it once per process; Searchers obtained
// from it share one immutable index snapshot and are safe for concurrent
// queries.
//
//	archive, err := hindsight.Open("./archive",
//	    hindsight.WithEmbeddingConfig(ai.NewConfig(ai.WithBackend(ai.BackendLocal))))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer archive.Close()
//
//	searcher, err := archive.NewSearcher(ctx)
//	hits, err := searcher.SearchMeetings(ctx, "contract renewal", 5)
package hindsight

import (
	"context"
	"fmt"
	"sync"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/ai/ollama"
	"github.com/cobaltlane/hindsight/ai/openai"
	"github.com/cobaltlane/hindsight/index"
	"github.com/cobaltlane/hindsight/ingest"
	"github.com/cobaltlane/hindsight/search"
	"github.com/cobaltlane/hindsight/storage"
	"github.com/cobaltlane/hindsight/storage/badger"
)

// Archive owns the chunk store, the embedding backend, and the lazily
// loaded vector index.
type Archive struct {
	backend  *badger.Backend
	repo     storage.ChunkRepository
	config   *ai.Config
	embedder ai.Embedder

	indexOnce sync.Once
	index     *index.VectorIndex
	indexErr  error
}

// ArchiveOption configures an Archive at open time.
type ArchiveOption func(*archiveSettings)

type archiveSettings struct {
	config   *ai.Config
	embedder ai.Embedder
	inMemory bool
}

// WithEmbeddingConfig sets the embedding configuration.
// Default is ai.DefaultConfig().
func WithEmbeddingConfig(config *ai.Config) ArchiveOption {
	return func(s *archiveSettings) {
		if config != nil {
			s.config = config
		}
	}
}

// WithEmbedder injects a pre-built embedder, bypassing backend selection.
// Intended for tests.
func WithEmbedder(embedder ai.Embedder) ArchiveOption {
	return func(s *archiveSettings) {
		s.embedder = embedder
	}
}

// WithInMemory opens the archive on an in-memory store, ignoring the path.
func WithInMemory() ArchiveOption {
	return func(s *archiveSettings) {
		s.inMemory = true
	}
}

// Open opens (or creates) the archive at path and constructs the embedding
// backend named by the configuration.
func Open(path string, opts ...ArchiveOption) (*Archive, error) {
	settings := &archiveSettings{config: ai.DefaultConfig()}
	for _, opt := range opts {
		opt(settings)
	}

	if err := settings.config.Validate(); err != nil {
		return nil, err
	}

	embedder := settings.embedder
	if embedder == nil {
		var err error
		embedder, err = newEmbedder(settings.config)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(path, settings.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Archive{
		backend:  backend,
		repo:     repo,
		config:   settings.config,
		embedder: embedder,
	}, nil
}

// newEmbedder constructs the backend the config names.
func newEmbedder(config *ai.Config) (ai.Embedder, error) {
	switch config.Backend {
	case ai.BackendLocal:
		return ollama.NewEmbedder(config)
	case ai.BackendRemote:
		return openai.NewEmbedder(config)
	default:
		return nil, fmt.Errorf("%w: %q", ai.ErrUnsupportedBackend, config.Backend)
	}
}

// ChunkRepository exposes the underlying chunk store.
func (a *Archive) ChunkRepository() storage.ChunkRepository {
	return a.repo
}

// Embedder exposes the configured embedding backend.
func (a *Archive) Embedder() ai.Embedder {
	return a.embedder
}

// NewSearcher returns a searcher over the archive's index snapshot.
// The index is loaded from storage on first use and shared afterwards;
// chunks ingested later require a fresh Archive to become searchable.
func (a *Archive) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	a.indexOnce.Do(func() {
		a.index, a.indexErr = index.Load(ctx, a.repo, a.config)
	})
	if a.indexErr != nil {
		return nil, a.indexErr
	}
	return search.NewSearcher(a.index, a.embedder, opts...)
}

// NewIngestionPipeline returns a pipeline that seeds this archive.
func (a *Archive) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.repo, a.embedder, opts...)
}

// Close releases the repository and the storage backend.
func (a *Archive) Close() error {
	if err := a.repo.Close(); err != nil {
		a.backend.Close()
		return err
	}
	return a.backend.Close()
}
