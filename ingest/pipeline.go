package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage"
)

const (
	embedMaxAttempts = 3
	embedBaseDelay   = 500 * time.Millisecond
)

// Pipeline seeds the archive: it validates and stores chunk records, then
// embeds them asynchronously on a worker pool and writes the vectors back.
// Records become visible to a freshly loaded index once embedded.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	pool            *ants.Pool
	wg              sync.WaitGroup
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new seeding pipeline.
func NewPipeline(chunkRepository storage.ChunkRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		pool:            pool,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates and stores the chunk records, then submits them for
// asynchronous embedding. Embedding errors are logged, not returned; a
// chunk that failed to embed stays stored without a vector and is skipped
// by the index until re-ingested.
func (p *Pipeline) Ingest(ctx context.Context, records ...*core.ChunkRecord) error {
	for _, record := range records {
		if err := core.ValidateChunkRecord(record); err != nil {
			return err
		}
	}

	added, err := p.chunkRepository.AddChunkRecords(ctx, records...)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return nil
	}

	batch := make([]*core.ChunkRecord, len(added))
	copy(batch, added)

	p.wg.Add(1)
	submitErr := p.pool.Submit(func() {
		defer p.wg.Done()
		if err := p.embedBatch(context.Background(), batch); err != nil {
			p.logger.Error("error embedding chunk batch", "chunks", len(batch), "err", err)
		}
	})
	if submitErr != nil {
		p.wg.Done()
		return submitErr
	}
	return nil
}

// Wait blocks until all submitted embedding work has finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Release releases the worker pool after draining in-flight work.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}

// embedBatch generates vectors for a stored batch and writes them back.
func (p *Pipeline) embedBatch(ctx context.Context, records []*core.ChunkRecord) error {
	p.logger.Info("embedding chunk records", "chunks", len(records))

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.TextPreview
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		embeddings, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, embedMaxAttempts, embedBaseDelay)
	if err != nil {
		return err
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(records), len(embeddings))
	}

	for i, record := range records {
		record.Vector = embeddings[i]
	}

	_, err = p.chunkRepository.UpdateChunkRecords(ctx, records...)
	return err
}
