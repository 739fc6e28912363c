package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltlane/hindsight/ai/mock"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage/badger"
)

func TestPipelineIngestEmbedsRecords(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	embedder := mock.NewMockEmbedder()
	embedder.Dim = 4

	p, err := NewPipeline(repo, embedder, WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	err = p.Ingest(ctx,
		&core.ChunkRecord{Folder: core.FolderMeetings, Filename: "a.md", TextPreview: "standup notes"},
		&core.ChunkRecord{Folder: core.FolderReminders, Filename: "b.md", TextPreview: "renew contract"},
	)
	require.NoError(t, err)

	p.Wait()

	count, err := repo.CountChunkRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for record, err := range repo.AllChunkRecords(ctx) {
		require.NoError(t, err)
		assert.Len(t, record.Vector, 4, "record %q should be embedded", record.Filename)
	}
}

func TestPipelineIngestRejectsInvalidRecords(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	p, err := NewPipeline(repo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	err = p.Ingest(ctx, &core.ChunkRecord{Folder: core.FolderMeetings})
	assert.ErrorIs(t, err, core.ErrEmptyChunkText)

	count, err := repo.CountChunkRecords(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing stored when validation fails")
}

func TestPipelineEmbeddingFailureLeavesRecordUnembedded(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}

	p, err := NewPipeline(repo, embedder)
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	err = p.Ingest(ctx, &core.ChunkRecord{Filename: "a.md", TextPreview: "stored but not embedded"})
	require.NoError(t, err, "embedding failures are async, ingest still succeeds")

	p.Wait()

	for record, err := range repo.AllChunkRecords(ctx) {
		require.NoError(t, err)
		assert.Empty(t, record.Vector)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		var calls atomic.Int32
		err := RetryWithBackoff(context.Background(), func() error {
			if calls.Add(1) < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		boom := errors.New("persistent")
		err := RetryWithBackoff(context.Background(), func() error { return boom }, 2, time.Millisecond)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RetryWithBackoff(ctx, func() error { return errors.New("never runs") }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}
