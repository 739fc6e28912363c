package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage/badger"
)

func testConfig(dim int, metric ai.Metric) *ai.Config {
	return ai.NewConfig(ai.WithDimension(dim), ai.WithMetric(metric))
}

func TestLoadSkipsUnembeddedRecords(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AddChunkRecords(ctx,
		&core.ChunkRecord{Filename: "a.md", TextPreview: "embedded", Vector: []float32{1, 0}},
		&core.ChunkRecord{Filename: "b.md", TextPreview: "pending embedding"},
	)
	require.NoError(t, err)

	idx, err := Load(ctx, repo, testConfig(2, ai.MetricInnerProduct))
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AddChunkRecords(ctx,
		&core.ChunkRecord{Filename: "a.md", TextPreview: "wrong dims", Vector: []float32{1, 0, 0}},
	)
	require.NoError(t, err)

	_, err = Load(ctx, repo, testConfig(2, ai.MetricInnerProduct))
	assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
}

func TestQueryInnerProductOrdering(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AddChunkRecords(ctx,
		&core.ChunkRecord{Id: 1, TextPreview: "east", Vector: []float32{1, 0}},
		&core.ChunkRecord{Id: 2, TextPreview: "north", Vector: []float32{0, 1}},
		&core.ChunkRecord{Id: 3, TextPreview: "northeast", Vector: []float32{0.7071, 0.7071}},
	)
	require.NoError(t, err)

	idx, err := Load(ctx, repo, testConfig(2, ai.MetricInnerProduct))
	require.NoError(t, err)

	candidates, err := idx.Query([]float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, core.ID(1), candidates[0].Id)
	assert.Equal(t, core.ID(3), candidates[1].Id)
	assert.Equal(t, core.ID(2), candidates[2].Id)
}

func TestQueryL2Ordering(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AddChunkRecords(ctx,
		&core.ChunkRecord{Id: 1, TextPreview: "near", Vector: []float32{0.9, 0.1}},
		&core.ChunkRecord{Id: 2, TextPreview: "far", Vector: []float32{-1, -1}},
	)
	require.NoError(t, err)

	idx, err := Load(ctx, repo, testConfig(2, ai.MetricL2))
	require.NoError(t, err)

	candidates, err := idx.Query([]float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, core.ID(1), candidates[0].Id, "smaller distance ranks first")
	assert.Less(t, candidates[0].Raw, candidates[1].Raw)
}

func TestQueryTruncatesToFetchCount(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err = repo.AddChunkRecords(ctx, &core.ChunkRecord{
			Id:          core.ID(i + 1),
			TextPreview: "filler",
			Vector:      []float32{float32(i), 1},
		})
		require.NoError(t, err)
	}

	idx, err := Load(ctx, repo, testConfig(2, ai.MetricInnerProduct))
	require.NoError(t, err)

	candidates, err := idx.Query([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestLoadEmptyRepositoryNotReady(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	_, err = Load(context.Background(), repo, testConfig(2, ai.MetricInnerProduct))
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestQueryErrors(t *testing.T) {
	loadSingleRecord := func(t *testing.T) (*VectorIndex, func()) {
		t.Helper()
		repo, backend, err := badger.NewMemoryChunkRepository()
		require.NoError(t, err)

		ctx := context.Background()
		_, err = repo.AddChunkRecords(ctx, &core.ChunkRecord{
			Id: 1, TextPreview: "solo", Vector: []float32{1, 0},
		})
		require.NoError(t, err)

		idx, err := Load(ctx, repo, testConfig(2, ai.MetricInnerProduct))
		require.NoError(t, err)
		return idx, func() { repo.Close(); backend.Close() }
	}

	t.Run("unloaded index", func(t *testing.T) {
		var idx *VectorIndex
		_, err := idx.Query([]float32{1, 0}, 5)
		assert.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("query dimension mismatch", func(t *testing.T) {
		idx, cleanup := loadSingleRecord(t)
		defer cleanup()

		_, err := idx.Query([]float32{1, 0, 0}, 5)
		assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
	})

	t.Run("non-positive fetch count", func(t *testing.T) {
		idx, cleanup := loadSingleRecord(t)
		defer cleanup()

		_, err := idx.Query([]float32{1, 0}, 0)
		assert.ErrorIs(t, err, ErrInvalidFetchCount)
	})
}
