package index

import (
	"context"
	"log/slog"
	"slices"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage"
)

// VectorIndex is an immutable in-memory snapshot of the embedding space.
// Load builds it from a chunk repository; Query scans it exhaustively.
// A loaded index is safe for concurrent use.
type VectorIndex struct {
	records []*core.ChunkRecord
	dim     int
	metric  ai.Metric
	loaded  bool
	logger  *slog.Logger
}

// Load builds a VectorIndex from every embedded chunk in the repository.
// Records without a vector are skipped; records whose vector length differs
// from the configured dimension fail the load with ai.ErrDimensionMismatch.
// A repository with no embedded chunks at all returns ErrNotReady so callers
// can tell a missing artifact apart from a query with no results.
func Load(ctx context.Context, repo storage.ChunkRepository, config *ai.Config) (*VectorIndex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	idx := &VectorIndex{
		dim:    config.Dim,
		metric: config.Metric,
		logger: slog.Default().With("component", "vector-index"),
	}

	skipped := 0
	for record, err := range repo.AllChunkRecords(ctx) {
		if err != nil {
			return nil, err
		}
		if len(record.Vector) == 0 {
			skipped++
			continue
		}
		if err := ai.CheckDimension(record.Vector, config.Dim); err != nil {
			return nil, err
		}
		idx.records = append(idx.records, record)
	}

	if len(idx.records) == 0 {
		return nil, ErrNotReady
	}

	idx.loaded = true
	idx.logger.Debug("index loaded", "records", len(idx.records), "skipped", skipped, "metric", idx.metric)
	return idx, nil
}

// Len returns the number of indexed records.
func (idx *VectorIndex) Len() int {
	return len(idx.records)
}

// Metric returns the similarity metric the index scores with.
func (idx *VectorIndex) Metric() ai.Metric {
	return idx.metric
}

// Query scores every indexed record against the query vector and returns
// up to fetchCount candidates, best raw score first. For the inner product
// metric higher raw scores are better; for l2 lower squared distances win.
// Returns ErrNotReady if the index was never loaded.
func (idx *VectorIndex) Query(vector []float32, fetchCount int) ([]core.Candidate, error) {
	if idx == nil || !idx.loaded {
		return nil, ErrNotReady
	}
	if err := ai.CheckDimension(vector, idx.dim); err != nil {
		return nil, err
	}
	if fetchCount < 1 {
		return nil, ErrInvalidFetchCount
	}

	candidates := make([]core.Candidate, 0, len(idx.records))
	for _, record := range idx.records {
		var raw float32
		if idx.metric == ai.MetricL2 {
			raw = squaredL2(vector, record.Vector)
		} else {
			raw = dotProduct(vector, record.Vector)
		}
		candidates = append(candidates, core.Candidate{
			Id:     record.Id,
			Raw:    raw,
			Record: record,
		})
	}

	slices.SortStableFunc(candidates, func(a, b core.Candidate) int {
		if a.Raw == b.Raw {
			return 0
		}
		if idx.metric == ai.MetricL2 {
			// Ascending: smaller distance is a better match.
			if a.Raw < b.Raw {
				return -1
			}
			return 1
		}
		// Descending: larger similarity is a better match.
		if a.Raw > b.Raw {
			return -1
		}
		return 1
	})

	if len(candidates) > fetchCount {
		candidates = candidates[:fetchCount]
	}
	return candidates, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// squaredL2 calculates the squared euclidean distance between two vectors.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
