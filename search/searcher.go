package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/index"
	"github.com/cobaltlane/hindsight/temporal"
)

// Candidate pool sizes. Each operation over-fetches beyond the caller's k
// so that downstream filtering and reranking don't starve the final top-k.
const (
	plainPoolSize    = 100
	meetingsPoolSize = 50
	windowPoolSize   = 200
)

// Searcher composes the embedder, the vector index, and the rerank
// heuristics into the three public retrieval operations.
type Searcher struct {
	index    *index.VectorIndex
	embedder ai.Embedder
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock overrides the time source used for reminder validity checks.
// Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Searcher) error {
		if clock != nil {
			s.clock = clock
		}
		return nil
	}
}

// NewSearcher creates a new searcher over a loaded index.
func NewSearcher(idx *index.VectorIndex, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		index:    idx,
		embedder: embedder,
		clock:    time.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds the k chunks most similar to the query, in the index's
// native similarity order with no further filtering or reranking.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]core.SearchHit, error) {
	return s.SearchWithMonitor(ctx, query, k, nil)
}

// SearchWithMonitor is Search with stage callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) ([]core.SearchHit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k < 1 {
		return nil, ErrInvalidLimit
	}
	monitor.Start(query)

	candidates, err := s.fetchCandidates(ctx, query, max(k, plainPoolSize), monitor)
	if err != nil {
		return nil, err
	}

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	hits := make([]core.SearchHit, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, core.SearchHit{
			Candidate: c,
			Score:     baseScore(c.Raw, s.index.Metric()),
		})
	}

	monitor.Finish(hits)
	return hits, nil
}

// SearchMeetings finds the k best chunks with meeting records preferred
// and more recent meetings ranked higher.
func (s *Searcher) SearchMeetings(ctx context.Context, query string, k int) ([]core.SearchHit, error) {
	return s.SearchMeetingsWithMonitor(ctx, query, k, nil)
}

// SearchMeetingsWithMonitor is SearchMeetings with stage callbacks.
func (s *Searcher) SearchMeetingsWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) ([]core.SearchHit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k < 1 {
		return nil, ErrInvalidLimit
	}
	monitor.Start(query)

	candidates, err := s.fetchCandidates(ctx, query, max(k, meetingsPoolSize), monitor)
	if err != nil {
		return nil, err
	}

	hits := Rerank(candidates, query, RerankOptions{
		PreferFolder: core.FolderMeetings,
		PreferRecent: true,
		Metric:       s.index.Metric(),
		Now:          s.clock(),
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	monitor.Finish(hits)
	return hits, nil
}

// SearchInDateWindow finds the k best chunks relevant within the window:
// meetings held inside it, or reminders whose validity overlaps it.
// If nothing survives the window filter, the result is empty; there is
// no fallback to unfiltered matches.
func (s *Searcher) SearchInDateWindow(ctx context.Context, query string, window core.DateWindow, k int) ([]core.SearchHit, error) {
	return s.SearchInDateWindowWithMonitor(ctx, query, window, k, nil)
}

// SearchInDateWindowWithMonitor is SearchInDateWindow with stage callbacks.
func (s *Searcher) SearchInDateWindowWithMonitor(ctx context.Context, query string, window core.DateWindow, k int, monitor SearchMonitor) ([]core.SearchHit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k < 1 {
		return nil, ErrInvalidLimit
	}
	monitor.Start(query)

	candidates, err := s.fetchCandidates(ctx, query, max(k, windowPoolSize), monitor)
	if err != nil {
		return nil, err
	}

	windowed := temporal.FilterByWindow(candidates, window)
	monitor.AfterWindowFilter(window, windowed)
	if len(windowed) == 0 {
		s.logger.Debug("no candidates in window", "query", query, "start", window.Start, "end", window.End)
		monitor.Finish(nil)
		return nil, nil
	}

	hits := RerankForRecency(windowed, query, s.index.Metric(), s.clock())
	if len(hits) > k {
		hits = hits[:k]
	}

	monitor.Finish(hits)
	return hits, nil
}

// fetchCandidates embeds the query and pulls a candidate pool from the index.
func (s *Searcher) fetchCandidates(ctx context.Context, query string, poolSize int, monitor SearchMonitor) ([]core.Candidate, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(vector)

	candidates, err := s.index.Query(vector, poolSize)
	if err != nil {
		s.logger.Error("error querying index", "err", err)
		return nil, err
	}
	monitor.AfterIndexQuery(candidates)
	return candidates, nil
}
