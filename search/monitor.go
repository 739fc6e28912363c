package search

import "github.com/cobaltlane/hindsight/core"

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(vector []float32)
	AfterIndexQuery(candidates []core.Candidate)
	AfterWindowFilter(window core.DateWindow, kept []core.Candidate)
	Finish(hits []core.SearchHit)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                          {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                              {}
func (n *noopMonitor) AfterIndexQuery(_ []core.Candidate)                      {}
func (n *noopMonitor) AfterWindowFilter(_ core.DateWindow, _ []core.Candidate) {}
func (n *noopMonitor) Finish(_ []core.SearchHit)                               {}
