package search

import (
	"sort"
	"strings"
	"time"

	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
)

// Scoring weights. The base term is normalized into [0,1], so these fixed
// bonuses keep a stable priority: validity > folder preference > tag
// overlap > recency.
const (
	tagOverlapWeight     = 0.05
	preferredFolderBonus = 0.25
	reminderFolderBonus  = 0.15
	validityBonus        = 0.40
	validityPenalty      = -0.60
	recencyScale         = 1e-12
)

// RerankOptions tune the heuristic signals applied on top of vector
// similarity.
type RerankOptions struct {
	// PreferFolder grants a fixed bonus to records in this folder.
	// Empty means no folder preference.
	PreferFolder string

	// PreferRecent adds a tiny monotonic bonus for later meeting dates.
	PreferRecent bool

	// Metric tells the scorer how to read raw index scores.
	// Zero value is treated as inner product.
	Metric ai.Metric

	// Now anchors reminder validity checks. Zero means time.Now().
	Now time.Time
}

// Rerank orders candidates by combining normalized vector similarity with
// light heuristics: tag overlap with the query, folder preference, a modest
// standing lift for reminders, reminder validity at the anchor time, and an
// optional recency boost for dated records. The sort is stable, so equal
// scores keep their incoming candidate order.
func Rerank(candidates []core.Candidate, query string, opts RerankOptions) []core.SearchHit {
	qtags := queryTags(query)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	hits := make([]core.SearchHit, 0, len(candidates))
	for _, c := range candidates {
		if c.Record == nil {
			continue
		}
		hits = append(hits, core.SearchHit{
			Candidate: c,
			Score:     score(c, qtags, now, opts),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// RerankForRecency is Rerank with only the recency signal enabled.
func RerankForRecency(candidates []core.Candidate, query string, metric ai.Metric, now time.Time) []core.SearchHit {
	return Rerank(candidates, query, RerankOptions{
		PreferRecent: true,
		Metric:       metric,
		Now:          now,
	})
}

func score(c core.Candidate, qtags map[string]bool, now time.Time, opts RerankOptions) float64 {
	base := baseScore(c.Raw, opts.Metric)
	record := c.Record
	folder := strings.ToLower(record.Folder)

	overlap := 0
	for _, tag := range record.Tags {
		if qtags[strings.ToLower(strings.TrimSpace(tag))] {
			overlap++
		}
	}
	tagBonus := tagOverlapWeight * float64(overlap)

	recencyBonus := 0.0
	if opts.PreferRecent && !record.MeetingDate.IsZero() {
		recencyBonus = recencyScale * float64(record.MeetingDate.Unix())
	}

	folderBonus := 0.0
	if opts.PreferFolder != "" && folder == strings.ToLower(opts.PreferFolder) {
		folderBonus += preferredFolderBonus
	}
	if folder == core.FolderReminders {
		// Modest lift so reminders aren't buried under topical matches.
		folderBonus += reminderFolderBonus
	}

	validity := 0.0
	if folder == core.FolderReminders {
		validNow := true
		if !record.ValidFrom.IsZero() && now.Before(record.ValidFrom) {
			validNow = false
		}
		if !record.ValidTo.IsZero() && now.After(record.ValidTo) {
			validNow = false
		}
		if validNow {
			validity = validityBonus
		} else {
			validity = validityPenalty
		}
	}

	return base + tagBonus + folderBonus + recencyBonus + validity
}

// baseScore maps a raw index score into [0,1], higher is better.
// Inner product over unit vectors lies in [-1,1] and is shifted up;
// l2 distances are inverted.
func baseScore(raw float32, metric ai.Metric) float64 {
	if metric == ai.MetricL2 {
		return 1.0 / (1.0 + float64(raw))
	}
	base := (float64(raw) + 1.0) / 2.0
	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}
