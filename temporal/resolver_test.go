package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2025-09-17 14:30 UTC.
var ref = time.Date(2025, 9, 17, 14, 30, 0, 0, time.UTC)

func TestResolveWindowDayPhrases(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		w, ok := ResolveWindowAt("what happened today?", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 9, 17, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("yesterday", func(t *testing.T) {
		w, ok := ResolveWindowAt("summarize yesterday's standup", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 9, 16, 23, 59, 59, 0, time.UTC), w.End)
	})
}

func TestResolveWindowWeekPhrases(t *testing.T) {
	t.Run("this week spans monday to sunday", func(t *testing.T) {
		w, ok := ResolveWindowAt("meetings this week", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 9, 21, 23, 59, 59, 0, time.UTC), w.End)
		assert.Equal(t, time.Monday, w.Start.Weekday())
		assert.Equal(t, time.Sunday, w.End.Weekday())
	})

	t.Run("last week", func(t *testing.T) {
		w, ok := ResolveWindowAt("what did we decide last week", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 9, 14, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("reference on sunday stays in same week", func(t *testing.T) {
		sunday := time.Date(2025, 9, 21, 10, 0, 0, 0, time.UTC)
		w, ok := ResolveWindowAt("this week", sunday)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), w.Start)
	})
}

func TestResolveWindowMonthPhrases(t *testing.T) {
	t.Run("this month", func(t *testing.T) {
		w, ok := ResolveWindowAt("reminders due this month", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("last month", func(t *testing.T) {
		w, ok := ResolveWindowAt("last month's planning", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("last month across year boundary", func(t *testing.T) {
		january := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		w, ok := ResolveWindowAt("last month", january)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("explicit month and year", func(t *testing.T) {
		w, ok := ResolveWindowAt("decisions from February 2025", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		w, ok := ResolveWindowAt("december 2025 recap", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), w.End)
	})
}

func TestResolveWindowQuarterPhrases(t *testing.T) {
	cases := []struct {
		query string
		start time.Time
		end   time.Time
	}{
		{"revenue in Q1 2025", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)},
		{"q3-2025 okrs", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)},
		{"plans for Q4/2026", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tc := range cases {
		w, ok := ResolveWindowAt(tc.query, ref)
		require.True(t, ok, "query %q should resolve", tc.query)
		assert.Equal(t, tc.start, w.Start, "query %q", tc.query)
		assert.Equal(t, tc.end, w.End, "query %q", tc.query)
	}
}

func TestResolveWindowExplicitRange(t *testing.T) {
	t.Run("from-to range", func(t *testing.T) {
		w, ok := ResolveWindowAt("decisions from 2025-01-01 to 2025-03-31", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), w.End)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, ok := ResolveWindowAt("from 2025-03-31 to 2025-01-01", ref)
		assert.False(t, ok)
	})
}

func TestResolveWindowPriorityAndMisses(t *testing.T) {
	t.Run("relative phrase wins over explicit month", func(t *testing.T) {
		w, ok := ResolveWindowAt("compare today with february 2025", ref)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC), w.Start)
	})

	t.Run("no time phrase", func(t *testing.T) {
		_, ok := ResolveWindowAt("what is our on-call rotation", ref)
		assert.False(t, ok)
	})

	t.Run("bare year is not a window", func(t *testing.T) {
		_, ok := ResolveWindowAt("all meetings in 2025", ref)
		assert.False(t, ok)
	})
}
