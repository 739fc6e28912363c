package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("meetings/2025-03-04-standup.md")
		b := IDFromContent("meetings/2025-03-04-standup.md")
		assert.Equal(t, a, b)
	})

	t.Run("different content different id", func(t *testing.T) {
		a := IDFromContent("meetings/2025-03-04-standup.md")
		b := IDFromContent("reminders/renew-contract.md")
		assert.NotEqual(t, a, b)
	})
}

func TestNewDateWindow(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC)

	t.Run("valid bounds", func(t *testing.T) {
		w, err := NewDateWindow(start, end)
		require.NoError(t, err)
		assert.Equal(t, start, w.Start)
		assert.Equal(t, end, w.End)
	})

	t.Run("equal bounds", func(t *testing.T) {
		_, err := NewDateWindow(start, start)
		assert.NoError(t, err)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := NewDateWindow(end, start)
		assert.ErrorIs(t, err, ErrInvalidDateWindow)
	})
}

func TestDateWindowContains(t *testing.T) {
	w := DateWindow{
		Start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC),
	}

	assert.True(t, w.Contains(time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(w.Start), "start bound is inclusive")
	assert.True(t, w.Contains(w.End), "end bound is inclusive")
	assert.False(t, w.Contains(time.Date(2025, 1, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)))
}

func TestDateWindowOverlaps(t *testing.T) {
	w := DateWindow{
		Start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 1, 23, 59, 59, 0, time.UTC),
	}

	t.Run("partial overlap", func(t *testing.T) {
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		assert.True(t, w.Overlaps(from, to))
	})

	t.Run("interval before window", func(t *testing.T) {
		from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		assert.False(t, w.Overlaps(from, to))
	})

	t.Run("interval after window", func(t *testing.T) {
		from := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
		assert.False(t, w.Overlaps(from, to))
	})

	t.Run("open-ended interval overlaps", func(t *testing.T) {
		from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, w.Overlaps(from, time.Time{}))
	})
}

func TestChunkRecordSource(t *testing.T) {
	assert.Equal(t, "notes.md", (&ChunkRecord{Filename: "notes.md", Title: "Notes"}).Source())
	assert.Equal(t, "Notes", (&ChunkRecord{Title: "Notes"}).Source())
	assert.Equal(t, "source", (&ChunkRecord{}).Source())
}
