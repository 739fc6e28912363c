package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunkRecord(t *testing.T) {
	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, ValidateChunkRecord(nil), ErrInvalidChunkRecord)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateChunkRecord(&ChunkRecord{Folder: FolderMeetings})
		assert.ErrorIs(t, err, ErrEmptyChunkText)
	})

	t.Run("inverted validity window", func(t *testing.T) {
		err := ValidateChunkRecord(&ChunkRecord{
			TextPreview: "renew the support contract",
			ValidFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			ValidTo:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidValidityWindow)
	})

	t.Run("open-ended validity accepted", func(t *testing.T) {
		err := ValidateChunkRecord(&ChunkRecord{
			TextPreview: "renew the support contract",
			ValidFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
	})

	t.Run("minimal valid record", func(t *testing.T) {
		assert.NoError(t, ValidateChunkRecord(&ChunkRecord{TextPreview: "standup notes"}))
	})
}
