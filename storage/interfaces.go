package storage

import (
	"context"
	"iter"

	"github.com/cobaltlane/hindsight/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing chunk records.
type ChunkRepository interface {
	Repository

	// AddChunkRecords adds one or more chunk records to storage.
	// Records with Id=0 get a content-derived ID from their text preview
	// and source, so re-ingesting the same chunk overwrites in place.
	// Sets InsertedAt if not already set.
	// Returns the records with IDs and timestamps populated.
	AddChunkRecords(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error)

	// UpdateChunkRecords updates existing chunk records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateChunkRecords(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error)

	// DeleteChunkRecords removes chunk records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteChunkRecords(ctx context.Context, ids ...core.ID) error

	// GetChunkRecord retrieves a single chunk record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetChunkRecord(ctx context.Context, id core.ID) (*core.ChunkRecord, error)

	// GetChunkRecords retrieves multiple chunk records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetChunkRecords(ctx context.Context, ids ...core.ID) ([]*core.ChunkRecord, error)

	// AllChunkRecords iterates over every stored chunk record.
	// The yielded error, if non-nil, terminates the sequence.
	AllChunkRecords(ctx context.Context) iter.Seq2[*core.ChunkRecord, error]

	// CountChunkRecords returns the number of stored chunk records.
	CountChunkRecords(ctx context.Context) (int, error)
}
