package badger

import (
	"context"
	"iter"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// contentID derives a stable record ID from the chunk's source and text,
// so re-ingesting the same chunk overwrites in place.
func contentID(record *core.ChunkRecord) core.ID {
	return core.IDFromContent(record.Filename + "\x00" + record.Title + "\x00" + record.TextPreview)
}

// AddChunkRecords adds one or more chunk records to storage.
func (r *ChunkRepository) AddChunkRecords(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				record.Id = contentID(record)
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			record.UpdatedAt = record.InsertedAt

			key := makeChunkRecordKey(record.Id)
			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateChunkRecords updates existing chunk records.
func (r *ChunkRepository) UpdateChunkRecords(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeChunkRecordKey(record.Id)

			old, err := r.readChunkRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteChunkRecords removes chunk records by their IDs.
func (r *ChunkRepository) DeleteChunkRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkRecordKey(id)

			record, err := r.readChunkRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunkRecord retrieves a single chunk record by ID.
func (r *ChunkRepository) GetChunkRecord(ctx context.Context, id core.ID) (*core.ChunkRecord, error) {
	var result *core.ChunkRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkRecordKey(id)
		var err error
		result, err = r.readChunkRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunkRecords retrieves multiple chunk records by their IDs.
func (r *ChunkRepository) GetChunkRecords(ctx context.Context, ids ...core.ID) ([]*core.ChunkRecord, error) {
	var result []*core.ChunkRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkRecordKey(id)
			record, err := r.readChunkRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllChunkRecords iterates over every stored chunk record.
func (r *ChunkRepository) AllChunkRecords(ctx context.Context) iter.Seq2[*core.ChunkRecord, error] {
	return func(yield func(*core.ChunkRecord, error) bool) {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(chunkRecordPrefix)
			iterator := tx.NewIterator(opts)
			defer iterator.Close()

			for iterator.Rewind(); iterator.Valid(); iterator.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var record *core.ChunkRecord
				err := iterator.Item().Value(func(val []byte) error {
					var err error
					record, err = storage.UnmarshalChunkRecord(val)
					return err
				})
				if err != nil {
					return err
				}
				if !yield(record, nil) {
					return nil
				}
			}
			return nil
		}, false)
		if err != nil {
			yield(nil, err)
		}
	}
}

// CountChunkRecords returns the number of stored chunk records.
func (r *ChunkRepository) CountChunkRecords(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix)
		opts.PrefetchValues = false
		iterator := tx.NewIterator(opts)
		defer iterator.Close()

		for iterator.Rewind(); iterator.Valid(); iterator.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readChunkRecord reads and deserializes a chunk record.
// Returns nil (not an error) if the key doesn't exist.
func (r *ChunkRepository) readChunkRecord(tx *badger.Txn, key []byte) (*core.ChunkRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ChunkRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalChunkRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
