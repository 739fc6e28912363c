package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/storage"
)

func TestChunkRecordBasics(t *testing.T) {
	repo, backend, err := NewMemoryChunkRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	record := &core.ChunkRecord{
		Folder:      core.FolderMeetings,
		Filename:    "meetings/2025-03-04-standup.md",
		Title:       "Standup",
		TextPreview: "Discussed the compaction alerts.",
		Vector:      []float32{0.1, 0.2, 0.3},
	}

	added, err := repo.AddChunkRecords(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add chunk record: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero content-derived ID")
	}

	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := repo.GetChunkRecord(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk record: %v", err)
	}

	if retrieved.TextPreview != record.TextPreview {
		t.Fatalf("Expected %q, got %q", record.TextPreview, retrieved.TextPreview)
	}
}

func TestChunkRecordContentIDStable(t *testing.T) {
	repo, backend, err := NewMemoryChunkRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.ChunkRecord{Filename: "a.md", TextPreview: "same chunk"}
	second := &core.ChunkRecord{Filename: "a.md", TextPreview: "same chunk"}

	if _, err := repo.AddChunkRecords(ctx, first); err != nil {
		t.Fatalf("Failed to add first record: %v", err)
	}
	if _, err := repo.AddChunkRecords(ctx, second); err != nil {
		t.Fatalf("Failed to add second record: %v", err)
	}

	if first.Id != second.Id {
		t.Fatalf("Expected identical content IDs, got %d and %d", first.Id, second.Id)
	}

	count, err := repo.CountChunkRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected re-ingest to overwrite in place, got %d records", count)
	}
}

func TestChunkRecordUpdateAndDelete(t *testing.T) {
	repo, backend, err := NewMemoryChunkRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	record := &core.ChunkRecord{Filename: "b.md", TextPreview: "before update"}
	if _, err := repo.AddChunkRecords(ctx, record); err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	record.Vector = []float32{0.5, 0.5}
	if _, err := repo.UpdateChunkRecords(ctx, record); err != nil {
		t.Fatalf("Failed to update record: %v", err)
	}

	retrieved, err := repo.GetChunkRecord(ctx, record.Id)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if len(retrieved.Vector) != 2 {
		t.Fatalf("Expected updated vector, got %v", retrieved.Vector)
	}
	if !retrieved.UpdatedAt.After(retrieved.InsertedAt) {
		t.Fatal("Expected UpdatedAt to advance past InsertedAt")
	}

	if err := repo.DeleteChunkRecords(ctx, record.Id); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	if _, err := repo.GetChunkRecord(ctx, record.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	missing := &core.ChunkRecord{Id: record.Id, TextPreview: "ghost"}
	if _, err := repo.UpdateChunkRecords(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing update, got %v", err)
	}
}

func TestAllChunkRecords(t *testing.T) {
	repo, backend, err := NewMemoryChunkRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	records := []*core.ChunkRecord{
		{Filename: "one.md", TextPreview: "first chunk"},
		{Filename: "two.md", TextPreview: "second chunk"},
		{Filename: "three.md", TextPreview: "third chunk"},
	}
	if _, err := repo.AddChunkRecords(ctx, records...); err != nil {
		t.Fatalf("Failed to add records: %v", err)
	}

	seen := 0
	for record, err := range repo.AllChunkRecords(ctx) {
		if err != nil {
			t.Fatalf("Iteration error: %v", err)
		}
		if record.TextPreview == "" {
			t.Fatal("Expected populated record")
		}
		seen++
	}

	if seen != 3 {
		t.Fatalf("Expected 3 records, saw %d", seen)
	}
}
