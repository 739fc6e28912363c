package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed chunks.
// It is generated using content-based hashing by the ingestion pipeline.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Folder names that carry class-specific scoring rules. Any other folder
// value is treated as a plain topical document.
const (
	FolderMeetings  = "meetings"
	FolderReminders = "reminders"
)

// ChunkRecord is a unit of previously ingested document text with its
// embedding vector and retrieval metadata. Records are immutable for the
// lifetime of a query.
type ChunkRecord struct {
	Id          ID
	Folder      string    // coarse document class ("meetings", "reminders", other)
	Tags        []string  // lexical relevance tags assigned at ingestion
	MeetingDate time.Time // zero when the chunk is not meeting-dated
	ValidFrom   time.Time // reminder validity lower bound, zero when absent
	ValidTo     time.Time // reminder validity upper bound, zero means open-ended
	Title       string
	Filename    string
	TextPreview string
	Vector      []float32 // embedding vector (populated by the ingestion pipeline)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Source returns the best display name for citing this chunk.
func (r *ChunkRecord) Source() string {
	if r.Filename != "" {
		return r.Filename
	}
	if r.Title != "" {
		return r.Title
	}
	return "source"
}

// DateWindow is a closed instant interval with Start <= End.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow builds a DateWindow, rejecting inverted bounds.
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	if start.After(end) {
		return DateWindow{}, ErrInvalidDateWindow
	}
	return DateWindow{Start: start, End: end}, nil
}

// Contains reports whether t lies within the window, bounds inclusive.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether the validity interval [from, to] overlaps the
// window. A zero to is treated as open-ended.
func (w DateWindow) Overlaps(from, to time.Time) bool {
	if from.After(w.End) {
		return false
	}
	return to.IsZero() || !w.Start.After(to)
}

// Candidate is a chunk returned by the vector index before reranking.
// Raw is the metric-native value from the index: a similarity for
// inner-product metrics, a distance for L2.
type Candidate struct {
	Id     ID
	Raw    float32
	Record *ChunkRecord
}

// SearchHit is a candidate with its final computed relevance score.
type SearchHit struct {
	Candidate
	Score float64
}
