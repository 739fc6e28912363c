package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/cobaltlane/hindsight"
	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/core"
)

var (
	archivePath = flag.String("archive", "./archive", "path to the archive directory")
	host        = flag.String("host", "http://localhost:11434", "embedding service host")
	model       = flag.String("model", "embeddinggemma", "embedding model name")
	dimension   = flag.Int("dim", 768, "embedding dimension")
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleChunks is a small corpus of meetings and reminders for trying the
// search and ask commands against a freshly seeded archive.
func sampleChunks() []*core.ChunkRecord {
	return []*core.ChunkRecord{
		{
			Folder:      core.FolderMeetings,
			Filename:    "meetings/2025-06-02-infra-standup.md",
			Title:       "Infra standup",
			Tags:        []string{"infra", "badger", "alerts"},
			MeetingDate: date(2025, 6, 2),
			TextPreview: "Compaction alerts traced to oversized value log segments. Agreed to cap segment size and re-run the load test before Thursday.",
		},
		{
			Folder:      core.FolderMeetings,
			Filename:    "meetings/2025-06-16-quarterly-planning.md",
			Title:       "Q3 planning",
			Tags:        []string{"planning", "budget", "q3"},
			MeetingDate: date(2025, 6, 16),
			TextPreview: "Q3 priorities: migrate the ingestion fleet, renegotiate the data center contract, ship the archive search CLI to the analyst team.",
		},
		{
			Folder:      core.FolderMeetings,
			Filename:    "meetings/2025-07-07-contract-review.md",
			Title:       "Contract review",
			Tags:        []string{"contract", "legal", "renewal"},
			MeetingDate: date(2025, 7, 7),
			TextPreview: "Legal flagged the auto-renewal clause in the data center contract. Procurement to request a 60-day termination window before signing.",
		},
		{
			Folder:      core.FolderReminders,
			Filename:    "reminders/renew-datacenter-contract.md",
			Title:       "Renew data center contract",
			Tags:        []string{"contract", "renewal", "deadline"},
			ValidFrom:   date(2025, 7, 1),
			ValidTo:     date(2025, 9, 30),
			TextPreview: "Renew the data center contract before September 30. Procurement owns the paperwork; engineering signs off on capacity numbers.",
		},
		{
			Folder:      core.FolderReminders,
			Filename:    "reminders/rotate-oncall-credentials.md",
			Title:       "Rotate on-call credentials",
			Tags:        []string{"oncall", "security"},
			ValidFrom:   date(2025, 1, 1),
			TextPreview: "Rotate the on-call pager credentials at the start of every quarter. No expiry; standing policy.",
		},
		{
			Folder:      core.FolderReminders,
			Filename:    "reminders/submit-q2-report.md",
			Title:       "Submit Q2 report",
			Tags:        []string{"report", "q2", "deadline"},
			ValidFrom:   date(2025, 4, 1),
			ValidTo:     date(2025, 7, 15),
			TextPreview: "Submit the Q2 infrastructure report to finance by July 15.",
		},
	}
}

func main() {
	flag.Parse()

	archive, err := hindsight.Open(*archivePath,
		hindsight.WithEmbeddingConfig(ai.NewConfig(
			ai.WithBackend(ai.BackendLocal),
			ai.WithHost(*host),
			ai.WithModel(*model),
			ai.WithDimension(*dimension),
		)))
	if err != nil {
		panic(err)
	}
	defer archive.Close()

	pipeline, err := archive.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	chunks := sampleChunks()
	if err := pipeline.Ingest(ctx, chunks...); err != nil {
		panic(err)
	}
	pipeline.Wait()

	slog.Info("seeded archive", "path", *archivePath, "chunks", len(chunks))
}
