package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/search"
	"github.com/cobaltlane/hindsight/temporal"
)

const systemPrompt = "You are an analyst assistant. Answer concisely using ONLY the provided context. " +
	"If the answer is in a Reminder, respect its validity window. " +
	"Cite the filename inline like [source]."

const (
	defaultHitCount = 7
	contextHits     = 6
	extractHits     = 5
	snippetRunes    = 800
	previewRunes    = 180
)

// noResultsMessage is returned when retrieval finds nothing in scope.
const noResultsMessage = "No relevant documents or reminders found in the specified scope."

// Synthesizer answers questions over the archive: it routes the question
// through the right retrieval operation, then either asks an LLM to compose
// a grounded answer or falls back to a plain extract of the top matches.
type Synthesizer struct {
	searcher *search.Searcher
	model    llms.Model
	logger   *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithModel sets the LLM used for answer synthesis.
// Without a model, answers are plain extracts of the top matches.
func WithModel(model llms.Model) Option {
	return func(s *Synthesizer) {
		s.model = model
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynthesizer creates a Synthesizer over a searcher.
func NewSynthesizer(searcher *search.Searcher, opts ...Option) (*Synthesizer, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	s := &Synthesizer{
		searcher: searcher,
		logger:   slog.Default().With("component", "answer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AnswerRequest carries a question and its retrieval preferences.
type AnswerRequest struct {
	// Question is the user's free-text question.
	Question string

	// K caps the retrieval hit count. Zero means a default of 7.
	K int

	// RestrictToMeetings biases retrieval toward meeting records when the
	// question carries no date reference.
	RestrictToMeetings bool
}

// Answer retrieves context for the question and produces a grounded reply.
//
// If the question names a time frame ("yesterday", "Q3 2025", ...), the
// date-aware search is used so reminders qualify through their validity
// window. Otherwise the meetings bias applies if requested, or plain
// search runs.
func (s *Synthesizer) Answer(ctx context.Context, req AnswerRequest) (string, error) {
	k := req.K
	if k < 1 {
		k = defaultHitCount
	}

	var (
		hits []core.SearchHit
		err  error
	)
	if window, ok := temporal.ResolveWindow(req.Question); ok {
		hits, err = s.searcher.SearchInDateWindow(ctx, req.Question, window, k)
	} else if req.RestrictToMeetings {
		hits, err = s.searcher.SearchMeetings(ctx, req.Question, k)
	} else {
		hits, err = s.searcher.Search(ctx, req.Question, k)
	}
	if err != nil {
		return "", err
	}

	if len(hits) == 0 {
		return noResultsMessage, nil
	}

	if s.model != nil {
		reply, err := s.synthesize(ctx, req.Question, hits)
		if err == nil {
			return reply, nil
		}
		s.logger.Warn("llm synthesis failed, falling back to extract", "err", err)
	}
	return extract(hits), nil
}

// synthesize asks the LLM for an answer grounded in the retrieved chunks.
func (s *Synthesizer) synthesize(ctx context.Context, question string, hits []core.SearchHit) (string, error) {
	var contexts []string
	for _, hit := range hits[:min(len(hits), contextHits)] {
		snippet := truncateRunes(hit.Record.TextPreview, snippetRunes)
		contexts = append(contexts, fmt.Sprintf("[%s]: %s", hit.Record.Source(), snippet))
	}
	userMsg := fmt.Sprintf("Question: %s\n\nContext:\n%s", question, strings.Join(contexts, "\n\n"))

	resp, err := s.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userMsg),
		},
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// extract renders a compact source list when no LLM is available.
func extract(hits []core.SearchHit) string {
	lines := []string{"Top matches:"}
	for i, hit := range hits[:min(len(hits), extractHits)] {
		record := hit.Record

		var meta []string
		if record.Folder != "" {
			meta = append(meta, record.Folder)
		}
		if !record.MeetingDate.IsZero() {
			meta = append(meta, "meeting_date="+record.MeetingDate.Format("2006-01-02"))
		}
		if !record.ValidFrom.IsZero() || !record.ValidTo.IsZero() {
			from := ""
			if !record.ValidFrom.IsZero() {
				from = record.ValidFrom.Format("2006-01-02")
			}
			to := "open"
			if !record.ValidTo.IsZero() {
				to = record.ValidTo.Format("2006-01-02")
			}
			meta = append(meta, fmt.Sprintf("valid=%s..%s", from, to))
		}

		preview := strings.ReplaceAll(strings.TrimSpace(record.TextPreview), "\n", " ")
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %s",
			i+1, record.Source(), strings.Join(meta, ", "), truncateRunes(preview, previewRunes)))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
