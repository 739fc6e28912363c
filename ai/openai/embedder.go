package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cobaltlane/hindsight/ai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	client   *openai.LLM
	embedder embeddings.Embedder
	dim      int
	metric   ai.Metric
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	token := config.Token
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithEmbeddingModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		client:   client,
		embedder: embedder,
		dim:      config.Dim,
		metric:   config.Metric,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vecs[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
// If the batching wrapper fails it retries once against the raw client, which
// keeps older OpenAI-compatible servers working.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Warn("batched embedding failed, retrying with raw client", "err", err)
		vecs, err = e.client.CreateEmbedding(ctx, texts)
		if err != nil {
			e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
			return nil, err
		}
	}

	for i, vec := range vecs {
		if err := ai.CheckDimension(vec, e.dim); err != nil {
			return nil, fmt.Errorf("%w: text %d produced %d dims, want %d",
				ai.ErrDimensionMismatch, i, len(vec), e.dim)
		}
		if e.metric == ai.MetricInnerProduct {
			vecs[i] = ai.NormalizeVector(vec)
		}
	}
	return vecs, nil
}
