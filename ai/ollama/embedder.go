package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/cobaltlane/hindsight/ai"
)

// Embedder implements ai.Embedder against a local Ollama server.
type Embedder struct {
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

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		dim:      config.Dim,
		metric:   config.Metric,
		logger:   slog.Default().With("component", "ollama-embedder"),
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
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
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
