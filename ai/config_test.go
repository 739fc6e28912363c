package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, "text-embedding-3-small", cfg.Model)
	assert.Equal(t, 1536, cfg.Dim)
	assert.Equal(t, MetricInnerProduct, cfg.Metric)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithBackend(BackendLocal),
		WithHost("http://localhost:11434"),
		WithModel("embeddinggemma"),
		WithDimension(768),
		WithMetric(MetricL2),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "embeddinggemma", cfg.Model)
	assert.Equal(t, 768, cfg.Dim)
	assert.Equal(t, MetricL2, cfg.Metric)
}

func TestConfigNormalize(t *testing.T) {
	t.Run("remote host gets v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("trailing slash stripped before suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("existing suffix untouched", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("local host untouched", func(t *testing.T) {
		cfg := NewConfig(WithBackend(BackendLocal), WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434", cfg.Host)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := NewConfig(WithBackend("gpu-farm"))
		assert.ErrorIs(t, cfg.Validate(), ErrUnsupportedBackend)
	})

	t.Run("unknown metric", func(t *testing.T) {
		cfg := NewConfig(WithMetric("cosine"))
		assert.ErrorIs(t, cfg.Validate(), ErrUnsupportedMetric)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		cfg := NewConfig(WithDimension(0))
		assert.Error(t, cfg.Validate())
	})
}
