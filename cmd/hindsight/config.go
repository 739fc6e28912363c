package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cobaltlane/hindsight/ai"
)

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	Archive   string          `yaml:"archive"`
	Embedding embeddingConfig `yaml:"embedding"`
	Answer    answerConfig    `yaml:"answer"`
}

type embeddingConfig struct {
	Backend   string `yaml:"backend"` // "remote" or "local"
	Host      string `yaml:"host"`
	APIKeyEnv string `yaml:"api_key_env"` // environment variable holding the API key
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
	Metric    string `yaml:"metric"` // "ip" or "l2"
}

type answerConfig struct {
	Model string `yaml:"model"` // chat model for synthesis, empty disables it
}

// loadConfig reads the YAML file at path. A missing path yields defaults.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{Archive: "./archive"}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// embeddingOptions maps the file config onto ai.Config options,
// keeping ai.DefaultConfig values for anything left unset.
func (c *fileConfig) embeddingOptions() []ai.ConfigOption {
	var opts []ai.ConfigOption
	e := c.Embedding
	if e.Backend != "" {
		opts = append(opts, ai.WithBackend(ai.Backend(e.Backend)))
	}
	if e.Host != "" {
		opts = append(opts, ai.WithHost(e.Host))
	}
	if e.APIKeyEnv != "" {
		if token := os.Getenv(e.APIKeyEnv); token != "" {
			opts = append(opts, ai.WithToken(token))
		}
	}
	if e.Model != "" {
		opts = append(opts, ai.WithModel(e.Model))
	}
	if e.Dimension > 0 {
		opts = append(opts, ai.WithDimension(e.Dimension))
	}
	if e.Metric != "" {
		opts = append(opts, ai.WithMetric(ai.Metric(e.Metric)))
	}
	return opts
}
