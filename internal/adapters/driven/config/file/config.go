package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// Config is the full application configuration.
type Config struct {
	// InputDir is the watched drop folder.
	InputDir string `toml:"input_dir"`

	// PersistDir holds the database. Defaults next to the config file.
	PersistDir string `toml:"persist_dir"`

	Chunking  ChunkingConfig  `toml:"chunking"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Embedding EmbeddingConfig `toml:"embedding"`
}

// ChunkingConfig controls how extracted text is split.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// PipelineConfig controls the worker pool and retry behaviour.
type PipelineConfig struct {
	Workers     int `toml:"workers"`
	QueueSize   int `toml:"queue_size"`
	MaxRetries  int `toml:"max_retries"`
	BaseDelayMS int `toml:"base_delay_ms"`
}

// EmbeddingConfig selects and tunes the embedding backend.
type EmbeddingConfig struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model"`
	BaseURL           string  `toml:"base_url"`
	APIKey            string  `toml:"api_key"`
	Dimensions        int     `toml:"dimensions"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// DefaultDir returns the default configuration directory, ~/.pdfvector.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pdfvector"), nil
}

// Load reads config.toml from configDir. A missing file yields the zero
// Config; callers apply defaults for anything left unset. The OPENAI_API_KEY
// environment variable overrides an empty api_key so the key need not live
// on disk.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cfg := &Config{}
	path := filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &domain.ConfigurationError{Field: path, Reason: err.Error()}
	}

	if cfg.PersistDir == "" {
		cfg.PersistDir = configDir
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values that cannot be compensated by a default.
func (c *Config) validate() error {
	if c.Chunking.Size < 0 {
		return &domain.ConfigurationError{Field: "chunking.size", Reason: "must not be negative"}
	}
	if c.Chunking.Overlap < 0 {
		return &domain.ConfigurationError{Field: "chunking.overlap", Reason: "must not be negative"}
	}
	if c.Chunking.Size > 0 && c.Chunking.Overlap >= c.Chunking.Size {
		return &domain.ConfigurationError{
			Field:  "chunking.overlap",
			Reason: fmt.Sprintf("overlap %d must be smaller than size %d", c.Chunking.Overlap, c.Chunking.Size),
		}
	}
	if c.Pipeline.Workers < 0 {
		return &domain.ConfigurationError{Field: "pipeline.workers", Reason: "must not be negative"}
	}
	if c.Pipeline.QueueSize < 0 {
		return &domain.ConfigurationError{Field: "pipeline.queue_size", Reason: "must not be negative"}
	}
	return nil
}
