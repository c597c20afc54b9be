// Package cli implements the pdfvector command-line interface.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfvector/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfvector/internal/adapters/driven/embedding"
	"github.com/custodia-labs/pdfvector/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfvector/internal/chunker"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
	"github.com/custodia-labs/pdfvector/internal/core/services"
	"github.com/custodia-labs/pdfvector/internal/extractors"
	"github.com/custodia-labs/pdfvector/internal/extractors/pdf"
	"github.com/custodia-labs/pdfvector/internal/extractors/plaintext"
	"github.com/custodia-labs/pdfvector/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	configDir   string

	// Flag overrides for config file values.
	persistDirFlag  string
	workersOverride int
)

// Services used by the commands. Wired by ensureServices at first use;
// tests inject fakes directly.
var (
	appConfig         *file.Config
	pipelineService   driving.Pipeline
	queryService      driving.QueryService
	ledgerService     driven.Ledger
	embeddingService  driven.EmbeddingService
	extractorRegistry driven.ExtractorRegistry
	cleanupFunc       func()
)

var rootCmd = &cobra.Command{
	Use:   "pdfvector",
	Short: "Watch a folder and index PDFs for semantic search",
	Long: `pdfvector watches a drop folder, extracts text from new documents,
embeds it chunk by chunk and stores the vectors locally. Indexed content
can then be queried with natural-language questions.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pdfvector)")
	rootCmd.PersistentFlags().StringVar(&persistDirFlag, "persist-dir", "", "database directory (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if cleanupFunc != nil {
			cleanupFunc()
		}
	}()
	return rootCmd.Execute()
}

// ensureServices builds the full service graph from configuration.
// Idempotent: already-wired services (including test fakes) are kept.
func ensureServices() error {
	if pipelineService != nil && queryService != nil {
		return nil
	}

	cfg, err := file.Load(configDir)
	if err != nil {
		return err
	}
	if persistDirFlag != "" {
		cfg.PersistDir = persistDirFlag
	}
	if workersOverride > 0 {
		cfg.Pipeline.Workers = workersOverride
	}
	appConfig = cfg

	store, err := sqlite.NewStore(cfg.PersistDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	embedder, err := embedding.New(embeddingConfig(cfg))
	if err != nil {
		store.Close()
		return err
	}

	chk, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		store.Close()
		return err
	}

	extractorRegistry = extractors.NewRegistry(
		pdf.New(),
		plaintext.New(),
	)

	pipeline, err := services.NewPipeline(
		pipelineConfig(cfg),
		extractorRegistry,
		chk,
		embedder,
		store.VectorStore(),
		store.Ledger(),
	)
	if err != nil {
		store.Close()
		return err
	}

	query, err := services.NewQueryService(embedder, store.VectorStore())
	if err != nil {
		store.Close()
		return err
	}

	pipelineService = pipeline
	queryService = query
	ledgerService = store.Ledger()
	embeddingService = embedder
	cleanupFunc = func() {
		embedder.Close()
		store.Close()
	}

	logger.Debug("Services wired: db=%s, model=%s", store.Path(), embedder.ModelName())
	return nil
}

// checkEmbedder verifies the embedding backend is reachable. Called
// before any file or question is accepted, so an unreachable backend
// fails the command up front instead of failing every file.
func checkEmbedder(ctx context.Context) error {
	if embeddingService == nil {
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := embeddingService.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding backend unreachable: %w", err)
	}
	return nil
}

func embeddingConfig(cfg *file.Config) embedding.Config {
	return embedding.Config{
		Provider:          cfg.Embedding.Provider,
		BaseURL:           cfg.Embedding.BaseURL,
		Model:             cfg.Embedding.Model,
		APIKey:            cfg.Embedding.APIKey,
		Dimensions:        cfg.Embedding.Dimensions,
		Timeout:           time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
	}
}

func pipelineConfig(cfg *file.Config) services.PipelineConfig {
	pc := services.PipelineConfig{
		Workers:   cfg.Pipeline.Workers,
		QueueSize: cfg.Pipeline.QueueSize,
	}
	if cfg.Pipeline.MaxRetries > 0 {
		pc.Retry.MaxAttempts = cfg.Pipeline.MaxRetries
	}
	if cfg.Pipeline.BaseDelayMS > 0 {
		pc.Retry.BaseDelay = time.Duration(cfg.Pipeline.BaseDelayMS) * time.Millisecond
	}
	return pc
}
