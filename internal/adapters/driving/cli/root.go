// Package cli implements the askitty command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/askitty/askitty/internal/adapters/driven/config/file"
	embollama "github.com/askitty/askitty/internal/adapters/driven/embedding/ollama"
	embopenai "github.com/askitty/askitty/internal/adapters/driven/embedding/openai"
	"github.com/askitty/askitty/internal/adapters/driven/embedding/ratelimit"
	llmanthropic "github.com/askitty/askitty/internal/adapters/driven/llm/anthropic"
	llmollama "github.com/askitty/askitty/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/askitty/askitty/internal/adapters/driven/llm/openai"
	"github.com/askitty/askitty/internal/adapters/driven/objectstore/filesystem"
	"github.com/askitty/askitty/internal/adapters/driven/storage/sqlite"
	"github.com/askitty/askitty/internal/chunker"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/core/ports/driving"
	"github.com/askitty/askitty/internal/core/services"
	"github.com/askitty/askitty/internal/extractors"
	"github.com/askitty/askitty/internal/extractors/docx"
	"github.com/askitty/askitty/internal/extractors/pdf"
	"github.com/askitty/askitty/internal/extractors/plaintext"
	"github.com/askitty/askitty/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagConfigDir string
	flagVerbose   bool
)

// Wired services, shared by all commands.
var (
	appConfig     *configfile.Config
	objectStore   *filesystem.ObjectStore
	chunkStore    driven.ChunkStore
	embedder      driven.EmbeddingService
	llm           driven.LLMService
	ingestService driving.IngestService
	queryService  driving.QueryService
)

var rootCmd = &cobra.Command{
	Use:   "askitty",
	Short: "Question answering over your own documents",
	Long: `askitty indexes local documents (PDF, DOCX, plain text) into a
chunked, embedded corpus and answers questions strictly from what it finds
there, with citations back to the source files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		// Tests inject services directly; wire only when unset.
		if queryService != nil && ingestService != nil {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.askitty)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	defer closeServices()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initServices loads configuration and wires the full pipeline.
func initServices() error {
	store, err := configfile.NewStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := os.MkdirAll(cfg.Storage.ObjectsDir, 0o755); err != nil {
		return fmt.Errorf("create objects directory: %w", err)
	}
	objectStore, err = filesystem.New(cfg.Storage.ObjectsDir)
	if err != nil {
		return err
	}

	chunkStore, err = sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open chunk store: %w", err)
	}

	embedder, err = buildEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	llm, err = buildLLM(cfg.LLM)
	if err != nil {
		return err
	}

	opts := []chunker.Option{}
	if cfg.Chunking.MaxChars > 0 {
		opts = append(opts, chunker.WithMaxChars(cfg.Chunking.MaxChars))
	}
	if cfg.Chunking.Overlap > 0 {
		opts = append(opts, chunker.WithOverlap(cfg.Chunking.Overlap))
	}
	ch, err := chunker.New(opts...)
	if err != nil {
		return fmt.Errorf("chunking config: %w", err)
	}

	registry := extractors.NewRegistry(
		pdf.New(),
		docx.New(),
		plaintext.New(),
	)

	ingestService = services.NewIngestService(objectStore, registry, ch, embedder, chunkStore)
	queryService = services.NewQueryService(embedder, chunkStore, llm, cfg.Query.TopK, cfg.Query.ScanCeiling)
	return nil
}

func buildEmbedder(cfg configfile.ProviderConfig) (driven.EmbeddingService, error) {
	var inner driven.EmbeddingService
	switch cfg.Provider {
	case "ollama":
		inner = embollama.NewEmbeddingService(embollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "openai":
		svc, err := embopenai.NewEmbeddingService(embopenai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		inner = svc
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
	return ratelimit.Wrap(inner, cfg.RequestsPerSecond), nil
}

func buildLLM(cfg configfile.ProviderConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "ollama":
		return llmollama.NewLLMService(llmollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "openai":
		return llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "anthropic":
		return llmanthropic.NewLLMService(llmanthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func closeServices() {
	if embedder != nil {
		embedder.Close() //nolint:errcheck
	}
	if llm != nil {
		llm.Close() //nolint:errcheck
	}
	if chunkStore != nil {
		chunkStore.Close() //nolint:errcheck
	}
}
