package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbs392/llmockapi/pkg/config"
	"github.com/rbs392/llmockapi/pkg/conversation"
	"github.com/rbs392/llmockapi/pkg/journal"
	"github.com/rbs392/llmockapi/pkg/llm"
	"github.com/rbs392/llmockapi/pkg/mock"
	"github.com/rbs392/llmockapi/pkg/server"
	"github.com/rbs392/llmockapi/pkg/spec"
	"github.com/rbs392/llmockapi/pkg/telemetry/logging"
	"github.com/rbs392/llmockapi/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	specSource    string
	model         string
	logLevel      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the mock API server",
	Long: `Start the mock API server with the specified configuration.

The server loads the specification document, seeds the conversation with the
system prompt, and answers every non-diagnostic request through the LLM
pipeline.

Examples:
  # Start with a config file
  llmockapi run --config config.yaml

  # Start with flags only
  llmockapi run --spec api-spec.yaml --listen localhost:9000

  # Override the model
  llmockapi run --config config.yaml --model anthropic/claude-haiku-4.5`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVarP(&runFlags.specSource, "spec", "s", "", "override spec source (file path or URL)")
	runCmd.Flags().StringVarP(&runFlags.model, "model", "m", "", "override model identifier")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stdout); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Load the spec once; it conditions every exchange for the process
	// lifetime.
	document, err := spec.Load(ctx, cfg.Spec)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	store := conversation.NewStore(spec.SystemPrompt(document))

	client := llm.NewClient(llm.ClientConfig{
		BaseURL:         cfg.LLM.BaseURL,
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		Timeout:         cfg.LLM.Timeout,
		MaxIdleConns:    cfg.LLM.MaxIdleConns,
		IdleConnTimeout: cfg.LLM.IdleConnTimeout,
	})
	defer client.Close()

	pipeline := mock.NewPipeline(store, client)

	var m *metrics.Metrics
	if cfg.Telemetry.Metrics.Enabled {
		m = metrics.New(cfg.Telemetry.Metrics)
		m.SetConversationTurns(store.Len())
	}

	var storage journal.Storage
	var recorder *journal.Recorder
	if cfg.Journal.Enabled {
		storage, err = journal.NewSQLiteStorage(cfg.Journal.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer storage.Close()
		recorder = journal.NewRecorder(storage)

		pruner := journal.NewPruner(storage, journal.RetentionConfig{
			RetentionDays: cfg.Journal.RetentionDays,
			MaxRecords:    cfg.Journal.MaxRecords,
			Schedule:      cfg.Journal.PruneSchedule,
		})
		if err := pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start journal retention: %w", err)
		}
		defer pruner.Stop()
	}

	if cfg.Spec.Watch {
		watcher, err := spec.NewWatcher(cfg.Spec.Source)
		if err != nil {
			return fmt.Errorf("failed to create spec watcher: %w", err)
		}
		go func() {
			_ = watcher.Watch(ctx, func() {
				if m != nil {
					m.MarkSpecStale()
				}
			})
		}()
		defer watcher.Stop()
	}

	srv := server.New(cfg.Server, server.Options{
		Pipeline: pipeline,
		Store:    store,
		Metrics:  m,
		Journal:  storage,
		Recorder: recorder,
	})

	fmt.Printf("llmockapi %s\n", Version)
	fmt.Printf("✓ Spec loaded from %s (%d bytes)\n", cfg.Spec.Source, len(document))
	fmt.Printf("✓ Serving on http://%s (diagnostics under /__internal)\n", cfg.Server.ListenAddress)

	return srv.Start(ctx)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.specSource != "" {
		cfg.Spec.Source = runFlags.specSource
	}
	if runFlags.model != "" {
		cfg.LLM.Model = runFlags.model
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
