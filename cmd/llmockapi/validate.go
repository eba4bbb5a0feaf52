package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbs392/llmockapi/pkg/config"
	"github.com/rbs392/llmockapi/pkg/spec"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and spec without starting the server",
	Long: `Validate the configuration file and check that the specification
document can be loaded and parsed.

Examples:
  # Validate a config file
  llmockapi validate --config config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	fmt.Println("✓ Configuration valid")

	document, err := spec.Load(context.Background(), cfg.Spec)
	if err != nil {
		return fmt.Errorf("spec check failed: %w", err)
	}
	fmt.Printf("✓ Spec loaded from %s (%d bytes)\n", cfg.Spec.Source, len(document))

	return nil
}
