package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "llmockapi",
	Short: "llmockapi - LLM-backed mock API server",
	Long: `llmockapi serves a mock of any API described by a specification document.

Every inbound request is transcribed into a conversation turn and sent with
the full conversation history to an LLM chat-completion endpoint; the model's
reply is parsed back into an HTTP status, headers and body and returned to
the caller. Diagnostic routes live under /__internal.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
