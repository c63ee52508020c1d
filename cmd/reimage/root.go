// Package main provides the entry point for the reimage CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/database"
	"github.com/nao1215/reimage/internal/log"
	"github.com/nao1215/reimage/internal/model"
)

// NewRootCmd creates the root command for reimage.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reimage",
		Short: "Describe images with a vision model and reconstruct them",
		Long: `Reimage sends an image to a generative vision model for a structured
description (JSON, optionally with an SVG rendering), reconstructs an
image from that description, and renders side-by-side comparison
reports showing how much of the original survives the round trip.

The GEMINI_API_KEY environment variable must hold a valid API key for
the analyze, generate, and batch commands.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a credential-masking structured logger based on
// verbosity. The secure handler redacts API keys and tokens, so the
// logger is safe even with request-level debug output enabled.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// buildConfig creates a Config from cobra command flags and the
// optional configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	if cmd.Flags().Lookup("model") != nil {
		var modelName string
		modelName, err = cmd.Flags().GetString("model")
		if err != nil {
			return nil, err
		}
		if modelName != "" {
			cfg.TextModel = modelName
			cfg.ImageModel = modelName
		}
	}

	if cmd.Flags().Lookup("timeout") != nil {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Lookup("concurrency") != nil {
		cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Lookup("config") != nil {
		cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load overrides from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently proceed without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	apiKeyEnv := ""
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
		apiKeyEnv = file.APIKeyEnv
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.LoadAPIKey(apiKeyEnv)

	return cfg, nil
}

// saveRunRecord writes one run outcome to the history database.
// History is best effort: a storage failure is logged, never fatal.
func saveRunRecord(ctx context.Context, cfg *config.Config, record *model.RunRecord, logger *slog.Logger) {
	if !cfg.SaveToDB {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveRun(ctx, record); err != nil {
		logger.Warn("failed to save run record", "image", record.Image, "error", err)
	}
}

// newRunRecord builds a run record from an outcome.
func newRunRecord(image, command string, runErr error, elapsed time.Duration) *model.RunRecord {
	record := &model.RunRecord{
		Image:    image,
		Command:  command,
		Status:   model.RunStatusSuccess,
		Duration: elapsed,
	}
	if runErr != nil {
		record.Status = model.RunStatusFailed
		record.Detail = runErr.Error()
	}
	return record
}
