package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/extract"
	"github.com/nao1215/reimage/internal/imaging"
	"github.com/nao1215/reimage/internal/prompt"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <description-file> <output-image>",
		Short: "Reconstruct an image from a structured description",
		Long: `Generate reads a structured description produced by the analyze
command and asks the image model to reconstruct the image it describes.

If the description contains both a JSON block and an SVG block, both
are passed to the model as labeled sections. The output file extension
follows the returned image format; the given path's extension is
replaced if it differs.

Examples:
  # Reconstruct from a JSON description
  reimage generate analysis_json.txt reconstructed.png

  # Reconstruct from a JSON+SVG description
  reimage generate analysis_svg.txt reconstructed.png`,
		Args: cobra.ExactArgs(2),
		RunE: runGenerateCmd,
	}

	cmd.Flags().String("model", "", "Model name for synthesis calls")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each model API call")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reimage.yml in current or home directory)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	descriptionPath, outputPath := args[0], args[1]

	raw, err := os.ReadFile(descriptionPath) //nolint:gosec // User-provided description path is intentional
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}
	description := strings.TrimSpace(string(raw))
	if description == "" {
		return fmt.Errorf("description file %s is empty", descriptionPath)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	client, err := newModelClient(cfg, logger)
	if err != nil {
		return err
	}

	// A description carrying both a JSON and an SVG block gets the
	// combined prompt with labeled sections; anything else goes through
	// the plain synthesis prompt.
	var builder prompt.Builder
	promptText := builder.Synthesis(description)
	if frag := extract.Fragments(description); frag.HasSVG {
		promptText = builder.CombinedSynthesis(description, frag)
	}

	startTime := time.Now()
	data, mimeType, err := client.Synthesize(ctx, promptText)
	elapsed := time.Since(startTime)

	record := newRunRecord(descriptionPath, "generate", err, elapsed)
	saveRunRecord(context.WithoutCancel(ctx), cfg, record, logger)

	if err != nil {
		printModelDiagnostic(context.WithoutCancel(ctx), client, logger)
		return fmt.Errorf("synthesis failed: %w", err)
	}

	if data == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "The model returned no image for this description; nothing was written.")
		return nil
	}

	// Align the file extension with the returned format.
	if ext := imaging.ExtensionForMIME(mimeType); filepath.Ext(outputPath) != ext {
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ext
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("write reconstructed image: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reconstructed image saved to %s (%s, %d bytes, %s)\n",
		outputPath, mimeType, len(data), elapsed.Round(time.Millisecond))

	return nil
}
