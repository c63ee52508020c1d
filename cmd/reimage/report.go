package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/model"
	"github.com/nao1215/reimage/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a comparison report from existing artifacts",
		Long: `Report assembles a side-by-side HTML comparison from artifacts that
already exist on disk: the original image, reconstructed images, and
the description texts. Panels for missing artifacts are omitted rather
than rendered empty.

This command is fully local and needs no API key.

Examples:
  # Original plus one reconstruction
  reimage report --original photo.png --json-img reconstructed_json.png

  # Full comparison with both methods and their descriptions
  reimage report --original photo.png \
    --json-img reconstructed_json.png --json-text analysis_json.txt \
    --svg-img reconstructed_svg.png --svg-text analysis_svg.txt \
    --output report.html`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().String("original", "", "Path to the original image (required)")
	cmd.Flags().String("json-img", "", "Path to the JSON-method reconstructed image")
	cmd.Flags().String("svg-img", "", "Path to the JSON+SVG-method reconstructed image")
	cmd.Flags().String("json-text", "", "Path to the JSON-method description text")
	cmd.Flags().String("svg-text", "", "Path to the JSON+SVG-method description text")
	cmd.Flags().StringP("output", "o", config.DefaultReportFile, "Output HTML file path")
	_ = cmd.MarkFlagRequired("original") //nolint:errcheck // Flag is registered above

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	var input model.ReportInput
	var outputPath string
	for _, bind := range []struct {
		name string
		dst  *string
	}{
		{"original", &input.OriginalImage},
		{"json-img", &input.JSONImage},
		{"svg-img", &input.SVGImage},
		{"json-text", &input.JSONText},
		{"svg-text", &input.SVGText},
		{"output", &outputPath},
	} {
		value, err := cmd.Flags().GetString(bind.name)
		if err != nil {
			return err
		}
		*bind.dst = value
	}

	assembler := report.NewAssembler(report.WithLogger(logger))
	if err := assembler.Assemble(input, outputPath); err != nil {
		return fmt.Errorf("assemble report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", outputPath)
	return nil
}
