package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/genai"
	"github.com/nao1215/reimage/internal/imaging"
	"github.com/nao1215/reimage/internal/model"
	"github.com/nao1215/reimage/internal/prompt"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Describe an image as structured data using a vision model",
		Long: `Analyze sends an image to the vision model and saves the returned
structured description as a text file.

Two description methods are available:
  json      JSON structured data only
  json_svg  JSON structured data plus an SVG rendering

Examples:
  # Describe an image as JSON
  reimage analyze photo.png

  # Describe an image as JSON plus SVG
  reimage analyze --method json_svg photo.png

  # Choose the output file and model
  reimage analyze --output-text description.txt --model gemini-2.0-flash photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("method", "m", model.MethodJSON.String(),
		"Description method: json or json_svg")
	cmd.Flags().StringP("output-text", "o", "",
		"Output text file (default: analysis_<method>.txt)")
	cmd.Flags().String("model", "", "Model name for analysis calls")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each model API call")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reimage.yml in current or home directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	methodFlag, err := cmd.Flags().GetString("method")
	if err != nil {
		return err
	}
	method, err := model.ParseMethod(methodFlag)
	if err != nil {
		return err
	}

	outputPath, err := cmd.Flags().GetString("output-text")
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = fmt.Sprintf("analysis_%s.txt", method)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	client, err := newModelClient(cfg, logger)
	if err != nil {
		return err
	}

	imagePath := args[0]
	data, err := os.ReadFile(imagePath) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	info, err := imaging.ProbeBytes(data)
	if err != nil {
		return fmt.Errorf("unsupported image %s: %w", imagePath, err)
	}

	builder := prompt.Builder{
		JSONPrompt:    cfg.JSONPrompt,
		JSONSVGPrompt: cfg.JSONSVGPrompt,
	}

	startTime := time.Now()
	text, err := client.Analyze(ctx, data, info.MIMEType, builder.Analysis(method))
	elapsed := time.Since(startTime)

	record := newRunRecord(imagePath, "analyze", err, elapsed)
	saveRunRecord(context.WithoutCancel(ctx), cfg, record, logger)

	if err != nil {
		printModelDiagnostic(context.WithoutCancel(ctx), client, logger)
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(text), 0600); err != nil {
		return fmt.Errorf("write analysis text: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Analysis saved to %s (%s, %d chars, %s)\n",
		outputPath, method, len(text), elapsed.Round(time.Millisecond))

	return nil
}

// newModelClient builds the API client from the configuration.
// GEMINI_BASE_URL redirects requests to a different endpoint, which
// covers proxies and local test servers.
func newModelClient(cfg *config.Config, logger *slog.Logger) (*genai.Client, error) {
	opts := []genai.Option{
		genai.WithTextModel(cfg.TextModel),
		genai.WithImageModel(cfg.ImageModel),
		genai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		genai.WithLogger(logger),
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		opts = append(opts, genai.WithBaseURL(baseURL))
	}
	return genai.NewClient(cfg.APIKey, opts...)
}

// printModelDiagnostic lists the models available to the credential.
// A failed call is often a wrong model name, so the list points the user
// at valid alternatives.
func printModelDiagnostic(ctx context.Context, client *genai.Client, logger *slog.Logger) {
	names, err := client.ListModels(ctx)
	if err != nil {
		logger.Debug("model list diagnostic failed", "error", err)
		return
	}

	fmt.Fprintln(os.Stderr, "Models available to this API key:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
}
