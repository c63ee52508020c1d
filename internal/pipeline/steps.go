package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/reimage/internal/extract"
	"github.com/nao1215/reimage/internal/genai"
	"github.com/nao1215/reimage/internal/imaging"
	"github.com/nao1215/reimage/internal/model"
	"github.com/nao1215/reimage/internal/prompt"
	"github.com/nao1215/reimage/internal/report"
)

// AnalyzeStep sends the image to the vision model with one method's
// analysis prompt and persists the raw response text.
type AnalyzeStep struct {
	client  *genai.Client
	prompts prompt.Builder
	method  model.Method
}

// NewAnalyzeStep creates an AnalyzeStep for the given method.
func NewAnalyzeStep(client *genai.Client, prompts prompt.Builder, method model.Method) *AnalyzeStep {
	return &AnalyzeStep{
		client:  client,
		prompts: prompts,
		method:  method,
	}
}

// Name returns the step's name for logging purposes.
func (s *AnalyzeStep) Name() string {
	return "analyze_" + s.method.String()
}

// Do performs the analysis call and writes the raw text artifact.
// An analysis failure is fatal for the item: every later step depends
// on having a description to work from.
func (s *AnalyzeStep) Do(ctx context.Context, item *Item) error {
	if item.ImageData == nil {
		data, err := os.ReadFile(item.SourcePath) //nolint:gosec // Enumerated input image path
		if err != nil {
			return fmt.Errorf("read source image: %w", err)
		}
		info, err := imaging.ProbeBytes(data)
		if err != nil {
			return fmt.Errorf("probe source image: %w", err)
		}
		item.ImageData = data
		item.MIMEType = info.MIMEType
	}

	text, err := s.client.Analyze(ctx, item.ImageData, item.MIMEType, s.prompts.Analysis(s.method))
	if err != nil {
		return fmt.Errorf("analyze (%s): %w", s.method, err)
	}

	if err := os.MkdirAll(item.WorkDir, 0750); err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}

	var path string
	switch s.method {
	case model.MethodJSONSVG:
		path = filepath.Join(item.WorkDir, SVGTextFile)
		item.SVGText = text
		item.SVGTextPath = path
	default:
		path = filepath.Join(item.WorkDir, JSONTextFile)
		item.JSONText = text
		item.JSONTextPath = path
	}

	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return fmt.Errorf("write analysis text: %w", err)
	}

	return nil
}

// SynthesizeStep reconstructs an image from one method's analysis text.
type SynthesizeStep struct {
	client  *genai.Client
	prompts prompt.Builder
	method  model.Method
	logger  *slog.Logger
}

// NewSynthesizeStep creates a SynthesizeStep for the given method.
func NewSynthesizeStep(client *genai.Client, prompts prompt.Builder, method model.Method, logger *slog.Logger) *SynthesizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SynthesizeStep{
		client:  client,
		prompts: prompts,
		method:  method,
		logger:  logger,
	}
}

// Name returns the step's name for logging purposes.
func (s *SynthesizeStep) Name() string {
	return "synthesize_" + s.method.String()
}

// Do performs the synthesis call and writes the reconstructed image.
// An API failure is fatal for the item, but the model declining to
// return an image is not: the image path stays empty and the report
// later omits that panel.
func (s *SynthesizeStep) Do(ctx context.Context, item *Item) error {
	var promptText string
	switch s.method {
	case model.MethodJSONSVG:
		if item.SVGText == "" {
			return nil
		}
		promptText = s.prompts.CombinedSynthesis(item.SVGText, extract.Fragments(item.SVGText))
	default:
		if item.JSONText == "" {
			return nil
		}
		promptText = s.prompts.Synthesis(item.JSONText)
	}

	data, mimeType, err := s.client.Synthesize(ctx, promptText)
	if err != nil {
		return fmt.Errorf("synthesize (%s): %w", s.method, err)
	}

	if data == nil {
		s.logger.Info("no image data in synthesis response",
			"image", item.Name,
			"method", s.method,
		)
		return nil
	}

	name := "reconstructed_json" + imaging.ExtensionForMIME(mimeType)
	if s.method == model.MethodJSONSVG {
		name = "reconstructed_svg" + imaging.ExtensionForMIME(mimeType)
	}
	path := filepath.Join(item.WorkDir, name)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write reconstructed image: %w", err)
	}

	if s.method == model.MethodJSONSVG {
		item.SVGImagePath = path
	} else {
		item.JSONImagePath = path
	}

	return nil
}

// ReportStep assembles the item's comparison report from whatever
// artifacts the earlier steps produced.
type ReportStep struct {
	assembler *report.Assembler
}

// NewReportStep creates a ReportStep.
func NewReportStep(assembler *report.Assembler) *ReportStep {
	return &ReportStep{assembler: assembler}
}

// Name returns the step's name for logging purposes.
func (s *ReportStep) Name() string {
	return "report"
}

// Do renders the comparison report. Missing artifacts are handled by
// the assembler's presence rules, so this step only fails when the
// document itself cannot be written.
func (s *ReportStep) Do(_ context.Context, item *Item) error {
	outputPath := filepath.Join(item.WorkDir, ReportFile)

	input := model.ReportInput{
		OriginalImage: item.SourcePath,
		JSONImage:     item.JSONImagePath,
		SVGImage:      item.SVGImagePath,
		JSONText:      item.JSONTextPath,
		SVGText:       item.SVGTextPath,
	}

	if err := s.assembler.Assemble(input, outputPath); err != nil {
		return fmt.Errorf("assemble report: %w", err)
	}

	item.ReportPath = outputPath
	return nil
}
