package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Artifact file names within an image's working directory. Each batch
// image gets its own directory, so the names are fixed.
const (
	// JSONTextFile holds the raw JSON-method analysis text.
	JSONTextFile = "analysis_json.txt"

	// SVGTextFile holds the raw JSON+SVG-method analysis text.
	SVGTextFile = "analysis_svg.txt"

	// ReportFile is the per-image comparison report.
	ReportFile = "report.html"
)

// Item carries the working state of one image through the pipeline.
// Each image owns its Item and working directory exclusively; nothing
// is shared across images in a batch.
type Item struct {
	// SourcePath is the original image file.
	SourcePath string

	// Name is the base name of the source image.
	Name string

	// WorkDir is the image's own output directory. All artifacts land here.
	WorkDir string

	// ImageData and MIMEType are loaded once by the first analyze step.
	ImageData []byte
	MIMEType  string

	// JSONText and SVGText are the raw analysis results per method.
	JSONText string
	SVGText  string

	// Artifact paths, populated as steps produce them. An empty path
	// means the artifact was not produced, which downstream steps treat
	// as a normal degraded state.
	JSONTextPath  string
	SVGTextPath   string
	JSONImagePath string
	SVGImagePath  string
	ReportPath    string

	// PerformedSteps lists the steps that ran, for logging and history.
	PerformedSteps []string

	// Err records the failure cause when the item enters the failed state.
	Err error
}

// NewItem creates an Item for a source image with the given working
// directory.
func NewItem(sourcePath, workDir string) *Item {
	return &Item{
		SourcePath: sourcePath,
		Name:       filepath.Base(sourcePath),
		WorkDir:    workDir,
	}
}

// Stem returns the item's file name without extension.
func (it *Item) Stem() string {
	return strings.TrimSuffix(it.Name, filepath.Ext(it.Name))
}

// Step defines one pipeline stage. Steps are executed in sequence, each
// receiving the accumulated item state from previous steps.
//
// A step returns an error only for failures that invalidate the rest of
// the item's pipeline (the item then enters the failed state). Outcomes
// the pipeline can degrade around, like synthesis returning no image,
// are recorded on the item and return nil.
type Step interface {
	// Do executes the step against the item.
	Do(ctx context.Context, item *Item) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of steps for one image.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against the item.
// The first step error puts the item into the failed state: the cause
// is recorded on the item and returned, and remaining steps are skipped
// since each depends on its predecessor's output.
//
// Cancellation is checked between steps rather than during them;
// steps bound their own network calls via the context.
func (p *Pipeline) Execute(ctx context.Context, item *Item) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"image", item.Name,
				"reason", ctx.Err(),
			)
			item.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"image", item.Name,
		)

		if err := step.Do(ctx, item); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"image", item.Name,
				"error", err,
			)

			item.Err = err
			return err
		}

		item.PerformedSteps = append(item.PerformedSteps, step.Name())

		p.logger.Debug("step completed",
			"step", step.Name(),
			"image", item.Name,
		)
	}

	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
