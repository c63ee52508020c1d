package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/reimage/internal/extract"
	"github.com/nao1215/reimage/internal/imaging"
	"github.com/nao1215/reimage/internal/model"
)

// reportTemplate renders the side-by-side comparison document.
// The inline SVG panel uses the pre-validated fragment as template.HTML;
// all other text goes through normal contextual escaping.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Image Reconstruction Report</title>
<style>
body { font-family: sans-serif; margin: 20px; }
.container { display: flex; flex-direction: row; gap: 20px; flex-wrap: wrap; }
.card { border: 1px solid #ccc; padding: 10px; border-radius: 8px; max-width: 400px; width: 100%; }
img { max-width: 100%; height: auto; border: 1px solid #eee; }
pre { background: #f4f4f4; padding: 10px; overflow-x: auto; max-height: 200px; white-space: pre-wrap; word-wrap: break-word; }
table.meta { border-collapse: collapse; font-size: 0.85em; }
table.meta td { border: 1px solid #ddd; padding: 2px 6px; }
</style>
</head>
<body>
<h1>Reconstruction Report</h1>
<div class="container">
<div class="card">
<h2>Original</h2>
<img src="{{.OriginalRef}}" alt="Original">
{{- if .OriginalInfo}}
<p>{{.OriginalInfo.Format}}, {{.OriginalInfo.Width}}&times;{{.OriginalInfo.Height}}</p>
{{- end}}
{{- if .EXIFTags}}
<h3>Metadata</h3>
<table class="meta">
{{- range .EXIFTags}}
<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
</div>
{{- if .JSONImageRef}}
<div class="card">
<h2>JSON Method</h2>
<img src="{{.JSONImageRef}}" alt="JSON Reconstructed">
<h3>Extracted Data</h3>
<pre>{{.JSONDisplay}}</pre>
</div>
{{- end}}
{{- if .SVGImageRef}}
<div class="card">
<h2>JSON + SVG Method</h2>
<img src="{{.SVGImageRef}}" alt="SVG Reconstructed">
<h3>Extracted Data</h3>
<pre>{{.SVGDisplay}}</pre>
</div>
{{- end}}
{{- if .InlineSVG}}
<div class="card">
<h2>SVG Render</h2>
{{.InlineSVG}}
</div>
{{- end}}
</div>
</body>
</html>
`))

// reportData is the template input for one comparison report.
type reportData struct {
	OriginalRef  string
	OriginalInfo *imaging.Info
	EXIFTags     []imaging.EXIFTag
	JSONImageRef string
	JSONDisplay  string
	SVGImageRef  string
	SVGDisplay   string
	InlineSVG    template.HTML
}

// Assembler renders HTML comparison reports from a ReportInput.
type Assembler struct {
	// logger receives warnings for non-fatal degradations.
	logger *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLogger sets a custom logger for the assembler.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Assemble renders one comparison report to outputPath.
//
// Missing or non-existent references are not errors: the corresponding
// panels are omitted and the document reflects whatever was actually
// produced. The original image is copied next to the output document
// when it lives elsewhere, so the report stays self-contained and
// relocatable; a failed copy degrades to referencing the original path.
func (a *Assembler) Assemble(input model.ReportInput, outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	jsonText := readFileSafe(input.JSONText)
	svgText := readFileSafe(input.SVGText)

	jsonDisplay := ""
	if jsonText != "" {
		jsonDisplay, _ = extract.JSON(jsonText)
	}

	// Whenever an SVG fragment exists the panel shows the labeled
	// two-part display; the JSON part may be the raw text when no JSON
	// block was found, since extraction is best effort.
	frag := extract.Fragments(svgText)
	svgDisplay := svgText
	if frag.HasSVG {
		svgDisplay = "JSON:\n" + frag.JSON + "\n\nSVG:\n" + frag.SVG
	}

	data := reportData{
		OriginalRef: a.placeOriginal(input.OriginalImage, outputDir),
		JSONDisplay: jsonDisplay,
		SVGDisplay:  svgDisplay,
	}

	if fileExists(input.JSONImage) {
		data.JSONImageRef = filepath.Base(input.JSONImage)
	}
	if fileExists(input.SVGImage) {
		data.SVGImageRef = filepath.Base(input.SVGImage)
	}

	if frag.HasSVG && ValidSVG(frag.SVG) {
		data.InlineSVG = template.HTML(frag.SVG) //nolint:gosec // Fragment validated by ValidSVG
	}

	// Image metadata is decorative; any probe failure is silent.
	if imgData, err := os.ReadFile(input.OriginalImage); err == nil { //nolint:gosec // User-provided image path
		if info, err := imaging.ProbeBytes(imgData); err == nil {
			data.OriginalInfo = info
		}
		data.EXIFTags = imaging.EXIFTags(imgData)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// placeOriginal ensures the original image sits next to the report and
// returns the reference to embed in the document. When the copy fails,
// the document falls back to referencing the image where it currently
// lives; the report still renders.
func (a *Assembler) placeOriginal(originalPath, outputDir string) string {
	if originalPath == "" {
		return ""
	}

	base := filepath.Base(originalPath)
	if filepath.Clean(filepath.Dir(originalPath)) == filepath.Clean(outputDir) {
		return base
	}

	if err := copyFile(originalPath, filepath.Join(outputDir, base)); err != nil {
		a.logger.Warn("could not copy original image next to report",
			"image", originalPath,
			"error", err,
		)
		return originalPath
	}

	return base
}

// readFileSafe reads a text file, returning empty for absent paths or
// unreadable files. Missing analysis text is a normal degraded state.
func readFileSafe(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-provided artifact path is intentional
	if err != nil {
		return ""
	}
	return string(data)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst) //nolint:gosec // Destination is the report directory
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close() //nolint:errcheck // Best effort cleanup
		return err
	}

	return out.Close()
}
