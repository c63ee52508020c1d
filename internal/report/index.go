package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/reimage/internal/model"
)

// indexTemplate renders the batch index page listing one link per
// successfully processed image, in input enumeration order.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Batch Reconstruction Index</title>
<style>
body { font-family: sans-serif; margin: 20px; }
ul { line-height: 1.8; }
</style>
</head>
<body>
<h1>Batch Reconstruction Index</h1>
{{- if .Entries}}
<ul>
{{- range .Entries}}
<li><a href="{{.Report}}">{{.Title}}</a> <code>{{.Image}}</code></li>
{{- end}}
</ul>
{{- else}}
<p>No images were processed successfully.</p>
{{- end}}
</body>
</html>
`))

// titleCaser converts file stems into display titles. English casing is
// fine here: the input is file names, not prose.
var titleCaser = cases.Title(language.English)

// DisplayTitle derives a human-readable title from an image file name:
// the extension is dropped and separator characters become spaces, so
// "sunset_beach.png" renders as "Sunset Beach".
func DisplayTitle(imageName string) string {
	stem := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	stem = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(stem)
	return titleCaser.String(stem)
}

// WriteIndex renders the batch index document to outputPath.
// Entries appear in the given order, which the batch orchestrator
// guarantees to be the input directory's enumeration order.
func WriteIndex(entries []model.ManifestEntry, outputPath string) error {
	type indexEntry struct {
		Title  string
		Image  string
		Report string
	}

	data := struct {
		Entries []indexEntry
	}{}
	for _, e := range entries {
		data.Entries = append(data.Entries, indexEntry{
			Title:  DisplayTitle(e.Image),
			Image:  e.Image,
			Report: e.Report,
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

// WriteSummary renders a Markdown summary of a batch run to outputPath:
// a table of successful images with report links, and a section listing
// failed images with their causes.
func WriteSummary(results []model.ItemResult, outputPath string) error {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Batch Reconstruction Summary")
	md.PlainText("")

	succeeded := make([][]string, 0, len(results))
	failed := make([][]string, 0)
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, []string{r.Image, r.Err.Error()})
			continue
		}
		if r.Entry != nil {
			succeeded = append(succeeded, []string{
				DisplayTitle(r.Image),
				fmt.Sprintf("[%s](%s)", r.Image, r.Entry.Report),
			})
		}
	}

	md.H2("Processed Images")
	md.PlainText("")
	if len(succeeded) == 0 {
		md.PlainText("No images were processed successfully.")
	} else {
		md.Table(markdown.TableSet{
			Header: []string{"Title", "Report"},
			Rows:   succeeded,
		})
	}
	md.PlainText("")

	if len(failed) > 0 {
		md.H2("Failed Images")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Image", "Cause"},
			Rows:   failed,
		})
		md.PlainText("")
		md.Warningf("%d of %d image(s) failed and were excluded from the index.",
			len(failed), len(results))
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
