// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders delivered items into a human-readable artifact:
// a styled HTML page, a paginated PDF document, Markdown, YAML, or JSON.
// Every format carries each item's title, authors, publication date, link,
// and abstract.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultTitle heads a report when none is configured.
const DefaultTitle = "Recent Papers Report"

// ErrUnknownFormat reports a format New does not recognize.
var ErrUnknownFormat = errors.New("unknown report format")

// Report is the input to every renderer.
type Report struct {
	Title       string       `json:"title" yaml:"title"`
	Keyword     string       `json:"keyword" yaml:"keyword"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Requested   int          `json:"requested" yaml:"requested"`
	Items       []types.Item `json:"items" yaml:"items"`
}

// heading returns the title, falling back to DefaultTitle.
func (r Report) heading() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// Renderer writes a Report in one format.
type Renderer interface {
	Render(w io.Writer, rep Report) error

	// Extension is the file extension without the dot.
	Extension() string
}

// New returns the renderer for format. An empty format selects HTML.
func New(format types.ReportFormat) (Renderer, error) {
	switch format {
	case types.ReportHTML, "":
		return htmlRenderer{}, nil
	case types.ReportPDF:
		return pdfRenderer{}, nil
	case types.ReportMarkdown:
		return markdownRenderer{}, nil
	case types.ReportYAML:
		return yamlRenderer{}, nil
	case types.ReportJSON:
		return jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want html, pdf, markdown, yaml, or json)", ErrUnknownFormat, format)
	}
}

// DefaultPath returns "papers.<ext>" for r.
func DefaultPath(r Renderer) string {
	return "papers." + r.Extension()
}

// WriteFile renders rep to a temporary file beside path and renames it into
// place, so a failed render never leaves a partial report.
func WriteFile(path string, r Renderer, rep Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	renderErr := r.Render(tmpFile, rep)
	closeErr := tmpFile.Close()
	if renderErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rendering %s report: %w", r.Extension(), renderErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting report permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// TimestampedPath inserts a UTC timestamp before the extension of path
// ("papers.html" -> "papers-20230110T143000Z.html").
func TimestampedPath(path string, t time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "-" + t.UTC().Format("20060102T150405Z") + ext
}

func joinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}
