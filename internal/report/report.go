// Package report renders a human-readable summary of a conversion run as
// Markdown, or as HTML through goldmark.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/monsterxml/internal/filelock"
	"github.com/harrison/monsterxml/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format selects the report output format
type Format int

const (
	// FormatMarkdown writes the Markdown source
	FormatMarkdown Format = iota
	// FormatHTML renders the Markdown to an HTML fragment
	FormatHTML
)

// DetectFormat picks the format from the report path extension.
// .html and .htm render HTML; everything else is Markdown.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// Build returns the Markdown report for summary
func Build(summary models.RunSummary) string {
	var b strings.Builder

	b.WriteString("# Monster conversion report\n\n")

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Run | `%s` |\n", summary.RunID)
	fmt.Fprintf(&b, "| Started | %s |\n", summary.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "| Duration | %s |\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "| Input | `%s` |\n", summary.InputRoot)
	fmt.Fprintf(&b, "| Output | `%s` |\n", summary.OutputPath)
	fmt.Fprintf(&b, "| Scanned files | %d |\n", summary.Scanned)
	fmt.Fprintf(&b, "| Monsters | %d |\n", summary.Included)
	fmt.Fprintf(&b, "| Skipped files | %d |\n", len(summary.Skipped))

	b.WriteString("\n## Skipped files\n\n")
	if len(summary.Skipped) == 0 {
		b.WriteString("None.\n")
		return b.String()
	}

	b.WriteString("| # | File | Reason |\n|---|---|---|\n")
	for i, s := range summary.Skipped {
		fmt.Fprintf(&b, "| %d | `%s` | %s |\n", i+1, escapeCell(s.Path), s.Reason)
	}

	return b.String()
}

// escapeCell keeps a value from breaking out of a table cell or code span
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "`", "'")
}

// RenderHTML converts Markdown to HTML using goldmark with table support
func RenderHTML(markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}
	return buf.Bytes(), nil
}

// Render returns the report for summary in the given format
func Render(summary models.RunSummary, format Format) ([]byte, error) {
	markdown := Build(summary)
	if format == FormatHTML {
		return RenderHTML(markdown)
	}
	return []byte(markdown), nil
}

// Write renders the report in the format implied by path and writes it there
func Write(path string, summary models.RunSummary) error {
	data, err := Render(summary, DetectFormat(path))
	if err != nil {
		return err
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
