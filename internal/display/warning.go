package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/monsterxml/internal/models"
)

// DefaultFileLimit caps how many files a skipped-files warning lists
const DefaultFileLimit = 10

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Omitted    int      // Files not listed in Files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files)+w.Omitted == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
		if w.Omitted > 0 {
			fmt.Fprintf(&b, "      ... and %d more\n", w.Omitted)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnSkippedFiles builds the warning shown after a run that skipped files.
// At most limit files are listed; limit <= 0 lists all of them.
func WarnSkippedFiles(skipped []models.SkippedFile, limit int) Warning {
	noun := "files were"
	if len(skipped) == 1 {
		noun = "file was"
	}

	shown := skipped
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	files := make([]string, 0, len(shown))
	for _, s := range shown {
		files = append(files, fmt.Sprintf("%s (%s)", s.Path, s.Reason))
	}

	return Warning{
		Title:      fmt.Sprintf("%d %s skipped", len(skipped), noun),
		Message:    "Skipped files are listed under skipped_files in the output",
		Files:      files,
		Omitted:    len(skipped) - len(shown),
		Suggestion: "Run 'monsterxml inspect <file>' to see what was extracted",
	}
}
