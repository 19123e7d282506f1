package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/monsterxml/internal/models"
)

// colorScheme defines consistent colors for summary counts.
// Green: monsters written
// Yellow: skipped files
// Cyan: labels
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedCounts formats the scanned/monsters/skipped counts of a run.
// Format: "scanned: N, monsters: N, skipped: N"
// The skipped count turns yellow when any file was skipped.
func formatColorizedCounts(summary models.RunSummary, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("scanned", summary.Scanned, scheme),
		fmt.Sprintf("%s: %s", scheme.success.Sprint("monsters"), scheme.value.Sprintf("%d", summary.Included)),
	}

	skipped := len(summary.Skipped)
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("skipped"), scheme.warn.Sprintf("%d", skipped)))
	} else {
		parts = append(parts, formatColorizedMetric("skipped", skipped, scheme))
	}

	return strings.Join(parts, ", ")
}
