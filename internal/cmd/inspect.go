package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/monsterxml/internal/parser"
	"github.com/harrison/monsterxml/internal/projection"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates and returns the inspect subcommand
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <script-file>...",
		Short: "Show what would be extracted from monster scripts",
		Long: `Extract the name and outfit from each script file and print the
attributes its monster element would carry, or the reason the file would be
skipped. Nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectFiles(args, cmd.OutOrStdout())
		},
	}

	return cmd
}

// inspectFiles prints one block per file; unreadable files abort
func inspectFiles(paths []string, out io.Writer) error {
	for i, path := range paths {
		result, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeInspection(out, result)
	}
	return nil
}

func writeInspection(out io.Writer, result *parser.FileResult) {
	fmt.Fprintln(out, color.New(color.Bold).Sprint(result.Path))

	if result.HasName {
		fmt.Fprintf(out, "  name:    %s\n", result.Name)
	} else {
		fmt.Fprintf(out, "  name:    (none)\n")
	}

	if result.HasOutfit {
		pairs := make([]string, 0, result.Outfit.Len())
		for _, e := range result.Outfit.Entries() {
			pairs = append(pairs, e.Key+"="+e.Value)
		}
		fmt.Fprintf(out, "  outfit:  %s\n", strings.Join(pairs, ", "))
	} else {
		fmt.Fprintf(out, "  outfit:  (none)\n")
	}

	if len(result.Duplicates) > 0 {
		fmt.Fprintf(out, "  ignored: duplicate %s\n", strings.Join(result.Duplicates, ", "))
	}

	record, reason, ok := projection.Classify(result)
	if !ok {
		fmt.Fprintf(out, "  result:  %s\n", color.YellowString("skipped (%s)", reason))
		return
	}

	attrs := projection.Attributes(record)
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%q", a.Name, a.Value))
	}
	fmt.Fprintf(out, "  result:  %s\n", color.GreenString("<monster %s>", strings.Join(parts, " ")))
}
