package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for monsterxml
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monsterxml",
		Short: "Convert Lua monster scripts into a monsters XML file",
		Long: `monsterxml walks a directory of Lua monster scripts, extracts each
monster's name and outfit, and writes a single XML file listing every
monster sorted by name.

Scripts without a name or a usable outfit are listed under skipped_files.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewConvertCommand())
	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
