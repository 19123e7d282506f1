package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harrison/monsterxml/internal/config"
	"github.com/harrison/monsterxml/internal/converter"
	"github.com/harrison/monsterxml/internal/display"
	"github.com/harrison/monsterxml/internal/history"
	"github.com/harrison/monsterxml/internal/logger"
	"github.com/spf13/cobra"
)

// NewConvertCommand creates and returns the convert subcommand
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input-root] [output-file]",
		Short: "Convert a tree of monster scripts into a monsters XML file",
		Long: `Scan input-root (default: data/monster) recursively for monster scripts,
extract each monster's name and outfit, and write output-file
(default: monsters.xml).

Monsters are sorted by name. Files without a name, without an outfit
block, or whose outfit has no usable look are listed under skipped_files.

Configuration is loaded from .monsterxml/config.yaml if present.
Positional arguments and flags override configuration values.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConvert,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .monsterxml/config.yaml)")
	cmd.Flags().String("ext", config.DefaultExtension, "Script file extension to scan for (case-sensitive)")
	cmd.Flags().StringSlice("exclude-dir", nil, "Directory name to skip while scanning (repeatable)")
	cmd.Flags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("lock", false, "Hold an exclusive lock on <output>.lock while writing")
	cmd.Flags().Bool("atomic", false, "Write the output to a temp file and rename it into place")
	cmd.Flags().String("report", "", "Write a run report (.md, or .html for rendered HTML)")
	cmd.Flags().String("history-db", "", "Record the run in this SQLite history database (default: .monsterxml/history.db)")
	cmd.Flags().Bool("quiet", false, "Do not print the skipped files warning")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides := config.Overrides{
		Extension:   stringFlag(cmd, "ext"),
		ExcludeDirs: stringSliceFlag(cmd, "exclude-dir"),
		LogLevel:    stringFlag(cmd, "log-level"),
		LogDir:      stringFlag(cmd, "log-dir"),
		Lock:        boolFlag(cmd, "lock"),
		Atomic:      boolFlag(cmd, "atomic"),
		ReportPath:  stringFlag(cmd, "report"),
		HistoryDB:   stringFlag(cmd, "history-db"),
	}
	if len(args) > 0 {
		overrides.InputRoot = &args[0]
	}
	if len(args) > 1 {
		overrides.OutputPath = &args[1]
	}
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runID := uuid.New().String()
	stderr := cmd.ErrOrStderr()

	consoleLog := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	loggers := []logger.Logger{consoleLog}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
	}
	log := logger.NewMultiLogger(loggers...)

	opts := []converter.Option{
		converter.WithLogger(log),
		converter.WithRunID(runID),
	}

	if cfg.History.Enabled {
		if store, err := openHistory(cfg); err != nil {
			// The conversion still runs without history
			log.LogWarn(fmt.Sprintf("history disabled for this run: %v", err))
		} else {
			defer store.Close()
			log.LogDebug(fmt.Sprintf("Recording run history in %s", store.Path()))
			opts = append(opts, converter.WithRecorder(store))
		}
	}

	summary, err := converter.New(cfg, opts...).Run(cmd.Context())
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	if len(summary.Skipped) > 0 && !quiet {
		display.WarnSkippedFiles(summary.Skipped, display.DefaultFileLimit).Display(stderr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "XML file generated successfully: %s\n", cfg.OutputPath)
	return nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(dbPath)
}
