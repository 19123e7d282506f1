package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/monsterxml/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'monsterxml history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded conversion runs",
		Long: `List conversion runs recorded in the history database, newest first.

With a run ID (or a unique prefix of one), show that run and the files it
skipped.

The database is taken from --db, from history.db_path in the config, or
is history.db in the .monsterxml home directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .monsterxml/config.yaml)")
	cmd.Flags().String("db", "", "Path to the history database")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dbPath, err = cfg.HistoryDBPath(); err != nil {
			return fmt.Errorf("failed to locate history database: %w", err)
		}
	}

	// Opening would create an empty database
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return showRun(cmd, store, args[0], output)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		return nil
	}

	writeRunTable(output, runs)
	return nil
}

func writeRunTable(output io.Writer, runs []history.Run) {
	bold := color.New(color.Bold)
	bold.Fprintln(output, "Recorded runs:")

	tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tSCANNED\tMONSTERS\tSKIPPED\tOUTPUT")
	for _, r := range runs {
		skipped := fmt.Sprintf("%d", r.Skipped)
		if r.Skipped > 0 {
			skipped = color.YellowString("%d", r.Skipped)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			shortRunID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Millisecond),
			r.Scanned,
			r.Included,
			skipped,
			r.OutputPath,
		)
	}
	tw.Flush()
}

func showRun(cmd *cobra.Command, store *history.Store, idOrPrefix string, output io.Writer) error {
	run, err := store.GetRun(cmd.Context(), idOrPrefix)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no run matches %q", idOrPrefix)
	}
	if err != nil {
		return err
	}

	skipped, err := store.GetSkippedFiles(cmd.Context(), run.ID)
	if err != nil {
		return fmt.Errorf("get skipped files: %w", err)
	}

	color.New(color.Bold).Fprintf(output, "Run %s\n", run.ID)
	fmt.Fprintf(output, "  Started:  %s\n", run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(output, "  Duration: %s\n", run.Duration.Round(time.Millisecond))
	fmt.Fprintf(output, "  Input:    %s\n", run.InputRoot)
	fmt.Fprintf(output, "  Output:   %s\n", run.OutputPath)
	fmt.Fprintf(output, "  Scanned:  %d\n", run.Scanned)
	fmt.Fprintf(output, "  Monsters: %d\n", run.Included)
	fmt.Fprintf(output, "  Skipped:  %d\n", run.Skipped)

	for i, s := range skipped {
		fmt.Fprintf(output, "    %d. %s (%s)\n", i+1, s.Path, s.Reason)
	}
	return nil
}

// shortRunID returns the first block of a UUID
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
