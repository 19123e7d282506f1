// Package converter runs the monster conversion pipeline: scan the script
// tree, extract each file, aggregate and project the records, then write the
// XML document. Everything runs sequentially on the calling goroutine.
package converter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/monsterxml/internal/config"
	"github.com/harrison/monsterxml/internal/fileutil"
	"github.com/harrison/monsterxml/internal/logger"
	"github.com/harrison/monsterxml/internal/models"
	"github.com/harrison/monsterxml/internal/parser"
	"github.com/harrison/monsterxml/internal/projection"
	"github.com/harrison/monsterxml/internal/report"
	"github.com/harrison/monsterxml/internal/writer"
)

// progressInterval is how many files are processed between progress lines
const progressInterval = 100

// RunRecorder stores the summary of a finished run
type RunRecorder interface {
	RecordRun(ctx context.Context, summary models.RunSummary) error
}

// Converter converts a tree of monster scripts into the monsters XML file
type Converter struct {
	cfg      *config.Config
	logger   logger.Logger
	recorder RunRecorder
	now      func() time.Time
	newID    func() string
}

// Option configures a Converter
type Option func(*Converter)

// WithLogger sets the logger; the default discards everything
func WithLogger(l logger.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder records each successful run, e.g. in the history database
func WithRecorder(r RunRecorder) Option {
	return func(c *Converter) {
		c.recorder = r
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// WithRunID fixes the run ID instead of generating a UUID
func WithRunID(id string) Option {
	return func(c *Converter) {
		c.newID = func() string { return id }
	}
}

// New creates a Converter for cfg
func New(cfg *config.Config, opts ...Option) *Converter {
	c := &Converter{
		cfg:    cfg,
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect scans the input tree and extracts every matching file in discovery order.
// A file that cannot be read aborts the scan.
func (c *Converter) Collect() ([]*parser.FileResult, error) {
	c.logger.LogInfo(fmt.Sprintf("Scanning %s for *%s files", c.cfg.InputRoot, fileutil.NormalizeExtension(c.cfg.Extension)))

	scan, err := fileutil.ScanDirectory(c.cfg.InputRoot, fileutil.ScanOptions{
		Extensions:  []string{c.cfg.Extension},
		ExcludeDirs: c.cfg.ExcludeDirs,
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.cfg.InputRoot, err)
	}

	total := len(scan.Files)
	c.logger.LogInfo(fmt.Sprintf("Found %d script files", total))

	results := make([]*parser.FileResult, 0, total)
	for i, path := range scan.Files {
		result, err := parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		c.logResult(result)
		results = append(results, result)

		if done := i + 1; done%progressInterval == 0 && done < total {
			c.logger.LogProgress(done, total)
		}
	}
	if total > 0 {
		c.logger.LogProgress(total, total)
	}

	return results, nil
}

func (c *Converter) logResult(result *parser.FileResult) {
	if len(result.Duplicates) > 0 {
		c.logger.LogDebug(fmt.Sprintf("%s: duplicate outfit keys %s, first value kept",
			result.Path, strings.Join(result.Duplicates, ", ")))
	}
	switch {
	case !result.HasName:
		c.logger.LogTrace(fmt.Sprintf("%s: no monster name", result.Path))
	case !result.HasOutfit:
		c.logger.LogTrace(fmt.Sprintf("%s: %q has no outfit block", result.Path, result.Name))
	default:
		c.logger.LogTrace(fmt.Sprintf("%s: %q with %d outfit keys", result.Path, result.Name, result.Outfit.Len()))
	}
}

// Run executes a full conversion and writes the output file.
// Read and write failures abort the run; a failed write may leave a partial
// output file unless atomic writes are enabled.
func (c *Converter) Run(ctx context.Context) (*models.RunSummary, error) {
	started := c.now()
	runID := c.newID()
	c.logger.LogDebug(fmt.Sprintf("Run %s started", runID))

	results, err := c.Collect()
	if err != nil {
		return nil, err
	}

	catalog := projection.Aggregate(results)

	c.logger.LogInfo(fmt.Sprintf("Writing %d monsters to %s", len(catalog.Monsters), c.cfg.OutputPath))
	if err := writer.WriteFile(c.cfg.OutputPath, catalog, writer.Options{
		Lock:   c.cfg.Lock,
		Atomic: c.cfg.Atomic,
	}); err != nil {
		return nil, err
	}

	summary := models.RunSummary{
		RunID:      runID,
		StartedAt:  started,
		Duration:   c.now().Sub(started),
		InputRoot:  c.cfg.InputRoot,
		OutputPath: c.cfg.OutputPath,
		Scanned:    catalog.Scanned(),
		Included:   len(catalog.Monsters),
		Skipped:    catalog.Skipped,
	}
	c.logger.LogSummary(summary)

	if c.cfg.ReportPath != "" {
		if err := report.Write(c.cfg.ReportPath, summary); err != nil {
			return nil, err
		}
		c.logger.LogInfo(fmt.Sprintf("Report written to %s", c.cfg.ReportPath))
	}

	if c.recorder != nil {
		if err := c.recorder.RecordRun(ctx, summary); err != nil {
			// The XML is already written; a history failure does not undo it
			c.logger.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		}
	}

	return &summary, nil
}
