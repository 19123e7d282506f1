package models

import "time"

// Skip reasons recorded for files that produce no monster element
const (
	SkipNoName   = "no name"          // No createMonsterType declaration
	SkipNoOutfit = "no outfit"        // No monster.outfit block
	SkipUnusable = "no usable outfit" // Outfit block fails the inclusion rule
)

// MonsterRecord is a monster extracted from a single script file
type MonsterRecord struct {
	Name       string // Declared monster name
	Outfit     Outfit // Outfit block attributes
	SourcePath string // Script the record was extracted from
}

// SkippedFile is a scanned file that did not produce a monster element
type SkippedFile struct {
	Path   string // File path as discovered by the walk
	Reason string // One of the Skip* constants
}

// Catalog is the aggregated conversion result ready for serialization
type Catalog struct {
	Monsters []MonsterRecord // Included records sorted by name
	Skipped  []SkippedFile   // Skipped files in discovery order
}

// Scanned returns the number of files represented in the catalog
func (c *Catalog) Scanned() int {
	return len(c.Monsters) + len(c.Skipped)
}

// RunSummary describes a completed conversion run
type RunSummary struct {
	RunID      string        // Unique run identifier
	StartedAt  time.Time     // When the run began
	Duration   time.Duration // Total run time
	InputRoot  string        // Scanned directory
	OutputPath string        // Written XML file
	Scanned    int           // Files matched by the walker
	Included   int           // Monster elements written
	Skipped    []SkippedFile // Files listed under skipped_files
}
