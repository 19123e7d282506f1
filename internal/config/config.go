package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default locations used when neither the config file nor flags set them
const (
	DefaultInputRoot  = "data/monster"
	DefaultOutputPath = "monsters.xml"
	DefaultExtension  = ".lua"
)

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every successful run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database.
	// Empty means history.db in the monsterxml home directory.
	DBPath string `yaml:"db_path"`
}

// Config represents monsterxml configuration options
type Config struct {
	// InputRoot is the directory scanned for monster scripts
	InputRoot string `yaml:"input_root"`

	// OutputPath is the XML file written by a run
	OutputPath string `yaml:"output_path"`

	// Extension selects which files are scanned (e.g. ".lua")
	Extension string `yaml:"extension"`

	// ExcludeDirs lists directory names skipped during the walk
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = no run log)
	LogDir string `yaml:"log_dir"`

	// Lock holds an advisory lock on <output>.lock while writing
	Lock bool `yaml:"lock"`

	// Atomic writes the output through a temp file and rename
	Atomic bool `yaml:"atomic"`

	// ReportPath is where a run report is written (.md or .html; empty = none)
	ReportPath string `yaml:"report_path"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		InputRoot:  DefaultInputRoot,
		OutputPath: DefaultOutputPath,
		Extension:  DefaultExtension,
		LogLevel:   "info",
		LogDir:     "",
		Lock:       false,
		Atomic:     false,
		History: HistoryConfig{
			Enabled: false,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
// Keys present in the file override the defaults, including explicit false and empty values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Presence map so explicit zero values still override defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	has := func(key string) bool {
		_, ok := rawMap[key]
		return ok
	}

	if has("input_root") {
		cfg.InputRoot = fileCfg.InputRoot
	}
	if has("output_path") {
		cfg.OutputPath = fileCfg.OutputPath
	}
	if has("extension") {
		cfg.Extension = fileCfg.Extension
	}
	if has("exclude_dirs") {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if has("log_level") {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if has("log_dir") {
		cfg.LogDir = fileCfg.LogDir
	}
	if has("lock") {
		cfg.Lock = fileCfg.Lock
	}
	if has("atomic") {
		cfg.Atomic = fileCfg.Atomic
	}
	if has("report_path") {
		cfg.ReportPath = fileCfg.ReportPath
	}

	if historySection, exists := rawMap["history"]; exists && historySection != nil {
		historyMap, _ := historySection.(map[string]interface{})
		if _, exists := historyMap["enabled"]; exists {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if _, exists := historyMap["db_path"]; exists {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
	}

	return cfg, nil
}

// Overrides carries CLI flag values; nil fields leave the configuration untouched
type Overrides struct {
	InputRoot   *string
	OutputPath  *string
	Extension   *string
	ExcludeDirs *[]string
	LogLevel    *string
	LogDir      *string
	Lock        *bool
	Atomic      *bool
	ReportPath  *string
	HistoryDB   *string
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
// Setting a history database path also enables history.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.InputRoot != nil {
		c.InputRoot = *o.InputRoot
	}
	if o.OutputPath != nil {
		c.OutputPath = *o.OutputPath
	}
	if o.Extension != nil {
		c.Extension = *o.Extension
	}
	if o.ExcludeDirs != nil {
		c.ExcludeDirs = *o.ExcludeDirs
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.Lock != nil {
		c.Lock = *o.Lock
	}
	if o.Atomic != nil {
		c.Atomic = *o.Atomic
	}
	if o.ReportPath != nil {
		c.ReportPath = *o.ReportPath
	}
	if o.HistoryDB != nil {
		c.History.DBPath = *o.HistoryDB
		c.History.Enabled = *o.HistoryDB != ""
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputRoot) == "" {
		return fmt.Errorf("input_root cannot be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if ext := strings.TrimSpace(c.Extension); ext == "" || ext == "." {
		return fmt.Errorf("extension cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.ReportPath != "" && filepath.Clean(c.ReportPath) == filepath.Clean(c.OutputPath) {
		return fmt.Errorf("report_path must differ from output_path")
	}

	return nil
}

// HistoryDBPath returns history.db_path when set, otherwise history.db in the
// monsterxml home directory
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	return GetHistoryDBPath()
}
