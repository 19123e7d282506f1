package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when the scan root exists but is not a directory
var ErrNotDirectory = errors.New("path is not a directory")

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions lists the file name suffixes to include (e.g., ".lua").
	// Matching is exact and case-sensitive; an empty list includes every file.
	Extensions []string
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git")
	ExcludeDirs []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the matched paths in discovery order
	Files []string
}

// ScanDirectory walks dir recursively, depth-first, and returns the files matching opts.
// Files are reported in the order the walk discovers them (lexical within a directory).
// Any error reading the tree aborts the scan.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	extensions := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if ext = NormalizeExtension(ext); ext != "" {
			extensions = append(extensions, ext)
		}
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	result := &ScanResult{
		Files: make([]string, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if len(extensions) > 0 && !hasExtension(d.Name(), extensions) {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// hasExtension reports whether filename ends in one of extensions, byte for byte
func hasExtension(filename string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// NormalizeExtension trims ext and makes sure it starts with a dot.
// Case is preserved: ".LUA" and ".lua" are different extensions.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
