// Package parser extracts monster declarations from game-content scripts.
//
// Extraction is pattern based: the script is never parsed as Lua. Two
// independent lookups run against the full file text, one for the
// createMonsterType name and one for the monster.outfit block.
package parser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/harrison/monsterxml/internal/models"
)

// ErrInvalidEncoding is returned for script files that are not valid UTF-8
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Character classes are Unicode-aware: digits are any decimal digit (Nd),
// word characters any letter or number plus underscore, and whitespace
// includes the Unicode separators. Lines end at any Unicode line boundary.
const (
	space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`
	word  = `[\p{L}\p{N}_]`
	digit = `\p{Nd}`
)

var (
	nameRegex        = regexp.MustCompile(`local mType` + space + `*=` + space + `*Game\.createMonsterType\("(.+?)"\)`)
	outfitBlockRegex = regexp.MustCompile(`monster\.outfit` + space + `*=` + space + `*\{([^}]+)\}`)
	outfitEntryRegex = regexp.MustCompile(`(` + word + `+)` + space + `*=` + space + `*(` + digit + `+)`)
	lineBreakRegex   = regexp.MustCompile(`\r\n|[\n\r\v\f\x{1c}\x{1d}\x{1e}\x{85}\x{2028}\x{2029}]`)
)

// FileResult holds what was extracted from one script
type FileResult struct {
	Path      string
	Name      string
	HasName   bool
	Outfit    models.Outfit
	HasOutfit bool
	// Duplicates lists outfit keys that appeared more than once; only the
	// first value of each was kept.
	Duplicates []string
}

// Complete reports whether both a name and an outfit block were found
func (r *FileResult) Complete() bool {
	return r.HasName && r.HasOutfit
}

// Record converts a complete result into a MonsterRecord
func (r *FileResult) Record() (models.MonsterRecord, bool) {
	if !r.Complete() {
		return models.MonsterRecord{}, false
	}
	return models.MonsterRecord{
		Name:       r.Name,
		Outfit:     r.Outfit,
		SourcePath: r.Path,
	}, true
}

// ExtractName returns the first name passed to Game.createMonsterType
func ExtractName(text string) (string, bool) {
	match := nameRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractOutfit collects the key = number lines of the first monster.outfit block.
// Each line contributes at most its first key = number pair.
// Duplicate keys keep their first value.
func ExtractOutfit(text string) (models.Outfit, bool) {
	outfit, _, ok := extractOutfit(text)
	return outfit, ok
}

func extractOutfit(text string) (models.Outfit, []string, bool) {
	match := outfitBlockRegex.FindStringSubmatch(text)
	if match == nil {
		return models.Outfit{}, nil, false
	}

	outfit := models.NewOutfit()
	var duplicates []string
	for _, line := range lineBreakRegex.Split(match[1], -1) {
		kv := outfitEntryRegex.FindStringSubmatch(line)
		if kv == nil {
			continue
		}
		if !outfit.Add(kv[1], kv[2]) {
			duplicates = append(duplicates, kv[1])
		}
	}
	return outfit, duplicates, true
}

// Parse runs both extractions against text read from path
func Parse(path, text string) *FileResult {
	result := &FileResult{Path: path}
	result.Name, result.HasName = ExtractName(text)
	result.Outfit, result.Duplicates, result.HasOutfit = extractOutfit(text)
	return result
}

// ParseFile reads the script at path and extracts its monster declaration.
// Read failures and invalid UTF-8 are returned as errors; missing
// declarations are not errors and are reported through the result.
func ParseFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode %s: %w", path, ErrInvalidEncoding)
	}
	return Parse(path, string(data)), nil
}
