// Package projection decides which extracted monsters are emitted and maps
// each one onto the attribute set of its XML element.
package projection

import (
	"sort"

	"github.com/harrison/monsterxml/internal/models"
	"github.com/harrison/monsterxml/internal/parser"
)

// XML attribute names of a monster element
const (
	AttrName       = "name"
	AttrLookItem   = "lookitem"
	AttrLookType   = "looktype"
	AttrLookHead   = "lookhead"
	AttrLookBody   = "lookbody"
	AttrLookLegs   = "looklegs"
	AttrLookFeet   = "lookfeet"
	AttrLookAddons = "lookaddons"
)

// Attr is a single attribute of a monster element
type Attr struct {
	Name  string
	Value string
}

// bodyPartAttrs maps body part outfit keys to attribute names in emission order
var bodyPartAttrs = []struct {
	key  string
	attr string
}{
	{models.KeyLookHead, AttrLookHead},
	{models.KeyLookBody, AttrLookBody},
	{models.KeyLookLegs, AttrLookLegs},
	{models.KeyLookFeet, AttrLookFeet},
	{models.KeyLookAddons, AttrLookAddons},
}

// hasItemLook reports whether the outfit is an item look (lookTypeEx set)
func hasItemLook(outfit models.Outfit) bool {
	return outfit.IsNonZero(models.KeyLookTypeEx)
}

// hasBodyParts reports whether any body part key is set to a non-zero value
func hasBodyParts(outfit models.Outfit) bool {
	for _, key := range models.BodyPartKeys {
		if outfit.IsNonZero(key) {
			return true
		}
	}
	return false
}

// Include reports whether an outfit yields a monster element
func Include(outfit models.Outfit) bool {
	return hasItemLook(outfit) || hasBodyParts(outfit) || outfit.Has(models.KeyLookType)
}

// Attributes returns the ordered attribute set of the monster element for record.
// lookTypeEx wins over everything else; otherwise body parts are emitted
// alongside looktype with zero parts dropped; looktype itself is never dropped.
func Attributes(record models.MonsterRecord) []Attr {
	outfit := record.Outfit
	attrs := []Attr{{Name: AttrName, Value: record.Name}}

	switch {
	case hasItemLook(outfit):
		v, _ := outfit.Get(models.KeyLookTypeEx)
		attrs = append(attrs, Attr{Name: AttrLookItem, Value: v})
	case hasBodyParts(outfit):
		attrs = append(attrs, Attr{Name: AttrLookType, Value: outfit.ValueOr(models.KeyLookType)})
		for _, part := range bodyPartAttrs {
			if v := outfit.ValueOr(part.key); v != models.ZeroValue {
				attrs = append(attrs, Attr{Name: part.attr, Value: v})
			}
		}
	default:
		if v, ok := outfit.Get(models.KeyLookType); ok {
			attrs = append(attrs, Attr{Name: AttrLookType, Value: v})
		}
	}

	return attrs
}

// Classify returns the record for a file result, or the reason it is skipped.
// The name is checked before the outfit block.
func Classify(result *parser.FileResult) (models.MonsterRecord, string, bool) {
	switch {
	case !result.HasName:
		return models.MonsterRecord{}, models.SkipNoName, false
	case !result.HasOutfit:
		return models.MonsterRecord{}, models.SkipNoOutfit, false
	case !Include(result.Outfit):
		return models.MonsterRecord{}, models.SkipUnusable, false
	}
	record, _ := result.Record()
	return record, "", true
}

// Aggregate splits file results into included monsters and skipped files.
// Monsters are sorted by name (byte order, ties keep discovery order);
// skipped files keep discovery order.
func Aggregate(results []*parser.FileResult) *models.Catalog {
	catalog := &models.Catalog{
		Monsters: make([]models.MonsterRecord, 0, len(results)),
		Skipped:  make([]models.SkippedFile, 0),
	}

	for _, result := range results {
		record, reason, ok := Classify(result)
		if !ok {
			catalog.Skipped = append(catalog.Skipped, models.SkippedFile{Path: result.Path, Reason: reason})
			continue
		}
		catalog.Monsters = append(catalog.Monsters, record)
	}

	sort.SliceStable(catalog.Monsters, func(i, j int) bool {
		return catalog.Monsters[i].Name < catalog.Monsters[j].Name
	})

	return catalog
}
