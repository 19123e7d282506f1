package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/monsterxml/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demonScript = `local mType = Game.createMonsterType("Demon")
local monster = {}

monster.description = "a demon"
monster.experience = 6000
monster.outfit = {
	lookType = 35,
	lookHead = 0,
	lookBody = 0,
	lookLegs = 0,
	lookFeet = 0,
	lookAddons = 0,
	lookMount = 0
}

monster.health = 8200
mType:register(monster)
`

func TestExtractName(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"standard declaration", demonScript, "Demon", true},
		{"no spaces around equals", `local mType=Game.createMonsterType("Rat")`, "Rat", true},
		{"name with spaces and punctuation", `local mType = Game.createMonsterType("Dragon Lord's Hatchling")`, "Dragon Lord's Hatchling", true},
		{"first declaration wins", "local mType = Game.createMonsterType(\"A\")\nlocal mType = Game.createMonsterType(\"B\")", "A", true},
		{"different variable name", `local creature = Game.createMonsterType("Rat")`, "", false},
		{"empty name does not match", `local mType = Game.createMonsterType("")`, "", false},
		{"name cannot span lines", "local mType = Game.createMonsterType(\"Ra\nt\")", "", false},
		{"no declaration", "monster.outfit = { lookType = 21 }", "", false},
		{"unicode space before equals", "local mType\u00a0=\u2003Game.createMonsterType(\"Rat\")", "Rat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractName(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractOutfit(t *testing.T) {
	t.Run("multi-line block", func(t *testing.T) {
		outfit, ok := ExtractOutfit(demonScript)
		require.True(t, ok)
		assert.Equal(t, 7, outfit.Len())
		v, _ := outfit.Get(models.KeyLookType)
		assert.Equal(t, "35", v)
		assert.True(t, outfit.Has("lookMount"))
		assert.Equal(t, []models.OutfitEntry{
			{Key: "lookType", Value: "35"},
			{Key: "lookHead", Value: "0"},
			{Key: "lookBody", Value: "0"},
			{Key: "lookLegs", Value: "0"},
			{Key: "lookFeet", Value: "0"},
			{Key: "lookAddons", Value: "0"},
			{Key: "lookMount", Value: "0"},
		}, outfit.Entries())
	})

	t.Run("single-line block keeps only the first pair", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = { lookType = 21, lookHead = 5 }")
		require.True(t, ok)
		assert.Equal(t, 1, outfit.Len())
		assert.Equal(t, "21", outfit.ValueOr(models.KeyLookType))
		assert.False(t, outfit.Has(models.KeyLookHead))
	})

	t.Run("lookTypeEx item look", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\n\tlookTypeEx = 2160\n}")
		require.True(t, ok)
		assert.Equal(t, "2160", outfit.ValueOr(models.KeyLookTypeEx))
	})

	t.Run("non-numeric values are ignored", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\n\tlookType = abc,\n\tlookHead = 12\n}")
		require.True(t, ok)
		assert.False(t, outfit.Has(models.KeyLookType))
		assert.Equal(t, "12", outfit.ValueOr(models.KeyLookHead))
	})

	t.Run("empty block body does not match", func(t *testing.T) {
		_, ok := ExtractOutfit("monster.outfit = {}")
		assert.False(t, ok)
	})

	t.Run("block without pairs yields empty outfit", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\n}")
		require.True(t, ok)
		assert.Equal(t, 0, outfit.Len())
	})

	t.Run("no block", func(t *testing.T) {
		_, ok := ExtractOutfit(`local mType = Game.createMonsterType("Rat")`)
		assert.False(t, ok)
	})

	t.Run("windows line endings", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\r\n\tlookType = 130,\r\n\tlookHead = 78\r\n}")
		require.True(t, ok)
		assert.Equal(t, "130", outfit.ValueOr(models.KeyLookType))
		assert.Equal(t, "78", outfit.ValueOr(models.KeyLookHead))
	})

	t.Run("duplicate keys keep the first value", func(t *testing.T) {
		result := Parse("dup.lua", "monster.outfit = {\n\tlookType = 1,\n\tlookType = 2\n}")
		require.True(t, result.HasOutfit)
		assert.Equal(t, "1", result.Outfit.ValueOr(models.KeyLookType))
		assert.Equal(t, []string{"lookType"}, result.Duplicates)
	})

	t.Run("unicode decimal digits are numbers", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\n\tlookType = \u0661\u0662,\n\tlookHead = \uff17\n}")
		require.True(t, ok)
		assert.Equal(t, "\u0661\u0662", outfit.ValueOr(models.KeyLookType))
		assert.Equal(t, "\uff17", outfit.ValueOr(models.KeyLookHead))
	})

	t.Run("unicode letters in keys and unicode spaces", func(t *testing.T) {
		outfit, ok := ExtractOutfit("monster.outfit = {\n\tlookFarbe\u00e9\u00a0=\u300012\n}")
		require.True(t, ok)
		assert.Equal(t, "12", outfit.ValueOr("lookFarbe\u00e9"))
	})

	t.Run("unicode line boundaries split entries", func(t *testing.T) {
		for _, sep := range []string{"\v", "\f", "\x1c", "\x1d", "\x1e", "\u0085", "\u2028", "\u2029"} {
			outfit, ok := ExtractOutfit("monster.outfit = { lookType = 21," + sep + "lookHead = 5 }")
			require.True(t, ok)
			assert.Equal(t, "21", outfit.ValueOr(models.KeyLookType), "separator %q", sep)
			assert.Equal(t, "5", outfit.ValueOr(models.KeyLookHead), "separator %q", sep)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		result := Parse("demon.lua", demonScript)
		assert.True(t, result.Complete())
		record, ok := result.Record()
		require.True(t, ok)
		assert.Equal(t, "Demon", record.Name)
		assert.Equal(t, "demon.lua", record.SourcePath)
		assert.Equal(t, "35", record.Outfit.ValueOr(models.KeyLookType))
	})

	t.Run("name without outfit", func(t *testing.T) {
		result := Parse("rat.lua", `local mType = Game.createMonsterType("Rat")`)
		assert.True(t, result.HasName)
		assert.False(t, result.HasOutfit)
		_, ok := result.Record()
		assert.False(t, ok)
	})

	t.Run("outfit without name", func(t *testing.T) {
		result := Parse("anon.lua", "monster.outfit = {\n\tlookType = 21\n}")
		assert.False(t, result.HasName)
		assert.True(t, result.HasOutfit)
		assert.False(t, result.Complete())
	})
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("reads and parses", func(t *testing.T) {
		path := filepath.Join(tmpDir, "demon.lua")
		require.NoError(t, os.WriteFile(path, []byte(demonScript), 0644))

		result, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, result.Path)
		assert.Equal(t, "Demon", result.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(tmpDir, "missing.lua"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		path := filepath.Join(tmpDir, "latin1.lua")
		require.NoError(t, os.WriteFile(path, []byte("local mType = Game.createMonsterType(\"Dr\xe4gon\")"), 0644))

		_, err := ParseFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}
