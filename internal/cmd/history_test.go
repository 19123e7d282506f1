package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/monsterxml/internal/history"
	"github.com/harrison/monsterxml/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, dbPath string) {
	t.Helper()
	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(context.Background(), models.RunSummary{
		RunID: "11111111-aaaa", StartedAt: base, Duration: time.Second,
		InputRoot: "data/monster", OutputPath: "first.xml", Scanned: 2, Included: 2,
	}))
	require.NoError(t, store.RecordRun(context.Background(), models.RunSummary{
		RunID: "22222222-bbbb", StartedAt: base.Add(time.Hour), Duration: 2 * time.Second,
		InputRoot: "data/monster", OutputPath: "second.xml", Scanned: 3, Included: 2,
		Skipped: []models.SkippedFile{{Path: "data/monster/ghost.lua", Reason: models.SkipNoOutfit}},
	}))
}

func TestHistoryCommand_List(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "history.db")
	seedHistory(t, dbPath)

	stdout, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Recorded runs:")
	assert.Contains(t, stdout, "22222222")
	assert.Contains(t, stdout, "11111111")
	assert.Less(t, strings.Index(stdout, "second.xml"), strings.Index(stdout, "first.xml"), "newest run first")

	stdout, _, err = execute(t, "history", "--db", dbPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "second.xml")
	assert.NotContains(t, stdout, "first.xml")
}

func TestHistoryCommand_ShowRun(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "history.db")
	seedHistory(t, dbPath)

	stdout, _, err := execute(t, "history", "--db", dbPath, "2222")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run 22222222-bbbb\n")
	assert.Contains(t, stdout, "  Skipped:  1\n")
	assert.Contains(t, stdout, "    1. data/monster/ghost.lua (no outfit)\n")

	_, _, err = execute(t, "history", "--db", dbPath, "9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no run matches "9999"`)
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "none.db")

	stdout, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded yet.")
	assert.NoFileExists(t, dbPath)
}

func TestHistoryCommand_ConfigDatabase(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "configured.db")
	seedHistory(t, dbPath)

	cfgPath := filepath.Join(dir, "c.yaml")
	writeScript(t, cfgPath, "history:\n  db_path: "+dbPath+"\n")

	stdout, _, err := execute(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "second.xml")
}

func TestHistoryCommand_InvalidLimit(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "history.db")
	seedHistory(t, dbPath)

	_, _, err := execute(t, "history", "--db", dbPath, "--limit", "-1")
	require.Error(t, err)
}
