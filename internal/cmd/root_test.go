package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/harrison/monsterxml/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory with its own home
// directory and without color
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevWD, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatalf("failed to get working dir: %v", wdErr)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	t.Setenv(config.HomeEnvVar, filepath.Join(dir, config.HomeDirName))

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	return dir
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const amazonScript = `local mType = Game.createMonsterType("Amazon")
local monster = {}

monster.outfit = {
	lookType = 137,
	lookHead = 113,
	lookBody = 120,
	lookLegs = 114,
	lookFeet = 132,
	lookAddons = 0
}
`

const ghostScript = `local mType = Game.createMonsterType("Ghost")
local monster = {}
monster.health = 100
`

func TestRootCommand(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "monsterxml")
	assert.Contains(t, stdout, "convert")
	assert.Contains(t, stdout, "inspect")
	assert.Contains(t, stdout, "history")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "monsterxml", root.Use)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"convert", "inspect", "history"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
}
