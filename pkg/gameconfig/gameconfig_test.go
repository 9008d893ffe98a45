package gameconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduplay/pkg/progression"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game: organs
categories: [BASIC, NORMAL, HARD, ADVANCED, EXPERT]
levelsPerCategory: 15
levelOnePolicy: bootstrap_once
defaultUnlocked: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "organs", cfg.Game)
	assert.Len(t, cfg.Categories, 5)
	assert.Equal(t, 15, cfg.LevelsPerCategory)
	assert.Equal(t, progression.LevelOneBootstrapOnce, cfg.LevelOnePolicy)
	assert.Equal(t, 0, cfg.DefaultUnlocked)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeConfig(t, "game: quiz\nlevelOnePolicy: sometimes\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsEmptyGame(t *testing.T) {
	path := writeConfig(t, "levelsPerCategory: 15\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault("no/such/file.yaml", "quiz")
	assert.Equal(t, "quiz", cfg.Game)
	assert.Equal(t, progression.DefaultCategories, cfg.Categories)
	assert.Equal(t, 1, cfg.DefaultUnlocked)
}
