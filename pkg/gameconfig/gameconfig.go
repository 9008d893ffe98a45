// Package gameconfig загружает YAML-описания мини-игр: набор категорий,
// число уровней и политику доступа к первому уровню.
package gameconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"eduplay/pkg/progression"
)

type fileFormat struct {
	Game              string   `yaml:"game"`
	Categories        []string `yaml:"categories"`
	LevelsPerCategory int      `yaml:"levelsPerCategory"`
	LevelOnePolicy    string   `yaml:"levelOnePolicy"`
	DefaultUnlocked   int      `yaml:"defaultUnlocked"`
}

// Load читает конфигурацию игры из YAML-файла.
func Load(path string) (progression.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return progression.Config{}, fmt.Errorf("read game config: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return progression.Config{}, fmt.Errorf("parse game config: %w", err)
	}
	if f.Game == "" {
		return progression.Config{}, fmt.Errorf("game config %s: empty game name", path)
	}

	cfg := progression.DefaultConfig(f.Game)
	if len(f.Categories) > 0 {
		cats := make([]progression.Category, len(f.Categories))
		for i, c := range f.Categories {
			cats[i] = progression.Category(c)
		}
		cfg.Categories = cats
	}
	if f.LevelsPerCategory > 0 {
		cfg.LevelsPerCategory = f.LevelsPerCategory
	}
	cfg.DefaultUnlocked = f.DefaultUnlocked

	switch f.LevelOnePolicy {
	case "", "always_open":
		cfg.LevelOnePolicy = progression.LevelOneAlwaysOpen
	case "bootstrap_once":
		cfg.LevelOnePolicy = progression.LevelOneBootstrapOnce
	default:
		return progression.Config{}, fmt.Errorf("game config %s: unknown levelOnePolicy %q", path, f.LevelOnePolicy)
	}

	return cfg, nil
}

// LoadOrDefault — как Load, но отсутствующий или битый файл
// заменяется стандартной конфигурацией 5x15.
func LoadOrDefault(path, game string) progression.Config {
	cfg, err := Load(path)
	if err != nil {
		return progression.DefaultConfig(game)
	}
	return cfg
}
