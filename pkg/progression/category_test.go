package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateRoundTrip(t *testing.T) {
	cfg := DefaultConfig("quiz")

	for global := 1; global <= 75; global++ {
		cat, level := cfg.Locate(global)
		assert.GreaterOrEqual(t, level, 1)
		assert.LessOrEqual(t, level, 15)
		assert.Equal(t, global, cfg.GlobalLevel(cat, level), "global=%d", global)
	}
}

func TestLocateCategoryBoundary(t *testing.T) {
	cfg := DefaultConfig("quiz")

	cat, level := cfg.Locate(15)
	assert.Equal(t, Category("BASIC"), cat)
	assert.Equal(t, 15, level)

	// Уровень 16 — первый уровень второй категории.
	cat, level = cfg.Locate(16)
	assert.Equal(t, Category("NORMAL"), cat)
	assert.Equal(t, 1, level)

	cat, level = cfg.Locate(75)
	assert.Equal(t, Category("EXPERT"), cat)
	assert.Equal(t, 15, level)
}

func TestLocateOutOfRangeFallsBack(t *testing.T) {
	cfg := DefaultConfig("quiz")

	cat, _ := cfg.Locate(76)
	assert.Equal(t, Category("BASIC"), cat)
}

func TestLevelInCategoryMatchesLocate(t *testing.T) {
	cfg := DefaultConfig("quiz")

	// Прямой путь (категория из URL) обязан совпадать с канонической формулой.
	for global := 1; global <= 75; global++ {
		cat, level := cfg.Locate(global)
		assert.Equal(t, level, cfg.LevelInCategory(cat, global), "global=%d", global)
	}
}

func TestCategoryIndexUnknown(t *testing.T) {
	cfg := DefaultConfig("quiz")
	assert.Equal(t, 0, cfg.CategoryIndex("NOSUCH"))
	assert.Equal(t, 2, cfg.CategoryIndex("HARD"))
}
