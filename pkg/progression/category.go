package progression

// Category — уровень сложности. Каждая категория содержит фиксированное
// число последовательных уровней.
type Category string

// Стандартный набор категорий мини-игр (5 x 15 = 75 уровней).
var DefaultCategories = []Category{"BASIC", "NORMAL", "HARD", "ADVANCED", "EXPERT"}

const DefaultLevelsPerCategory = 15

// LevelOnePolicy — правило доступа к первому уровню категории.
type LevelOnePolicy int

const (
	// Первый уровень всегда доступен (квиз-портал, игра-сборщик).
	LevelOneAlwaysOpen LevelOnePolicy = iota
	// Первый уровень доступен, если игрок уже проходил первый уровень
	// какой-либо категории, либо прогресса нет вообще (самая первая сессия).
	LevelOneBootstrapOnce
)

// Config описывает одну мини-игру для контроллера прогрессии.
type Config struct {
	Game              string
	Categories        []Category
	LevelsPerCategory int
	LevelOnePolicy    LevelOnePolicy
	// Сколько уровней открыто в категории без сохранённого прогресса (0 или 1).
	DefaultUnlocked int
}

// DefaultConfig возвращает стандартную конфигурацию 5x15.
func DefaultConfig(game string) Config {
	return Config{
		Game:              game,
		Categories:        DefaultCategories,
		LevelsPerCategory: DefaultLevelsPerCategory,
		LevelOnePolicy:    LevelOneAlwaysOpen,
		DefaultUnlocked:   1,
	}
}

// CategoryIndex возвращает позицию категории в списке.
// Неизвестная категория трактуется как первая.
func (c Config) CategoryIndex(cat Category) int {
	for i, known := range c.Categories {
		if known == cat {
			return i
		}
	}
	return 0
}

// Locate переводит сквозной номер уровня (1..N) в пару
// (категория, уровень внутри категории).
func (c Config) Locate(global int) (Category, int) {
	idx := (global - 1) / c.LevelsPerCategory
	// Выход за границы списка — откатываемся на первую категорию.
	if idx < 0 || idx >= len(c.Categories) {
		return c.Categories[0], ((global - 1) % c.LevelsPerCategory) + 1
	}
	return c.Categories[idx], ((global - 1) % c.LevelsPerCategory) + 1
}

// LevelInCategory — обратный путь, когда категория известна заранее
// (например, пришла параметром из URL карты уровней).
// Должен давать тот же результат, что и Locate.
func (c Config) LevelInCategory(cat Category, global int) int {
	return global - c.CategoryIndex(cat)*c.LevelsPerCategory
}

// GlobalLevel собирает сквозной номер уровня обратно.
func (c Config) GlobalLevel(cat Category, levelInCategory int) int {
	return c.CategoryIndex(cat)*c.LevelsPerCategory + levelInCategory
}
