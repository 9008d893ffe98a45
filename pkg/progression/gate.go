package progression

import "context"

// checkPlayable решает, доступен ли уровень. Отказ — это LockedError:
// сцена не стартует, игрока возвращают на карту.
func (c *Controller) checkPlayable(ctx context.Context, userID string, cat Category, level int) error {
	progress := c.fetchProgress(ctx, userID)

	if level <= 1 {
		return c.checkLevelOne(cat, progress)
	}

	if level <= progress[cat] {
		return nil
	}
	return &LockedError{Category: cat, Level: level, Unlocked: progress[cat]}
}

// checkLevelOne — особые правила первого уровня категории.
func (c *Controller) checkLevelOne(cat Category, progress map[Category]int) error {
	switch c.cfg.LevelOnePolicy {
	case LevelOneBootstrapOnce:
		// Доступен, если игрок уже прошёл первый уровень какой-либо
		// категории, либо это самая первая сессия (нулевой прогресс).
		total := 0
		for _, n := range progress {
			if n >= 2 {
				return nil
			}
			total += n
		}
		if total == len(progress)*c.cfg.DefaultUnlocked {
			return nil
		}
		return &LockedError{Category: cat, Level: 1, Unlocked: progress[cat]}
	default:
		// LevelOneAlwaysOpen: первый уровень открыт безусловно.
		return nil
	}
}
