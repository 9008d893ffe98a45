package progression

import "context"

// CommitCompletion выполняется один раз после успешного прохождения уровня.
// Шаги строго последовательны, но отказ любого из них не отменяет остальные:
// очки, затем поднятие планки открытых уровней, затем проверка записи.
// Запись монотонна — только max с уже сохранённым значением, никогда вниз.
func (c *Controller) CommitCompletion(ctx context.Context, sess *Session) error {
	// Защита от повторного вызова из UI в рамках одной сцены.
	if sess.state == commitInFlight {
		return ErrCommitInFlight
	}
	sess.state = commitInFlight
	defer func() { sess.state = commitIdle }()

	// 1. Очки. Нулевой результат не отправляем: бэкенд принимает только
	// положительную дельту. После начисления перечитываем профиль и
	// кешируем итог локально.
	if sess.Score > 0 {
		if err := c.score.AddScore(ctx, sess.userID, sess.Score); err != nil {
			c.logf("[progression] %s: add score: %v", c.cfg.Game, err)
		} else if c.cache != nil {
			if total, err := c.score.FetchTotalScore(ctx, sess.userID); err != nil {
				c.logf("[progression] %s: fetch total score: %v", c.cfg.Game, err)
			} else if err := c.cache.SaveTotalScore(sess.userID, total); err != nil {
				c.logf("[progression] %s: cache total score: %v", c.cfg.Game, err)
			}
		}
	}

	// 2-4. Следующий уровень, но не ниже уже сохранённого.
	next := sess.LevelInCategory + 1
	progress := c.fetchProgress(ctx, sess.userID)
	value := next
	if progress[sess.Category] > value {
		value = progress[sess.Category]
	}

	// 5. Сохраняем планку.
	if err := c.store.SaveCategoryProgress(ctx, sess.userID, c.cfg.Game, sess.Category, value); err != nil {
		c.logf("[progression] %s: save progress: %v", c.cfg.Game, err)
	}

	// 6. Проверяем, что запись легла; одна повторная попытка, дальше только лог.
	if verify := c.fetchProgress(ctx, sess.userID); verify[sess.Category] < value {
		if err := c.store.SaveCategoryProgress(ctx, sess.userID, c.cfg.Game, sess.Category, value); err != nil {
			c.logf("[progression] %s: retry save progress: %v", c.cfg.Game, err)
		}
	}

	// 7. Открытая карта уровней перечитает прогресс по этому сигналу.
	if c.bus != nil {
		c.bus.Publish(TopicLevelsUpdated)
	}
	return nil
}
