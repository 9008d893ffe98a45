package progression

import (
	"context"
	"time"
)

type commitState int

const (
	commitIdle commitState = iota
	commitInFlight
)

// Session — состояние одной игровой сцены. Живёт от входа в уровень до
// выхода или рестарта; рестарт создаёт новую сессию, перенося только
// номер уровня.
type Session struct {
	GlobalLevel     int
	Category        Category
	LevelInCategory int
	Scene           string
	// Очки, набранные за сессию; уходят на сервер при коммите.
	Score int

	userID      string
	startedAt   time.Time
	visitLogged bool
	state       commitState
}

// StartSession открывает сессию для сквозного номера уровня: адресация,
// проверка доступа, стартовая телеметрия.
func (c *Controller) StartSession(ctx context.Context, scene string, globalLevel int) (*Session, error) {
	cat, level := c.cfg.Locate(globalLevel)
	return c.startSession(ctx, scene, globalLevel, cat, level)
}

// StartSessionInCategory — вариант, когда категория пришла снаружи
// (параметр URL с карты уровней).
func (c *Controller) StartSessionInCategory(ctx context.Context, scene string, cat Category, globalLevel int) (*Session, error) {
	level := c.cfg.LevelInCategory(cat, globalLevel)
	// Неизвестная категория уже свёрнута к первой внутри LevelInCategory.
	if c.cfg.CategoryIndex(cat) == 0 {
		cat = c.cfg.Categories[0]
	}
	return c.startSession(ctx, scene, globalLevel, cat, level)
}

func (c *Controller) startSession(ctx context.Context, scene string, globalLevel int, cat Category, level int) (*Session, error) {
	userID, ok := c.identity.CurrentUserID()
	if !ok {
		return nil, ErrNoIdentity
	}

	if err := c.checkPlayable(ctx, userID, cat, level); err != nil {
		return nil, err
	}

	sess := &Session{
		GlobalLevel:     globalLevel,
		Category:        cat,
		LevelInCategory: level,
		Scene:           scene,
		userID:          userID,
		startedAt:       c.now(),
	}

	// Визит логируем ровно один раз за жизнь сцены.
	if !sess.visitLogged {
		sess.visitLogged = true
		if err := c.telemetry.LogPageVisit(ctx, userID, scene, 0); err != nil {
			c.logf("[progression] %s: log page visit: %v", c.cfg.Game, err)
		}
	}

	return sess, nil
}

// EndSession фиксирует выход со сцены (кнопка назад, завершение, shutdown).
func (c *Controller) EndSession(ctx context.Context, sess *Session) {
	seconds := int(c.now().Sub(sess.startedAt).Seconds())
	if err := c.telemetry.LogPageVisit(ctx, sess.userID, sess.Scene, seconds); err != nil {
		c.logf("[progression] %s: log page visit: %v", c.cfg.Game, err)
	}
}

// GameOver фиксирует проигрыш (неверный ответ, вышло время).
func (c *Controller) GameOver(ctx context.Context, sess *Session) {
	if err := c.telemetry.LogGameOver(ctx, sess.userID, sess.Scene); err != nil {
		c.logf("[progression] %s: log game over: %v", c.cfg.Game, err)
	}
}
