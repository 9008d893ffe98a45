package progression

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Тема локальной шины: прогресс изменился, карте уровней пора обновиться.
const TopicLevelsUpdated = "levels_updated"

var (
	// Нет сохранённой учётки на устройстве — игрока отправляют на логин.
	ErrNoIdentity = errors.New("no saved user identity")
	// Повторный коммит, пока предыдущий не завершился.
	ErrCommitInFlight = errors.New("progress commit already in flight")
)

// LockedError — уровень ещё закрыт. Сцена должна показать сообщение
// и вернуть игрока на карту. Это жёсткий отказ, без ретраев.
type LockedError struct {
	Category Category
	Level    int
	Unlocked int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("level %d of %s is locked (unlocked up to %d)", e.Level, e.Category, e.Unlocked)
}

// ProgressStore — удалённое хранилище прогресса (JSON/HTTP бэкенд).
// Возвращает только существующие записи; отсутствующие категории
// клиент добивает значением по умолчанию из конфига.
type ProgressStore interface {
	FetchCategoryProgress(ctx context.Context, userID, game string, categories []Category) (map[Category]int, error)
	SaveCategoryProgress(ctx context.Context, userID, game string, category Category, level int) error
}

// ScoreService — начисление очков и чтение актуального итога из профиля.
type ScoreService interface {
	AddScore(ctx context.Context, userID string, delta int) error
	FetchTotalScore(ctx context.Context, userID string) (int, error)
}

// Telemetry — аналитика. Все вызовы best-effort.
type Telemetry interface {
	LogPageVisit(ctx context.Context, userID, scene string, seconds int) error
	LogGameOver(ctx context.Context, userID, scene string) error
}

// Identity — локальное хранилище учётки на устройстве.
type Identity interface {
	CurrentUserID() (string, bool)
}

// ScoreCache — локальный кеш суммарного счёта для отображения.
type ScoreCache interface {
	SaveTotalScore(userID string, total int) error
}

// Publisher — локальная шина событий внутри процесса.
type Publisher interface {
	Publish(topic string)
}

// Controller — единый контроллер прогрессии для всех мини-игр.
// Раньше эта логика была скопирована в каждую игру, теперь игра
// приносит только свой Config (набор категорий и политику первого уровня).
type Controller struct {
	cfg       Config
	store     ProgressStore
	score     ScoreService
	telemetry Telemetry
	identity  Identity
	cache     ScoreCache // может быть nil
	bus       Publisher  // может быть nil

	logf func(format string, v ...any)
	now  func() time.Time
}

func NewController(cfg Config, store ProgressStore, score ScoreService, telemetry Telemetry, identity Identity, cache ScoreCache, bus Publisher) *Controller {
	return &Controller{
		cfg:       cfg,
		store:     store,
		score:     score,
		telemetry: telemetry,
		identity:  identity,
		cache:     cache,
		bus:       bus,
		logf:      log.Printf,
		now:       time.Now,
	}
}

func (c *Controller) Config() Config { return c.cfg }

// fetchProgress возвращает счётчики открытых уровней по всем категориям.
// Ошибка сети — не повод падать: подставляем стартовую карту игры
// (DefaultUnlocked в каждой категории). Для bootstrap-правила такая
// карта выглядит как первая сессия, поэтому первый уровень остаётся
// доступным и офлайн.
func (c *Controller) fetchProgress(ctx context.Context, userID string) map[Category]int {
	fetched, err := c.store.FetchCategoryProgress(ctx, userID, c.cfg.Game, c.cfg.Categories)
	if err != nil {
		c.logf("[progression] %s: fetch progress: %v (using defaults)", c.cfg.Game, err)
		fetched = nil
	}
	progress := make(map[Category]int, len(c.cfg.Categories))
	for _, cat := range c.cfg.Categories {
		if n, ok := fetched[cat]; ok {
			progress[cat] = n
		} else {
			progress[cat] = c.cfg.DefaultUnlocked
		}
	}
	return progress
}
