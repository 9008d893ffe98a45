package progression

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- фейковые коллабораторы ---

type fakeStore struct {
	progress  map[Category]int
	fetchErr  error
	saveErr   error
	saved     []int // история сохранённых значений
	applySave bool  // применять ли сохранение к progress (GREATEST)
}

func (s *fakeStore) FetchCategoryProgress(ctx context.Context, userID, game string, cats []Category) (map[Category]int, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make(map[Category]int, len(s.progress))
	for k, v := range s.progress {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) SaveCategoryProgress(ctx context.Context, userID, game string, cat Category, level int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, level)
	if s.applySave && level > s.progress[cat] {
		s.progress[cat] = level
	}
	return nil
}

type fakeScore struct {
	added    []int
	total    int
	addErr   error
	fetchErr error
}

func (s *fakeScore) AddScore(ctx context.Context, userID string, delta int) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, delta)
	s.total += delta
	return nil
}

func (s *fakeScore) FetchTotalScore(ctx context.Context, userID string) (int, error) {
	return s.total, s.fetchErr
}

type visit struct {
	scene   string
	seconds int
}

type fakeTelemetry struct {
	visits    []visit
	gameOvers []string
	err       error
}

func (t *fakeTelemetry) LogPageVisit(ctx context.Context, userID, scene string, seconds int) error {
	if t.err != nil {
		return t.err
	}
	t.visits = append(t.visits, visit{scene, seconds})
	return nil
}

func (t *fakeTelemetry) LogGameOver(ctx context.Context, userID, scene string) error {
	if t.err != nil {
		return t.err
	}
	t.gameOvers = append(t.gameOvers, scene)
	return nil
}

type fakeIdentity struct {
	id string
	ok bool
}

func (i *fakeIdentity) CurrentUserID() (string, bool) { return i.id, i.ok }

type fakeCache struct{ totals map[string]int }

func (c *fakeCache) SaveTotalScore(userID string, total int) error {
	if c.totals == nil {
		c.totals = map[string]int{}
	}
	c.totals[userID] = total
	return nil
}

type fakeBus struct{ topics []string }

func (b *fakeBus) Publish(topic string) { b.topics = append(b.topics, topic) }

type testEnv struct {
	ctrl  *Controller
	store *fakeStore
	score *fakeScore
	tel   *fakeTelemetry
	bus   *fakeBus
	cache *fakeCache
}

func newTestEnv(cfg Config, progress map[Category]int) *testEnv {
	env := &testEnv{
		store: &fakeStore{progress: progress, applySave: true},
		score: &fakeScore{},
		tel:   &fakeTelemetry{},
		bus:   &fakeBus{},
		cache: &fakeCache{},
	}
	env.ctrl = NewController(cfg, env.store, env.score, env.tel, &fakeIdentity{id: "u-1", ok: true}, env.cache, env.bus)
	env.ctrl.logf = func(string, ...any) {}
	return env
}

// --- Unlock Gate ---

func TestGateFreshPlayerLevelOne(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)
	assert.Equal(t, Category("BASIC"), sess.Category)
	assert.Equal(t, 1, sess.LevelInCategory)
}

func TestGateRejectsLockedLevel(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{"HARD": 2})

	// HARD открыт до 2, просим 4-й: глобальный = 2*15 + 4.
	_, err := env.ctrl.StartSession(context.Background(), "quiz_level", 34)

	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, Category("HARD"), locked.Category)
	assert.Equal(t, 4, locked.Level)
	assert.Equal(t, 2, locked.Unlocked)
}

func TestGateAllowsUnlockedRange(t *testing.T) {
	cfg := DefaultConfig("quiz")
	env := newTestEnv(cfg, map[Category]int{"NORMAL": 5})

	for level := 1; level <= 5; level++ {
		_, err := env.ctrl.StartSession(context.Background(), "quiz_level", 15+level)
		assert.NoError(t, err, "level %d", level)
	}
	for level := 6; level <= 15; level++ {
		_, err := env.ctrl.StartSession(context.Background(), "quiz_level", 15+level)
		assert.Error(t, err, "level %d", level)
	}
}

func TestGateFetchFailureDefaultsToLevelOne(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), nil)
	env.store.fetchErr = errors.New("backend down")

	// Деградация: считаем, что открыт только первый уровень каждой категории.
	_, err := env.ctrl.StartSession(context.Background(), "quiz_level", 16)
	assert.NoError(t, err)

	_, err = env.ctrl.StartSession(context.Background(), "quiz_level", 17)
	assert.Error(t, err)
}

func TestGateBootstrapOnce(t *testing.T) {
	cfg := DefaultConfig("organs")
	cfg.LevelOnePolicy = LevelOneBootstrapOnce
	cfg.DefaultUnlocked = 0

	// Самая первая сессия: нулевой прогресс, уровень 1 доступен.
	env := newTestEnv(cfg, map[Category]int{})
	_, err := env.ctrl.StartSession(context.Background(), "organs_level", 1)
	assert.NoError(t, err)

	// Первый уровень какой-то категории уже пройден — доступен.
	env = newTestEnv(cfg, map[Category]int{"NORMAL": 2})
	_, err = env.ctrl.StartSession(context.Background(), "organs_level", 16)
	assert.NoError(t, err)

	// Прогресс начат (запись есть), но ни один первый уровень не пройден —
	// разовый аванс уже израсходован.
	env = newTestEnv(cfg, map[Category]int{"BASIC": 1})
	_, err = env.ctrl.StartSession(context.Background(), "organs_level", 16)
	assert.Error(t, err)
}

func TestGateBootstrapOnceFetchFailureKeepsLevelOneOpen(t *testing.T) {
	cfg := DefaultConfig("organs")
	cfg.LevelOnePolicy = LevelOneBootstrapOnce
	cfg.DefaultUnlocked = 0

	env := newTestEnv(cfg, nil)
	env.store.fetchErr = errors.New("backend down")

	// Подставная карта равна стартовой, поэтому bootstrap-правило видит
	// первую сессию: первый уровень каждой категории играбелен и офлайн.
	for _, global := range []int{1, 16, 31, 46, 61} {
		_, err := env.ctrl.StartSession(context.Background(), "organs_level", global)
		assert.NoError(t, err, "global %d", global)
	}

	// Остальные уровни при отказе бэкенда закрыты.
	_, err := env.ctrl.StartSession(context.Background(), "organs_level", 2)
	assert.Error(t, err)
}

func TestStartSessionWithoutIdentity(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})
	env.ctrl.identity = &fakeIdentity{ok: false}

	_, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestStartSessionInCategoryUnknownFallsBack(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	sess, err := env.ctrl.StartSessionInCategory(context.Background(), "quiz_level", "NOSUCH", 1)
	require.NoError(t, err)
	assert.Equal(t, Category("BASIC"), sess.Category)
	assert.Equal(t, 1, sess.LevelInCategory)
}

// --- Progress Commit ---

func TestCommitRaisesHighWaterMark(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{"BASIC": 5})

	// Прошли 5-й уровень BASIC: планка должна стать max(5, 6) = 6.
	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 5)
	require.NoError(t, err)
	sess.Score = 100

	require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
	assert.Equal(t, []int{6}, env.store.saved)
	assert.Equal(t, 6, env.store.progress["BASIC"])
	assert.Equal(t, []int{100}, env.score.added)
	assert.Equal(t, []string{TopicLevelsUpdated}, env.bus.topics)
	assert.Equal(t, 100, env.cache.totals["u-1"])
}

func TestCommitNeverRegresses(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{"BASIC": 5})

	// Повторное прохождение 2-го уровня: next=3, но сохранено 5 — пишем 5.
	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 2)
	require.NoError(t, err)

	require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
	assert.Equal(t, []int{5}, env.store.saved)
	assert.Equal(t, 5, env.store.progress["BASIC"])
}

func TestCommitInFlightGuard(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)

	sess.state = commitInFlight
	assert.ErrorIs(t, env.ctrl.CommitCompletion(context.Background(), sess), ErrCommitInFlight)

	sess.state = commitIdle
	assert.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
}

func TestCommitRetriesWhenWriteDidNotLand(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{"BASIC": 1})
	env.store.applySave = false // запись "теряется": перечитывание видит старое значение

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)

	require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
	// Основная запись + одна повторная попытка, не больше.
	assert.Equal(t, []int{2, 2}, env.store.saved)
}

func TestCommitSurvivesScoreFailure(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})
	env.score.addErr = errors.New("score service down")

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)
	sess.Score = 10

	// Отказ начисления очков не мешает поднять планку.
	require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
	assert.Equal(t, []int{2}, env.store.saved)
}

func TestCommitSkipsScoreWhenZero(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)

	// Нулевой результат: дельту на бэкенд не шлём, планка всё равно растёт.
	require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))
	assert.Empty(t, env.score.added)
	assert.Equal(t, []int{2}, env.store.saved)
	assert.Equal(t, []string{TopicLevelsUpdated}, env.bus.topics)
}

func TestCommitMonotonicSequence(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{"BASIC": 1})

	last := 0
	for _, level := range []int{1, 2, 1, 3, 2} {
		sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", level)
		require.NoError(t, err)
		require.NoError(t, env.ctrl.CommitCompletion(context.Background(), sess))

		// Планка не убывает, что бы ни проходили повторно.
		assert.GreaterOrEqual(t, env.store.progress["BASIC"], last)
		last = env.store.progress["BASIC"]
	}
	assert.Equal(t, 4, env.store.progress["BASIC"])
}

// --- Session Telemetry ---

func TestTelemetryVisitOnEnterAndExit(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.ctrl.now = func() time.Time { return start }

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)
	require.Equal(t, []visit{{"quiz_level", 0}}, env.tel.visits)

	env.ctrl.now = func() time.Time { return start.Add(42 * time.Second) }
	env.ctrl.EndSession(context.Background(), sess)

	assert.Equal(t, []visit{{"quiz_level", 0}, {"quiz_level", 42}}, env.tel.visits)
}

func TestTelemetryGameOver(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)

	env.ctrl.GameOver(context.Background(), sess)
	assert.Equal(t, []string{"quiz_level"}, env.tel.gameOvers)
}

func TestTelemetryFailuresAreSwallowed(t *testing.T) {
	env := newTestEnv(DefaultConfig("quiz"), map[Category]int{})
	env.tel.err = errors.New("analytics down")

	sess, err := env.ctrl.StartSession(context.Background(), "quiz_level", 1)
	require.NoError(t, err)

	env.ctrl.EndSession(context.Background(), sess)
	env.ctrl.GameOver(context.Background(), sess)
}
