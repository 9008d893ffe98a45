// Package gamedata — локальное хранилище игрока на устройстве:
// сохранённая учётка и кеш суммарного счёта для отображения в меню.
// Данные лежат в gdata (кроссплатформенное хранилище), формат — YAML.
package gamedata

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	playerObject     = "player"
	identityProperty = "identity"
	scoreProperty    = "score"
)

type identityData struct {
	UserID string `yaml:"userId"`
}

type scoreData struct {
	Totals map[string]int `yaml:"totals"`
}

// Store держит локальные данные игрока. Менеджер может быть nil —
// тогда работаем только в памяти (деградация без персистентности).
type Store struct {
	m      *gdata.Manager
	userID string
	totals map[string]int
}

// Open открывает хранилище приложения. Отказ gdata не фатален:
// возвращаем Store в деградированном режиме.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[gamedata] open storage: %v (running without persistence)", err)
		m = nil
	}
	return New(m)
}

func New(m *gdata.Manager) *Store {
	s := &Store{m: m, totals: make(map[string]int)}
	s.load()
	return s
}

func (s *Store) load() {
	if s.m == nil {
		return
	}
	if s.m.ObjectPropExists(playerObject, identityProperty) {
		data, err := s.m.LoadObjectProp(playerObject, identityProperty)
		if err == nil {
			var id identityData
			if err := yaml.Unmarshal(data, &id); err == nil {
				s.userID = id.UserID
			}
		}
	}
	if s.m.ObjectPropExists(playerObject, scoreProperty) {
		data, err := s.m.LoadObjectProp(playerObject, scoreProperty)
		if err == nil {
			var sc scoreData
			if err := yaml.Unmarshal(data, &sc); err == nil && sc.Totals != nil {
				s.totals = sc.Totals
			}
		}
	}
}

// CurrentUserID возвращает сохранённую учётку.
// false — учётки нет, игрока нужно отправить на логин.
func (s *Store) CurrentUserID() (string, bool) {
	if s.userID == "" {
		return "", false
	}
	return s.userID, true
}

func (s *Store) SaveUserID(userID string) error {
	s.userID = userID
	return s.persistIdentity()
}

// ClearUserID — локальный logout.
func (s *Store) ClearUserID() error {
	s.userID = ""
	return s.persistIdentity()
}

func (s *Store) persistIdentity() error {
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(identityData{UserID: s.userID})
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := s.m.SaveObjectProp(playerObject, identityProperty, data); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// SaveTotalScore кеширует свежий итог очков после начисления.
func (s *Store) SaveTotalScore(userID string, total int) error {
	s.totals[userID] = total
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(scoreData{Totals: s.totals})
	if err != nil {
		return fmt.Errorf("marshal score cache: %w", err)
	}
	if err := s.m.SaveObjectProp(playerObject, scoreProperty, data); err != nil {
		return fmt.Errorf("save score cache: %w", err)
	}
	return nil
}

// CachedTotalScore — последний известный итог без похода на сервер.
func (s *Store) CachedTotalScore(userID string) (int, bool) {
	total, ok := s.totals[userID]
	return total, ok
}
