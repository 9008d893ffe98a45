package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	progress map[string]int
	err      error
	raised   []int
}

func (f *fakeStore) GetForGame(ctx context.Context, userID uuid.UUID, game string) (map[string]int, error) {
	return f.progress, f.err
}

func (f *fakeStore) Raise(ctx context.Context, userID uuid.UUID, game, category string, level int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.raised = append(f.raised, level)
	if level > f.progress[category] {
		f.progress[category] = level
	}
	return f.progress[category], nil
}

func setupRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewServer(store).Register(r)
	return r
}

func TestGetProgress(t *testing.T) {
	store := &fakeStore{progress: map[string]int{"BASIC": 6, "HARD": 2}}
	r := setupRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress/"+uuid.NewString()+"/quiz", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Progress map[string]int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, store.progress, res.Progress)
}

func TestGetProgressInvalidUserID(t *testing.T) {
	r := setupRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress/not-a-uuid/quiz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveProgressRaisesHighWaterMark(t *testing.T) {
	store := &fakeStore{progress: map[string]int{"BASIC": 5}}
	r := setupRouter(store)

	body, _ := json.Marshal(map[string]any{"category": "BASIC", "level": 3})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/progress/"+uuid.NewString()+"/quiz", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Unlocked int `json:"unlocked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	// Планка не откатывается: сохранено 5, прислали 3 — остаётся 5.
	assert.Equal(t, 5, res.Unlocked)
}

func TestSaveProgressValidation(t *testing.T) {
	r := setupRouter(&fakeStore{progress: map[string]int{}})

	for _, body := range []string{`{}`, `{"category":"BASIC"}`, `{"category":"BASIC","level":0}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/progress/"+uuid.NewString()+"/quiz", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
	}
}

func TestStoreFailure(t *testing.T) {
	r := setupRouter(&fakeStore{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress/"+uuid.NewString()+"/quiz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
