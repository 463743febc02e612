package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/gissleh/tawngbu"
	"github.com/gissleh/tawngbu/adapters/jsonstorage"
	"github.com/gissleh/tawngbu/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testProfile = "3f0e7a5c-1d2b-4c3a-9e8f-0a1b2c3d4e5f"

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (failingStorage) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func setupTest(t *testing.T, storage service.Storage) *echo.Echo {
	t.Helper()

	return setupTestWithLogger(t, storage, nil)
}

func setupTestWithLogger(t *testing.T, storage service.Storage, logger *slog.Logger) *echo.Echo {
	t.Helper()

	lex, err := tawngbu.NewLexicon([]tawngbu.LexiconEntry{
		{Word: "book", Definition: "lehkhabu"},
		{Word: "booklet", Definition: "lehkhabu te"},
		{Word: "water", Definition: "tui"},
	})
	require.NoError(t, err)

	svc := service.New(lex, storage, logger)
	svc.Now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local) }

	e := SetupWithoutListener()
	Dictionary(e.Group("/api"), svc)
	Activity(e.Group("/api"), svc)

	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, target, profile string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if profile != "" {
		req.Header.Set(headerProfileID, profile)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestSearch(t *testing.T) {
	e := setupTest(t, jsonstorage.New(""))

	t.Run("forward", func(t *testing.T) {
		rec, body := doRequest(t, e, http.MethodGet, "/api/search/english/Book?seq=4", testProfile)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testProfile, rec.Header().Get(headerProfileID))
		assert.Equal(t, "book", body["query"])
		assert.Equal(t, "forward", body["direction"])
		assert.Equal(t, true, body["exact"])
		assert.Equal(t, float64(4), body["seq"])
		assert.Len(t, body["results"], 2)
	})

	t.Run("reverse", func(t *testing.T) {
		rec, body := doRequest(t, e, http.MethodGet, "/api/search/mizo/lehkhabu", testProfile)

		assert.Equal(t, http.StatusOK, rec.Code)
		results := body["results"].([]any)
		require.Len(t, results, 2)
		assert.Equal(t, "lehkhabu", results[0].(map[string]any)["matchedTargetWord"])
	})

	t.Run("records_recent_search", func(t *testing.T) {
		_, body := doRequest(t, e, http.MethodGet, "/api/activity", testProfile)
		assert.Equal(t, []any{"lehkhabu", "book"}, body["recentSearches"])
	})

	t.Run("generates_profile", func(t *testing.T) {
		rec, _ := doRequest(t, e, http.MethodGet, "/api/search/english/tui", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, rec.Header().Get(headerProfileID), 36)
	})

	t.Run("bad_direction", func(t *testing.T) {
		rec, body := doRequest(t, e, http.MethodGet, "/api/search/sideways/book", testProfile)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "direction")
	})

	t.Run("bad_profile", func(t *testing.T) {
		rec, _ := doRequest(t, e, http.MethodGet, "/api/search/english/book", "../../etc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSearch_LogsThroughServiceLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := setupTestWithLogger(t, jsonstorage.New(""), logger)

	rec, _ := doRequest(t, e, http.MethodGet, "/api/search/english/water", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "Search executed")
	assert.Contains(t, buf.String(), "query=water")
}

func TestEntry(t *testing.T) {
	e := setupTest(t, jsonstorage.New(""))

	rec, body := doRequest(t, e, http.MethodGet, "/api/entries/water", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"word": "water", "definition": "tui"}, body["entry"])

	rec, _ = doRequest(t, e, http.MethodGet, "/api/entries/fire", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavorites(t *testing.T) {
	e := setupTest(t, jsonstorage.New(""))

	rec, body := doRequest(t, e, http.MethodPost, "/api/favorites/water", testProfile)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["favorite"])
	assert.Equal(t, true, body["persisted"])

	_, body = doRequest(t, e, http.MethodGet, "/api/favorites", testProfile)
	assert.Equal(t, []any{map[string]any{"word": "water", "definition": "tui"}}, body["favorites"])

	_, body = doRequest(t, e, http.MethodPost, "/api/favorites/water", testProfile)
	assert.Equal(t, false, body["favorite"])

	_, body = doRequest(t, e, http.MethodPost, "/api/recent/booklet", testProfile)
	activity := body["activity"].(map[string]any)
	assert.Equal(t, []any{"booklet", "water"}, activity["recentSearches"])
}

func TestFavorites_LocalProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	e := setupTest(t, jsonstorage.New(path))

	rec, body := doRequest(t, e, http.MethodPost, "/api/favorites/water", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["favorite"])

	_, body = doRequest(t, e, http.MethodGet, "/api/search/english/book", "")
	assert.Equal(t, true, body["exact"])

	_, body = doRequest(t, e, http.MethodGet, "/api/activity", "")
	assert.Equal(t, []any{"water"}, body["favorites"])
	assert.Equal(t, []any{"book", "water"}, body["recentSearches"])

	_, body = doRequest(t, e, http.MethodGet, "/api/activity", testProfile)
	assert.Equal(t, []any{}, body["favorites"])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var data jsonstorage.Data
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Len(t, data.Values, 2)
	assert.Contains(t, data.Values, "dictionaryFavorites")
	assert.Contains(t, data.Values, "recentSearches")
}

func TestFavorites_WriteFailure(t *testing.T) {
	e := setupTest(t, failingStorage{})

	rec, body := doRequest(t, e, http.MethodPost, "/api/favorites/water", testProfile)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["favorite"])
	assert.Equal(t, false, body["persisted"])
}

func TestWordOfTheDayAndStats(t *testing.T) {
	e := setupTest(t, jsonstorage.New(""))

	rec, body := doRequest(t, e, http.MethodGet, "/api/wotd", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	wotd := body["wotd"].(map[string]any)
	assert.Equal(t, "2026-10-16", wotd["date"])
	assert.NotEmpty(t, wotd["word"])

	_, again := doRequest(t, e, http.MethodGet, "/api/wotd", "")
	assert.Equal(t, wotd["word"], again["wotd"].(map[string]any)["word"])

	_, stats := doRequest(t, e, http.MethodGet, "/api/stats", "")
	assert.Equal(t, map[string]any{"words": float64(3), "targetTerms": float64(2)}, stats)
}
