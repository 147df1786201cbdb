package main

import (
	"fmt"
	"net/http"
	"testing"

	"reelist/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToWatchlist(t *testing.T) {
	app := NewTestApplication(t)
	_, token := app.signup(t, "alice", "alice@example.com")
	items := app.seedContent(t, "Batman")

	t.Run("created", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{
			"contentId": items[0].ID,
			"notes":     "looks good",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		entry := decodeBody[models.WatchlistEntry](t, recorder)
		assert.False(t, entry.Watched)
		require.NotNil(t, entry.Notes)
		assert.Equal(t, "looks good", *entry.Notes)
	})
	t.Run("re-add updates notes, keeps watched", func(t *testing.T) {
		// mark it watched first
		listRec := app.do(t, http.MethodGet, "/api/watchlist", token, nil)
		entries := decodeBody[[]models.WatchlistItem](t, listRec)
		require.Len(t, entries, 1)
		watched := true
		updRec := app.do(t, http.MethodPut, fmt.Sprintf("/api/watchlist/%d", entries[0].ID), token, map[string]any{
			"watched": watched,
		})
		require.Equal(t, http.StatusOK, updRec.Code)

		recorder := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{
			"contentId": items[0].ID,
			"notes":     "second thoughts",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		entry := decodeBody[models.WatchlistEntry](t, recorder)
		assert.True(t, entry.Watched, "upsert must not reset the watched flag")
		require.NotNil(t, entry.Notes)
		assert.Equal(t, "second thoughts", *entry.Notes)

		// still exactly one row for the pair
		listRec = app.do(t, http.MethodGet, "/api/watchlist", token, nil)
		entries = decodeBody[[]models.WatchlistItem](t, listRec)
		assert.Len(t, entries, 1)
	})
	t.Run("missing contentId", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{
			"notes": "no content",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody[errorResponse](t, recorder)
		assert.Equal(t, "contentId is required", body.Fields["contentId"])
	})
	t.Run("unauthenticated", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/watchlist", "", map[string]any{
			"contentId": items[0].ID,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestGetWatchlistOrder(t *testing.T) {
	app := NewTestApplication(t)
	_, token := app.signup(t, "alice", "alice@example.com")
	items := app.seedContent(t, "First", "Second", "Third")

	for _, c := range items {
		recorder := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{"contentId": c.ID})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}
	recorder := app.do(t, http.MethodGet, "/api/watchlist", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	entries := decodeBody[[]models.WatchlistItem](t, recorder)
	require.Len(t, entries, 3)
	assert.Equal(t, "Third", entries[0].Title, "newest added first")
	assert.Equal(t, "First", entries[2].Title)
}

func TestUpdateWatchlistEntry(t *testing.T) {
	app := NewTestApplication(t)
	_, token := app.signup(t, "alice", "alice@example.com")
	items := app.seedContent(t, "Batman")
	created := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{
		"contentId": items[0].ID,
		"notes":     "original notes",
	})
	entry := decodeBody[models.WatchlistEntry](t, created)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		recorder := app.do(t, http.MethodPut, fmt.Sprintf("/api/watchlist/%d", entry.ID), token, map[string]any{
			"watched": true,
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		updated := decodeBody[models.WatchlistEntry](t, recorder)
		assert.True(t, updated.Watched)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "original notes", *updated.Notes, "omitted notes must be kept")
	})
	t.Run("other user's entry is not found", func(t *testing.T) {
		_, otherToken := app.signup(t, "mallory", "mallory@example.com")
		recorder := app.do(t, http.MethodPut, fmt.Sprintf("/api/watchlist/%d", entry.ID), otherToken, map[string]any{
			"watched": true,
		})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
	t.Run("unknown id", func(t *testing.T) {
		recorder := app.do(t, http.MethodPut, "/api/watchlist/999", token, map[string]any{"watched": true})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRemoveWatchlistEntry(t *testing.T) {
	app := NewTestApplication(t)
	_, token := app.signup(t, "alice", "alice@example.com")
	_, otherToken := app.signup(t, "mallory", "mallory@example.com")
	items := app.seedContent(t, "Batman")
	created := app.do(t, http.MethodPost, "/api/watchlist", token, map[string]any{"contentId": items[0].ID})
	entry := decodeBody[models.WatchlistEntry](t, created)

	t.Run("other user cannot remove", func(t *testing.T) {
		recorder := app.do(t, http.MethodDelete, fmt.Sprintf("/api/watchlist/%d", entry.ID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
	t.Run("owner removes", func(t *testing.T) {
		recorder := app.do(t, http.MethodDelete, fmt.Sprintf("/api/watchlist/%d", entry.ID), token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[map[string]any](t, recorder)
		assert.Equal(t, true, body["success"])
	})
	t.Run("second remove is not found", func(t *testing.T) {
		recorder := app.do(t, http.MethodDelete, fmt.Sprintf("/api/watchlist/%d", entry.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
