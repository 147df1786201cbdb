package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelist/proj/internal/config"
	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/services"
	"reelist/proj/internal/services/auth"
	"reelist/proj/internal/services/catalog"
	"reelist/proj/internal/services/progress"
	"reelist/proj/internal/services/watchlist"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/stretchr/testify/require"
)

type nopMailer struct{}

func (nopMailer) Send(string, string, any) error { return nil }

type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

type testApp struct {
	*Application
	router    http.Handler
	users     *memUserStorage
	content   *memContentStorage
	watchlist *memWatchlistStorage
	progress  *memProgressStorage
}

func NewTestApplication(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.Limiter.Enabled = false
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := newMemUserStorage()
	content := &memContentStorage{}
	wl := newMemWatchlistStorage(content)
	pg := newMemProgressStorage(content)
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	app := &Application{
		cfg:          cfg,
		log:          log,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		queryDecoder: queryDecoder,
		Http:         &Http{log: log, cfg: cfg},
		Services: &services.Services{
			Auth:      auth.New(log, users, nopMailer{}, syncExecutor{}, "test-secret", time.Hour),
			Catalog:   catalog.New(log, content),
			Watchlist: watchlist.New(log, wl),
			Progress:  progress.New(log, pg),
		},
	}
	return &testApp{
		Application: app,
		router:      app.routes(),
		users:       users,
		content:     content,
		watchlist:   wl,
		progress:    pg,
	}
}

func (ta *testApp) signup(t *testing.T, username, email string) (userID int64, token string) {
	t.Helper()
	user, token, err := ta.Services.Auth.Signup(context.Background(), username, email, "s3cretpass")
	require.NoError(t, err)
	return user.ID, token
}

func (ta *testApp) seedContent(t *testing.T, titles ...string) []models.Content {
	t.Helper()
	items := make([]models.Content, 0, len(titles))
	for i, title := range titles {
		year := int32(2000 + i)
		items = append(items, models.Content{
			ID:          int64(i + 1),
			Title:       title,
			Type:        models.ContentTypeMovie,
			ReleaseYear: &year,
			Genre:       "Drama",
			TmdbID:      int64(1000 + i),
		})
	}
	ta.content.add(items...)
	return items
}

func (ta *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}
	request := httptest.NewRequest(method, path, reqBody)
	request.RemoteAddr = "127.0.0.1:12345"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	ta.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &v))
	return v
}
