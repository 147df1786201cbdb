package models

import (
	"context"
	"errors"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressModel struct {
	DB *pgxpool.Pool
}

// Upsert records a playback tick. Unlike the watchlist upsert this is a full
// overwrite: progress, duration and last_watched are always replaced.
func (m *ProgressModel) Upsert(ctx context.Context, userID, contentID int64, progressSeconds, durationSeconds int) (*models.WatchProgress, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO watch_progress (user_id, content_id, progress_seconds, duration_seconds, last_watched)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, content_id)
		DO UPDATE SET
			progress_seconds = EXCLUDED.progress_seconds,
			duration_seconds = EXCLUDED.duration_seconds,
			last_watched = NOW()
		RETURNING id, user_id, content_id, progress_seconds, duration_seconds, last_watched`,
		userID,
		contentID,
		progressSeconds,
		durationSeconds,
	)
	progress, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchProgress])
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (m *ProgressModel) Get(ctx context.Context, userID, contentID int64) (*models.WatchProgress, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, user_id, content_id, progress_seconds, duration_seconds, last_watched
		FROM watch_progress WHERE user_id = $1 AND content_id = $2`,
		userID,
		contentID,
	)
	progress, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchProgress])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// ListResumable returns the user's most recently watched titles that are
// started but not essentially finished, i.e.
// 0 < progress_seconds < duration_seconds * threshold.
func (m *ProgressModel) ListResumable(ctx context.Context, userID int64, threshold float64, limit int) ([]models.ContinueWatchingItem, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT wp.id, wp.content_id, wp.progress_seconds, wp.duration_seconds, wp.last_watched,
			c.title, c.type, c.poster_url, c.release_year, c.genre, c.tmdb_id, c.imdb_id
		FROM watch_progress wp
		JOIN content c ON wp.content_id = c.id
		WHERE wp.user_id = $1
			AND wp.progress_seconds > 0
			AND wp.progress_seconds < wp.duration_seconds * $2
		ORDER BY wp.last_watched DESC
		LIMIT $3`,
		userID,
		threshold,
		limit,
	)
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ContinueWatchingItem])
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete is idempotent: removing a missing row is not an error.
func (m *ProgressModel) Delete(ctx context.Context, userID, contentID int64) error {
	_, err := m.DB.Exec(ctx, "DELETE FROM watch_progress WHERE user_id = $1 AND content_id = $2", userID, contentID)
	return err
}
