package models

import (
	"context"
	"errors"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WatchlistModel struct {
	DB *pgxpool.Pool
}

// Upsert adds a title to the user's watchlist. Re-adding an already listed
// title overwrites the notes and refreshes updated_at; the watched flag keeps
// its prior value.
func (m *WatchlistModel) Upsert(ctx context.Context, userID, contentID int64, notes *string) (*models.WatchlistEntry, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO watchlist (user_id, content_id, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, content_id)
		DO UPDATE SET notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, user_id, content_id, watched, notes, added_at, updated_at`,
		userID,
		contentID,
		notes,
	)
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchlistEntry])
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (m *WatchlistModel) List(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT w.id, w.watched, w.notes, w.added_at, w.updated_at,
			c.id AS content_id, c.title, c.type, c.poster_url,
			c.release_year, c.genre, c.tmdb_id
		FROM watchlist w
		JOIN content c ON w.content_id = c.id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC`,
		userID,
	)
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WatchlistItem])
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a partial update: nil watched or notes keep the stored
// value. Both the entry id and the owner must match.
func (m *WatchlistModel) Update(ctx context.Context, userID, entryID int64, watched *bool, notes *string) (*models.WatchlistEntry, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE watchlist
		SET watched = COALESCE($1, watched),
			notes = COALESCE($2, notes),
			updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, content_id, watched, notes, added_at, updated_at`,
		watched,
		notes,
		entryID,
		userID,
	)
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchlistEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (m *WatchlistModel) Delete(ctx context.Context, userID, entryID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM watchlist WHERE id = $1 AND user_id = $2", entryID, userID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
