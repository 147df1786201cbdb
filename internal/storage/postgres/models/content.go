package models

import (
	"context"
	"errors"
	"fmt"

	"reelist/proj/internal/domain/filters"
	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentModel struct {
	DB *pgxpool.Pool
}

func (m *ContentModel) Get(ctx context.Context, id int64) (*models.Content, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, title, type, poster_url, release_year, genre, tmdb_id, imdb_id
		FROM content WHERE id = $1`,
		id,
	)
	content, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Content])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

// List returns one page of the catalog plus the total row count.
// Searching changes the sort key: matching rows come back newest first,
// a plain listing keeps insertion order.
func (m *ContentModel) List(ctx context.Context, search string, f filters.Filters) ([]models.Content, int, error) {
	orderBy := "id ASC"
	if search != "" {
		orderBy = "release_year DESC NULLS LAST, id ASC"
	}
	query := fmt.Sprintf(`
	SELECT count(*) OVER() AS total, id, title, type, poster_url, release_year, genre, tmdb_id, imdb_id
	FROM content
	WHERE (title ILIKE '%%' || $1 || '%%' OR $1 = '')
	ORDER BY %s
	LIMIT $2 OFFSET $3
	`, orderBy)
	rows, _ := m.DB.Query(ctx, query, search, f.Limit(), f.Offset())
	type row struct {
		Total int `db:"total"`
		models.Content
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Content{}, 0, nil
	}
	items := make([]models.Content, 0, len(outputRows))
	for _, r := range outputRows {
		items = append(items, r.Content)
	}
	return items, outputRows[0].Total, nil
}

// Upsert inserts a catalog row keyed on tmdb_id, overwriting metadata on
// conflict. Used by the offline importer only.
func (m *ContentModel) Upsert(ctx context.Context, c *models.Content) (*models.Content, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO content (tmdb_id, imdb_id, title, type, poster_url, release_year, genre)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			imdb_id = EXCLUDED.imdb_id,
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			poster_url = EXCLUDED.poster_url,
			release_year = EXCLUDED.release_year,
			genre = EXCLUDED.genre
		RETURNING id, title, type, poster_url, release_year, genre, tmdb_id, imdb_id`,
		c.TmdbID,
		c.ImdbID,
		c.Title,
		c.Type,
		c.PosterURL,
		c.ReleaseYear,
		c.Genre,
	)
	content, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Content])
	if err != nil {
		return nil, err
	}
	return &content, nil
}
