package models

import (
	"reelist/proj/internal/domain/fields"
	"time"
)

const (
	ContentTypeMovie  = "movie"
	ContentTypeTvShow = "tv_show"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// Content is a catalog row. It is populated by the offline importer and never
// mutated by user-facing requests.
type Content struct {
	ID          int64            `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Type        string           `db:"type" json:"type"` // movie | tv_show
	PosterURL   *string          `db:"poster_url" json:"poster_url"`
	ReleaseYear *int32           `db:"release_year" json:"release_year"`
	Genre       fields.GenreList `db:"genre" json:"genre"`
	TmdbID      int64            `db:"tmdb_id" json:"tmdb_id"`
	ImdbID      *string          `db:"imdb_id" json:"imdb_id"`
}

type WatchlistEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ContentID int64     `db:"content_id" json:"content_id"`
	Watched   bool      `db:"watched" json:"watched"`
	Notes     *string   `db:"notes" json:"notes"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// WatchlistItem is a watchlist entry joined with its content metadata,
// as returned by GET /api/watchlist.
type WatchlistItem struct {
	ID          int64            `db:"id" json:"id"`
	Watched     bool             `db:"watched" json:"watched"`
	Notes       *string          `db:"notes" json:"notes"`
	AddedAt     time.Time        `db:"added_at" json:"added_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
	ContentID   int64            `db:"content_id" json:"content_id"`
	Title       string           `db:"title" json:"title"`
	Type        string           `db:"type" json:"type"`
	PosterURL   *string          `db:"poster_url" json:"poster_url"`
	ReleaseYear *int32           `db:"release_year" json:"release_year"`
	Genre       fields.GenreList `db:"genre" json:"genre"`
	TmdbID      int64            `db:"tmdb_id" json:"tmdb_id"`
}

type WatchProgress struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ContentID       int64     `db:"content_id" json:"content_id"`
	ProgressSeconds int       `db:"progress_seconds" json:"progress_seconds"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	LastWatched     time.Time `db:"last_watched" json:"last_watched"`
}

// ContinueWatchingItem is a progress row joined with content metadata,
// as returned by GET /api/progress.
type ContinueWatchingItem struct {
	ID              int64            `db:"id" json:"id"`
	ContentID       int64            `db:"content_id" json:"content_id"`
	ProgressSeconds int              `db:"progress_seconds" json:"progress_seconds"`
	DurationSeconds int              `db:"duration_seconds" json:"duration_seconds"`
	LastWatched     time.Time        `db:"last_watched" json:"last_watched"`
	Title           string           `db:"title" json:"title"`
	Type            string           `db:"type" json:"type"`
	PosterURL       *string          `db:"poster_url" json:"poster_url"`
	ReleaseYear     *int32           `db:"release_year" json:"release_year"`
	Genre           fields.GenreList `db:"genre" json:"genre"`
	TmdbID          int64            `db:"tmdb_id" json:"tmdb_id"`
	ImdbID          *string          `db:"imdb_id" json:"imdb_id"`
}
