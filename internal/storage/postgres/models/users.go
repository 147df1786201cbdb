package models

import (
	"context"
	"errors"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"
	"reelist/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) Insert(ctx context.Context, username, email string, passwordHash []byte) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at`,
		username,
		email,
		passwordHash,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1",
		id,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
