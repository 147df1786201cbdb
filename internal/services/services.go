package services

import (
	"log/slog"

	"reelist/proj/internal/config"
	"reelist/proj/internal/mails"
	"reelist/proj/internal/services/auth"
	"reelist/proj/internal/services/catalog"
	"reelist/proj/internal/services/progress"
	"reelist/proj/internal/services/watchlist"
	"reelist/proj/internal/storage/postgres"
	"reelist/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth      *auth.AuthService
	Catalog   *catalog.CatalogService
	Watchlist *watchlist.WatchlistService
	Progress  *progress.ProgressService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	db := models.New(storage)
	return &Services{
		Auth:      auth.New(log, db.Users, mailer, taskExecutor, cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Catalog:   catalog.New(log, db.Content),
		Watchlist: watchlist.New(log, db.Watchlist),
		Progress:  progress.New(log, db.Progress),
	}
}
