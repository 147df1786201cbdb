package main

import (
	"log/slog"

	"reelist/proj/internal/api/tasks"
	"reelist/proj/internal/config"
	"reelist/proj/internal/services"
	"reelist/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	Services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
	bgTasks      *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	bgTasks := tasks.New(log, cfg.BgTasks.MaxWorkers, cfg.BgTasks.QueueSize)
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		queryDecoder: queryDecoder,
		Services:     services.New(log, cfg, storage, bgTasks),
		bgTasks:      bgTasks,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
