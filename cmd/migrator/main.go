package main

import (
	"database/sql"
	"embed"
	"flag"

	"reelist/proj/internal/config"
	"reelist/proj/internal/lib/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	command := flag.String("command", "up", "goose command: up | down | status")
	flag.Parse()
	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	db, err := sql.Open("pgx", cfg.DB.Dsn)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	default:
		log.Error("unknown command", "command", *command)
		return
	}
	if err != nil {
		panic(err)
	}
	log.Info("migrations finished", "command", *command)
}
