package main

import (
	"context"
	"flag"
	"os"
	"time"

	"reelist/proj/internal/config"
	"reelist/proj/internal/lib/logger"
	"reelist/proj/internal/storage/postgres"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	// no .env is fine, secrets may come from the environment directly
	_ = godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")
	app := NewApplication(cfg, log, storage)
	app.bgTasks.Run()
	if err := app.serve(); err != nil {
		log.Error("server stopped", "reason", err.Error())
		os.Exit(1)
	}
}
