package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"reelist/proj/internal/config"
	"reelist/proj/internal/domain/fields"
	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/lib/logger"
	"reelist/proj/internal/storage/postgres"
	pgmodels "reelist/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

// importer pulls popular movies and TV shows from TMDB and upserts them into
// the content table, keyed on tmdb_id. It runs out of band from the API
// server and is the only writer of catalog rows.
func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	pages := flag.Int("pages", 1, "number of popular pages to import per type")
	flag.Parse()
	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	if cfg.Tmdb.ApiKey == "" {
		panic("TMDB_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	cancel()
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()

	client := newTmdbClient(cfg.Tmdb.BaseURL, cfg.Tmdb.ApiKey)
	content := pgmodels.New(storage).Content

	total := 0
	for _, kind := range []string{kindMovie, kindTv} {
		n, err := importKind(context.Background(), log, client, content, kind, *pages)
		if err != nil {
			log.Error("import failed", "kind", kind, "errMsg", err.Error())
			continue
		}
		total += n
	}
	log.Info("import finished", "imported", total)
}

func importKind(
	ctx context.Context,
	log *slog.Logger,
	client *tmdbClient,
	content *pgmodels.ContentModel,
	kind string,
	pages int,
) (int, error) {
	genreNames, err := client.genres(ctx, kind)
	if err != nil {
		return 0, err
	}
	contentType := models.ContentTypeMovie
	if kind == kindTv {
		contentType = models.ContentTypeTvShow
	}
	imported := 0
	for page := 1; page <= pages; page++ {
		log.Info("fetching popular page", "kind", kind, "page", page)
		titles, err := client.popular(ctx, kind, page)
		if err != nil {
			return imported, err
		}
		for _, t := range titles {
			imdbID, err := client.externalIDs(ctx, kind, t.ID)
			if err != nil {
				log.Warn("skipping external ids", "tmdb_id", t.ID, "errMsg", err.Error())
			}
			row := &models.Content{
				Title:       t.title(),
				Type:        contentType,
				PosterURL:   t.posterURL(),
				ReleaseYear: t.releaseYear(),
				Genre:       fields.JoinGenres(t.genreList(genreNames)),
				TmdbID:      t.ID,
			}
			if imdbID != "" {
				row.ImdbID = &imdbID
			}
			if _, err := content.Upsert(ctx, row); err != nil {
				log.Error("upsert failed", "tmdb_id", t.ID, "errMsg", err.Error())
				continue
			}
			imported++
		}
	}
	return imported, nil
}
