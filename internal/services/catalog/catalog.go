package catalog

import (
	"context"
	"errors"
	"log/slog"

	"reelist/proj/internal/domain/filters"
	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"
)

type ContentStorage interface {
	Get(ctx context.Context, id int64) (*models.Content, error)
	List(ctx context.Context, search string, f filters.Filters) ([]models.Content, int, error)
}

type CatalogService struct {
	log     *slog.Logger
	storage ContentStorage
}

func New(log *slog.Logger, storage ContentStorage) *CatalogService {
	return &CatalogService{
		log:     log,
		storage: storage,
	}
}

// List returns one catalog page plus pagination metadata. Filters are
// normalized here so absent or garbage page/limit values fall back to
// defaults instead of failing the request.
func (s *CatalogService) List(ctx context.Context, f filters.Filters) ([]models.Content, filters.Metadata, error) {
	const op = "catalog.CatalogService.List"
	log := s.log.With("op", op, "search", f.Search)
	f.Normalize()
	items, totalRecords, err := s.storage.List(ctx, f.Search, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return items, filters.CalculateMetadata(totalRecords, f.Page, f.PageSize), nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Content, error) {
	const op = "catalog.CatalogService.Get"
	log := s.log.With("op", op, "id", id)
	content, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("content not found")
			return nil, ErrContentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return content, nil
}
