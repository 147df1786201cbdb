package watchlist

import (
	"context"
	"errors"
	"log/slog"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"
)

type WatchlistStorage interface {
	Upsert(ctx context.Context, userID, contentID int64, notes *string) (*models.WatchlistEntry, error)
	List(ctx context.Context, userID int64) ([]models.WatchlistItem, error)
	Update(ctx context.Context, userID, entryID int64, watched *bool, notes *string) (*models.WatchlistEntry, error)
	Delete(ctx context.Context, userID, entryID int64) error
}

type WatchlistService struct {
	log     *slog.Logger
	storage WatchlistStorage
}

func New(log *slog.Logger, storage WatchlistStorage) *WatchlistService {
	return &WatchlistService{
		log:     log,
		storage: storage,
	}
}

// AddOrUpdate puts a title on the user's watchlist. Adding the same title
// again overwrites the notes only; the watched flag survives the upsert.
func (s *WatchlistService) AddOrUpdate(ctx context.Context, userID, contentID int64, notes *string) (*models.WatchlistEntry, error) {
	const op = "watchlist.WatchlistService.AddOrUpdate"
	log := s.log.With("op", op, "user_id", userID, "content_id", contentID)
	entry, err := s.storage.Upsert(ctx, userID, contentID, notes)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return entry, nil
}

func (s *WatchlistService) List(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	const op = "watchlist.WatchlistService.List"
	log := s.log.With("op", op, "user_id", userID)
	items, err := s.storage.List(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return items, nil
}

// Update applies a partial update: a nil watched or notes keeps the stored
// value. A row owned by another user is reported as not found, never as
// forbidden, so existence doesn't leak.
func (s *WatchlistService) Update(ctx context.Context, userID, entryID int64, watched *bool, notes *string) (*models.WatchlistEntry, error) {
	const op = "watchlist.WatchlistService.Update"
	log := s.log.With("op", op, "user_id", userID, "entry_id", entryID)
	entry, err := s.storage.Update(ctx, userID, entryID, watched, notes)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("watchlist entry not found")
			return nil, ErrEntryNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return entry, nil
}

func (s *WatchlistService) Remove(ctx context.Context, userID, entryID int64) error {
	const op = "watchlist.WatchlistService.Remove"
	log := s.log.With("op", op, "user_id", userID, "entry_id", entryID)
	if err := s.storage.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("watchlist entry not found")
			return ErrEntryNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
