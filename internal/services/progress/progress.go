package progress

import (
	"context"
	"errors"
	"log/slog"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"
)

const (
	// ResumableThreshold marks a title as essentially finished once playback
	// passes this fraction of the duration.
	ResumableThreshold = 0.95
	// ContinueWatchingLimit caps the continue-watching list.
	ContinueWatchingLimit = 10
)

type ProgressStorage interface {
	Upsert(ctx context.Context, userID, contentID int64, progressSeconds, durationSeconds int) (*models.WatchProgress, error)
	Get(ctx context.Context, userID, contentID int64) (*models.WatchProgress, error)
	ListResumable(ctx context.Context, userID int64, threshold float64, limit int) ([]models.ContinueWatchingItem, error)
	Delete(ctx context.Context, userID, contentID int64) error
}

type ProgressService struct {
	log     *slog.Logger
	storage ProgressStorage
}

func New(log *slog.Logger, storage ProgressStorage) *ProgressService {
	return &ProgressService{
		log:     log,
		storage: storage,
	}
}

// Save records a playback tick. Last write wins: progress, duration and the
// last-watched timestamp are fully overwritten on every call.
func (s *ProgressService) Save(ctx context.Context, userID, contentID int64, progressSeconds, durationSeconds int) (*models.WatchProgress, error) {
	const op = "progress.ProgressService.Save"
	log := s.log.With("op", op, "user_id", userID, "content_id", contentID)
	record, err := s.storage.Upsert(ctx, userID, contentID, progressSeconds, durationSeconds)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return record, nil
}

// Get returns the stored progress, or a zeroed record when the user never
// started this title. Cold starts are not an error.
func (s *ProgressService) Get(ctx context.Context, userID, contentID int64) (*models.WatchProgress, error) {
	const op = "progress.ProgressService.Get"
	log := s.log.With("op", op, "user_id", userID, "content_id", contentID)
	record, err := s.storage.Get(ctx, userID, contentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &models.WatchProgress{UserID: userID, ContentID: contentID}, nil
		}
		log.Error(err.Error())
		return nil, err
	}
	return record, nil
}

// ContinueWatching lists up to ten titles the user can actually resume:
// started, not past the finished threshold, most recently watched first.
func (s *ProgressService) ContinueWatching(ctx context.Context, userID int64) ([]models.ContinueWatchingItem, error) {
	const op = "progress.ProgressService.ContinueWatching"
	log := s.log.With("op", op, "user_id", userID)
	items, err := s.storage.ListResumable(ctx, userID, ResumableThreshold, ContinueWatchingLimit)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return items, nil
}

// Remove drops the progress record, typically when playback finished.
// Removing a record that doesn't exist succeeds.
func (s *ProgressService) Remove(ctx context.Context, userID, contentID int64) error {
	const op = "progress.ProgressService.Remove"
	log := s.log.With("op", op, "user_id", userID, "content_id", contentID)
	if err := s.storage.Delete(ctx, userID, contentID); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}
