package models

import "reelist/proj/internal/storage/postgres"

type Models struct {
	Users     *UserModel
	Content   *ContentModel
	Watchlist *WatchlistModel
	Progress  *ProgressModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Users:     &UserModel{db.Conn},
		Content:   &ContentModel{db.Conn},
		Watchlist: &WatchlistModel{db.Conn},
		Progress:  &ProgressModel{db.Conn},
	}
}
