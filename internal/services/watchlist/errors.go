package watchlist

import "errors"

var ErrEntryNotFound = errors.New("watchlist item not found")
