package main

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"reelist/proj/internal/domain/filters"
	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"
)

// In-memory storage fakes replicating the SQL semantics of the postgres
// models: conflict-driven upserts, COALESCE partial updates and the
// continue-watching filter.

type memUserStorage struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*models.User
}

func newMemUserStorage() *memUserStorage {
	return &memUserStorage{users: make(map[int64]*models.User)}
}

func (m *memUserStorage) Insert(_ context.Context, username, email string, passwordHash []byte) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return nil, storage.ErrConflict
		}
	}
	m.seq++
	user := &models.User{
		ID:           m.seq,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserStorage) Get(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

type memContentStorage struct {
	mu    sync.Mutex
	items []models.Content
}

func (m *memContentStorage) add(items ...models.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

func (m *memContentStorage) Get(_ context.Context, id int64) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memContentStorage) List(_ context.Context, search string, f filters.Filters) ([]models.Content, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]models.Content, 0, len(m.items))
	for _, c := range m.items {
		if search == "" || strings.Contains(strings.ToLower(c.Title), strings.ToLower(search)) {
			matched = append(matched, c)
		}
	}
	if search != "" {
		sort.Slice(matched, func(i, j int) bool {
			yi, yj := int32(-1), int32(-1)
			if matched[i].ReleaseYear != nil {
				yi = *matched[i].ReleaseYear
			}
			if matched[j].ReleaseYear != nil {
				yj = *matched[j].ReleaseYear
			}
			if yi != yj {
				return yi > yj
			}
			return matched[i].ID < matched[j].ID
		})
	} else {
		sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	}
	total := len(matched)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit()
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

type memWatchlistStorage struct {
	mu      sync.Mutex
	seq     int64
	clock   int64
	entries map[int64]*models.WatchlistEntry
	content *memContentStorage
}

func newMemWatchlistStorage(content *memContentStorage) *memWatchlistStorage {
	return &memWatchlistStorage{
		entries: make(map[int64]*models.WatchlistEntry),
		content: content,
	}
}

// now hands out strictly increasing timestamps so ordering is deterministic.
func (m *memWatchlistStorage) now() time.Time {
	m.clock++
	return time.Unix(m.clock, 0)
}

func (m *memWatchlistStorage) Upsert(_ context.Context, userID, contentID int64, notes *string) (*models.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.ContentID == contentID {
			// conflict path: notes overwritten, watched untouched
			e.Notes = notes
			e.UpdatedAt = m.now()
			cp := *e
			return &cp, nil
		}
	}
	m.seq++
	now := m.now()
	entry := &models.WatchlistEntry{
		ID:        m.seq,
		UserID:    userID,
		ContentID: contentID,
		Watched:   false,
		Notes:     notes,
		AddedAt:   now,
		UpdatedAt: now,
	}
	m.entries[entry.ID] = entry
	cp := *entry
	return &cp, nil
}

func (m *memWatchlistStorage) List(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	m.mu.Lock()
	entries := make([]*models.WatchlistEntry, 0)
	for _, e := range m.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	m.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].AddedAt.After(entries[j].AddedAt) })
	items := make([]models.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		c, err := m.content.Get(ctx, e.ContentID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.WatchlistItem{
			ID:          e.ID,
			Watched:     e.Watched,
			Notes:       e.Notes,
			AddedAt:     e.AddedAt,
			UpdatedAt:   e.UpdatedAt,
			ContentID:   c.ID,
			Title:       c.Title,
			Type:        c.Type,
			PosterURL:   c.PosterURL,
			ReleaseYear: c.ReleaseYear,
			Genre:       c.Genre,
			TmdbID:      c.TmdbID,
		})
	}
	return items, nil
}

func (m *memWatchlistStorage) Update(_ context.Context, userID, entryID int64, watched *bool, notes *string) (*models.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID {
		return nil, storage.ErrNotFound
	}
	if watched != nil {
		e.Watched = *watched
	}
	if notes != nil {
		e.Notes = notes
	}
	e.UpdatedAt = m.now()
	cp := *e
	return &cp, nil
}

func (m *memWatchlistStorage) Delete(_ context.Context, userID, entryID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok || e.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.entries, entryID)
	return nil
}

type progressKey struct {
	userID    int64
	contentID int64
}

type memProgressStorage struct {
	mu      sync.Mutex
	seq     int64
	clock   int64
	records map[progressKey]*models.WatchProgress
	content *memContentStorage
}

func newMemProgressStorage(content *memContentStorage) *memProgressStorage {
	return &memProgressStorage{
		records: make(map[progressKey]*models.WatchProgress),
		content: content,
	}
}

func (m *memProgressStorage) now() time.Time {
	m.clock++
	return time.Unix(m.clock, 0)
}

func (m *memProgressStorage) Upsert(_ context.Context, userID, contentID int64, progressSeconds, durationSeconds int) (*models.WatchProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := progressKey{userID, contentID}
	record, ok := m.records[key]
	if !ok {
		m.seq++
		record = &models.WatchProgress{ID: m.seq, UserID: userID, ContentID: contentID}
		m.records[key] = record
	}
	record.ProgressSeconds = progressSeconds
	record.DurationSeconds = durationSeconds
	record.LastWatched = m.now()
	cp := *record
	return &cp, nil
}

func (m *memProgressStorage) Get(_ context.Context, userID, contentID int64) (*models.WatchProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[progressKey{userID, contentID}]; ok {
		cp := *record
		return &cp, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memProgressStorage) ListResumable(ctx context.Context, userID int64, threshold float64, limit int) ([]models.ContinueWatchingItem, error) {
	m.mu.Lock()
	records := make([]*models.WatchProgress, 0)
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if r.ProgressSeconds > 0 && float64(r.ProgressSeconds) < float64(r.DurationSeconds)*threshold {
			records = append(records, r)
		}
	}
	m.mu.Unlock()
	sort.Slice(records, func(i, j int) bool { return records[i].LastWatched.After(records[j].LastWatched) })
	if len(records) > limit {
		records = records[:limit]
	}
	items := make([]models.ContinueWatchingItem, 0, len(records))
	for _, r := range records {
		c, err := m.content.Get(ctx, r.ContentID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.ContinueWatchingItem{
			ID:              r.ID,
			ContentID:       r.ContentID,
			ProgressSeconds: r.ProgressSeconds,
			DurationSeconds: r.DurationSeconds,
			LastWatched:     r.LastWatched,
			Title:           c.Title,
			Type:            c.Type,
			PosterURL:       c.PosterURL,
			ReleaseYear:     c.ReleaseYear,
			Genre:           c.Genre,
			TmdbID:          c.TmdbID,
			ImdbID:          c.ImdbID,
		})
	}
	return items, nil
}

func (m *memProgressStorage) Delete(_ context.Context, userID, contentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, progressKey{userID, contentID})
	return nil
}
