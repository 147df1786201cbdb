package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	kindMovie = "movie"
	kindTv    = "tv"

	posterBaseURL = "https://image.tmdb.org/t/p/w500"
)

type tmdbClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newTmdbClient(baseURL, apiKey string) *tmdbClient {
	return &tmdbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type tmdbTitle struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	GenreIDs     []int  `json:"genre_ids"`
}

// title returns the movie title or the TV show name, whichever is set.
func (t *tmdbTitle) title() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

func (t *tmdbTitle) posterURL() *string {
	if t.PosterPath == "" {
		return nil
	}
	u := posterBaseURL + t.PosterPath
	return &u
}

func (t *tmdbTitle) releaseYear() *int32 {
	date := t.ReleaseDate
	if date == "" {
		date = t.FirstAirDate
	}
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	y := int32(year)
	return &y
}

func (t *tmdbTitle) genreList(names map[int]string) []string {
	genres := make([]string, 0, len(t.GenreIDs))
	for _, id := range t.GenreIDs {
		if name, ok := names[id]; ok {
			genres = append(genres, name)
		}
	}
	return genres
}

func (c *tmdbClient) get(ctx context.Context, path string, query url.Values, dst any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s failed: %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *tmdbClient) popular(ctx context.Context, kind string, page int) ([]tmdbTitle, error) {
	var data struct {
		Results []tmdbTitle `json:"results"`
	}
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	if err := c.get(ctx, fmt.Sprintf("/%s/popular", kind), query, &data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

func (c *tmdbClient) genres(ctx context.Context, kind string) (map[int]string, error) {
	var data struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, fmt.Sprintf("/genre/%s/list", kind), nil, &data); err != nil {
		return nil, err
	}
	names := make(map[int]string, len(data.Genres))
	for _, g := range data.Genres {
		names[g.ID] = g.Name
	}
	return names, nil
}

func (c *tmdbClient) externalIDs(ctx context.Context, kind string, id int64) (string, error) {
	var data struct {
		ImdbID string `json:"imdb_id"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/external_ids", kind, id), nil, &data); err != nil {
		return "", err
	}
	return data.ImdbID, nil
}
