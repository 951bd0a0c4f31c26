package moviepilot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API paths
const (
	loginPath     = "/api/v1/login/access-token"
	searchPath    = "/api/v1/media/search"
	seasonsPath   = "/api/v1/tmdb/seasons/%d"
	subscribePath = "/api/v1/subscribe/"
	downloadPath  = "/api/v1/download/"
)

// login submits the username/password form and returns the new token with
// its lifetime. Used exclusively by the token cache.
func (c *Client) login(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{
		"username": {c.username},
		"password": {c.password},
	}

	body, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   loginPath,
		form:   form,
	})
	if err != nil {
		return "", 0, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", 0, fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", 0, fmt.Errorf("%w: login response missing access_token", ErrUnauthorized)
	}

	ttl := c.tokenLifetime
	if resp.ExpiresIn > 0 {
		ttl = time.Duration(resp.ExpiresIn) * time.Second
	}

	c.logger.Info().Dur("ttl", ttl).Msg("Obtained MoviePilot access token")
	return resp.AccessToken, ttl, nil
}

// SearchMedia searches the catalog by title. An empty result list is a
// valid "no matches" outcome; a non-nil error means the transport failed.
func (c *Client) SearchMedia(ctx context.Context, name string) ([]Movie, error) {
	body, err := c.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   searchPath,
		query:  url.Values{"title": {name}},
		auth:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search media: %w", err)
	}

	var movies []Movie
	if err := json.Unmarshal(body, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	c.logger.Debug().Str("title", name).Int("count", len(movies)).Msg("Search complete")
	return movies, nil
}

// ListSeasons fetches the season list for a TV title. The identifier is
// validated first: empty values, the literal slugs "tv"/"movie" and
// non-numeric strings are upstream data defects and are rejected without a
// network call.
func (c *Client) ListSeasons(ctx context.Context, tmdbID TMDBID) ([]Season, error) {
	trimmed := strings.TrimSpace(string(tmdbID))
	if trimmed == "" || trimmed == "tv" || trimmed == "movie" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTMDBID, trimmed)
	}
	id, err := tmdbID.Int()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTMDBID, trimmed)
	}

	body, err := c.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   fmt.Sprintf(seasonsPath, id),
		auth:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}

	var seasons []Season
	if err := json.Unmarshal(body, &seasons); err != nil {
		return nil, fmt.Errorf("failed to parse seasons response: %w", err)
	}

	c.logger.Debug().Int64("tmdb_id", id).Int("count", len(seasons)).Msg("Retrieved season list")
	return seasons, nil
}

// SubscribeMovie subscribes to a movie. The boolean mirrors the success
// flag in the response body; a missing or unparseable body counts as
// failure.
func (c *Client) SubscribeMovie(ctx context.Context, movie Movie) (bool, error) {
	body, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   subscribePath,
		body: subscribeRequest{
			Name:   movie.Title,
			TMDBID: movie.TMDBID,
			Type:   string(MediaTypeMovie),
		},
		auth: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to subscribe movie: %w", err)
	}

	success := parseSubscribeResponse(body)
	if success {
		c.logger.Info().Str("title", movie.Title).Msg("Subscribed movie")
	}
	return success, nil
}

// SubscribeSeries subscribes to one season of a TV title
func (c *Client) SubscribeSeries(ctx context.Context, movie Movie, season int) (bool, error) {
	body, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   subscribePath,
		body: subscribeRequest{
			Name:   movie.Title,
			TMDBID: movie.TMDBID,
			Season: season,
		},
		auth: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to subscribe series: %w", err)
	}

	success := parseSubscribeResponse(body)
	if success {
		c.logger.Info().Str("title", movie.Title).Int("season", season).Msg("Subscribed series")
	}
	return success, nil
}

func parseSubscribeResponse(body []byte) bool {
	var resp subscribeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false
	}
	return resp.Success
}

// DownloadProgress fetches the current download tasks. A nil error with an
// empty slice means nothing is downloading; a non-nil error means the
// service was unreachable.
func (c *Client) DownloadProgress(ctx context.Context) ([]DownloadTask, error) {
	body, err := c.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   downloadPath,
		auth:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get download progress: %w", err)
	}

	var raw []downloadTaskResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse download response: %w", err)
	}

	tasks := make([]DownloadTask, 0, len(raw))
	for _, r := range raw {
		tasks = append(tasks, r.toTask())
	}

	c.logger.Debug().Int("count", len(tasks)).Msg("Retrieved download tasks")
	return tasks, nil
}
