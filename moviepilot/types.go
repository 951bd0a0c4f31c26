package moviepilot

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MediaType is the media classification used by MoviePilot. The backend
// reports and expects the Chinese labels on the wire.
type MediaType string

const (
	MediaTypeMovie  MediaType = "电影"
	MediaTypeSeries MediaType = "电视剧"
)

// IsMovie reports whether the media type is a movie
func (t MediaType) IsMovie() bool {
	return t == MediaTypeMovie
}

// IsSeries reports whether the media type is a TV series
func (t MediaType) IsSeries() bool {
	return t == MediaTypeSeries
}

// TMDBID is a TMDB identifier as delivered by the search endpoint.
// Upstream data is not always clean: the field may arrive as a number, a
// numeric string, or junk like "tv"/"movie" scraped from a URL slug, so it
// is kept as a string and validated before use.
type TMDBID string

// UnmarshalJSON accepts both JSON numbers and strings
func (id *TMDBID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = TMDBID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TMDBID(n.String())
	return nil
}

// MarshalJSON emits a number when the identifier is numeric, otherwise the
// raw string, matching what the subscribe endpoint expects
func (id TMDBID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}

// Int parses the identifier as an integer
func (id TMDBID) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
}

// Movie is a single search result. Results are immutable once returned;
// sessions reference them but never mutate them.
type Movie struct {
	Title  string    `json:"title"`
	Year   string    `json:"year"`
	Type   MediaType `json:"type"`
	TMDBID TMDBID    `json:"tmdb_id"`
}

// Season is one season of a TV title
type Season struct {
	Number int    `json:"season_number"`
	Name   string `json:"name"`
}

// DownloadState describes the state of a download task
type DownloadState string

const (
	StateDownloading DownloadState = "downloading"
	StateSeeding     DownloadState = "seeding"
	StatePaused      DownloadState = "paused"
	StateError       DownloadState = "error"
	StateUnknown     DownloadState = "unknown"
)

// DownloadTask is a snapshot of one active download. Tasks are transient
// and regenerated on every progress query, never cached.
type DownloadTask struct {
	Title    string
	Season   string
	Episode  string
	Progress float64
	State    DownloadState
	Speed    string
}

// downloadTaskResponse is the wire shape of a download task. Title, season
// and episode live in a nested media object with a top-level title fallback.
type downloadTaskResponse struct {
	Title    string  `json:"title"`
	Progress float64 `json:"progress"`
	State    string  `json:"state"`
	Speed    string  `json:"speed"`
	Media    struct {
		Title   string `json:"title"`
		Season  string `json:"season"`
		Episode string `json:"episode"`
	} `json:"media"`
}

func (r downloadTaskResponse) toTask() DownloadTask {
	task := DownloadTask{
		Title:    r.Media.Title,
		Season:   r.Media.Season,
		Episode:  r.Media.Episode,
		Progress: r.Progress,
		Speed:    r.Speed,
	}
	if task.Title == "" {
		task.Title = r.Title
	}
	switch DownloadState(strings.ToLower(r.State)) {
	case StateDownloading, StateSeeding, StatePaused, StateError:
		task.State = DownloadState(strings.ToLower(r.State))
	default:
		task.State = StateUnknown
	}
	return task
}

// loginResponse is the body returned by the access-token endpoint
type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// subscribeRequest is the body sent to the subscribe endpoint. Type is set
// for movies, Season for series; the two are mutually exclusive.
type subscribeRequest struct {
	Name   string `json:"name"`
	TMDBID TMDBID `json:"tmdbid"`
	Type   string `json:"type,omitempty"`
	Season int    `json:"season,omitempty"`
}

// subscribeResponse is the body returned by the subscribe endpoint
type subscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
