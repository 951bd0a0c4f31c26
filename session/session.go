// Package session implements the per-user subscription dialogue as an
// explicit state machine. A session is created when a search returns
// results and advanced once per inbound reply; waiting for the next reply
// is represented by the session simply existing in the registry.
package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fournest/mpsub/moviepilot"
)

// TurnTimeout is the sliding window a user has to answer each prompt.
// Every invalid reply refreshes it.
const TurnTimeout = 60 * time.Second

// Phase is the dialogue state a session is waiting in
type Phase int

const (
	// PhaseMovieChoice waits for a 1-based index into the search results
	PhaseMovieChoice Phase = iota
	// PhaseSeasonChoice waits for a season number of the selected title
	PhaseSeasonChoice
)

// String returns a readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseMovieChoice:
		return "awaiting_movie_choice"
	case PhaseSeasonChoice:
		return "awaiting_season_choice"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of one turn
type Outcome int

const (
	// OutcomeContinue means the session is still live and waiting
	OutcomeContinue Outcome = iota
	// OutcomeSubscribed means a subscription was placed
	OutcomeSubscribed
	// OutcomeCancelled means the user replied 0
	OutcomeCancelled
	// OutcomeTimedOut means the deadline elapsed with no qualifying reply
	OutcomeTimedOut
	// OutcomeErrored means a backend call failed while resolving a choice
	OutcomeErrored
)

// String returns a readable outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeSubscribed:
		return "subscribed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the session
func (o Outcome) Terminal() bool {
	return o != OutcomeContinue
}

// Catalog is the slice of the MoviePilot client a session needs
type Catalog interface {
	ListSeasons(ctx context.Context, tmdbID moviepilot.TMDBID) ([]moviepilot.Season, error)
	SubscribeMovie(ctx context.Context, movie moviepilot.Movie) (bool, error)
	SubscribeSeries(ctx context.Context, movie moviepilot.Movie, season int) (bool, error)
}

// Result is what one turn produced: the outcome plus the reply to show the
// user
type Result struct {
	Outcome Outcome
	Reply   string
}

// Session tracks one user's in-progress search → select → subscribe
// dialogue. All transitions go through Advance, serialized by the session's
// own mutex so turns for the same owner are totally ordered.
type Session struct {
	mu       sync.Mutex
	owner    string
	phase    Phase
	movies   []moviepilot.Movie
	selected *moviepilot.Movie
	seasons  []moviepilot.Season
	deadline time.Time

	catalog Catalog
	logger  zerolog.Logger
}

// New creates a session in PhaseMovieChoice. movies must be non-empty.
func New(owner string, movies []moviepilot.Movie, catalog Catalog, logger zerolog.Logger, now time.Time) *Session {
	return &Session{
		owner:    owner,
		phase:    PhaseMovieChoice,
		movies:   movies,
		deadline: now.Add(TurnTimeout),
		catalog:  catalog,
		logger:   logger,
	}
}

// Owner returns the owner identity
func (s *Session) Owner() string {
	return s.owner
}

// Phase returns the current dialogue phase
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Deadline returns the current turn deadline
func (s *Session) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deadline
}

// Expired reports whether the turn deadline has elapsed
func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.deadline)
}

// Advance processes one user reply. Invalid input keeps the session in its
// current phase and refreshes the deadline; 0 always cancels; a reply
// arriving after the deadline times the session out.
func (s *Session) Advance(ctx context.Context, input string, now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.deadline) {
		s.logger.Info().Str("owner", s.owner).Stringer("phase", s.phase).Msg("Session timed out")
		return Result{Outcome: OutcomeTimedOut, Reply: msgTimedOut}
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		s.deadline = now.Add(TurnTimeout)
		return Result{Outcome: OutcomeContinue, Reply: msgNotANumber}
	}

	if choice == 0 {
		s.logger.Info().Str("owner", s.owner).Msg("Session cancelled by user")
		return Result{Outcome: OutcomeCancelled, Reply: msgCancelled}
	}

	switch s.phase {
	case PhaseSeasonChoice:
		return s.advanceSeason(ctx, choice, now)
	default:
		return s.advanceMovie(ctx, choice, now)
	}
}

// advanceMovie resolves a 1-based index into the search results
func (s *Session) advanceMovie(ctx context.Context, choice int, now time.Time) Result {
	idx := choice - 1
	if idx < 0 || idx >= len(s.movies) {
		s.deadline = now.Add(TurnTimeout)
		return Result{Outcome: OutcomeContinue, Reply: msgIndexOutOfRange}
	}

	selected := s.movies[idx]
	s.selected = &selected
	s.logger.Info().Str("owner", s.owner).Str("title", selected.Title).Msg("User selected title")

	if selected.Type.IsSeries() {
		return s.enterSeasonChoice(ctx, selected, now)
	}

	ok, err := s.catalog.SubscribeMovie(ctx, selected)
	if err != nil {
		s.logger.Error().Err(err).Str("title", selected.Title).Msg("Movie subscription failed")
		return Result{Outcome: OutcomeErrored, Reply: msgServiceUnavailable}
	}
	if !ok {
		return Result{Outcome: OutcomeErrored, Reply: msgSubscribeRejected}
	}
	return Result{Outcome: OutcomeSubscribed, Reply: movieSubscribed(selected)}
}

// enterSeasonChoice fetches the season list and moves to PhaseSeasonChoice
func (s *Session) enterSeasonChoice(ctx context.Context, selected moviepilot.Movie, now time.Time) Result {
	seasons, err := s.catalog.ListSeasons(ctx, selected.TMDBID)
	if err != nil {
		if errors.Is(err, moviepilot.ErrInvalidTMDBID) {
			s.logger.Warn().Str("title", selected.Title).
				Str("tmdb_id", string(selected.TMDBID)).
				Msg("Series is missing a usable TMDB id")
			return Result{Outcome: OutcomeErrored, Reply: msgIncompleteInfo}
		}
		s.logger.Error().Err(err).Str("title", selected.Title).Msg("Failed to fetch seasons")
		return Result{Outcome: OutcomeErrored, Reply: msgSeasonsUnavailable}
	}
	if len(seasons) == 0 {
		return Result{Outcome: OutcomeErrored, Reply: msgNoSeasons}
	}

	s.phase = PhaseSeasonChoice
	s.seasons = seasons
	s.deadline = now.Add(TurnTimeout)
	return Result{Outcome: OutcomeContinue, Reply: seasonList(selected, seasons)}
}

// advanceSeason resolves a season number against the fetched list. Matching
// is an exact integer comparison; nothing fuzzy.
func (s *Session) advanceSeason(ctx context.Context, choice int, now time.Time) Result {
	valid := false
	for _, season := range s.seasons {
		if season.Number == choice {
			valid = true
			break
		}
	}
	if !valid {
		s.deadline = now.Add(TurnTimeout)
		return Result{Outcome: OutcomeContinue, Reply: msgInvalidSeason}
	}

	selected := *s.selected
	s.logger.Info().Str("owner", s.owner).
		Str("title", selected.Title).
		Int("season", choice).
		Msg("User selected season")

	ok, err := s.catalog.SubscribeSeries(ctx, selected, choice)
	if err != nil {
		s.logger.Error().Err(err).Str("title", selected.Title).Msg("Series subscription failed")
		return Result{Outcome: OutcomeErrored, Reply: msgServiceUnavailable}
	}
	if !ok {
		return Result{Outcome: OutcomeErrored, Reply: msgSubscribeRejected}
	}
	return Result{Outcome: OutcomeSubscribed, Reply: seriesSubscribed(selected, choice)}
}
