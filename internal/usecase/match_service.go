package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/platform/cache"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

// MatchProvider loads the current normalized match list from the
// upstream odds source.
type MatchProvider interface {
	CurrentMatches(ctx context.Context) ([]match.Match, error)
}

// MatchFilter narrows the served match list. Empty or whitespace-only
// values mean no filter; both filters compose with AND.
type MatchFilter struct {
	Competition string
	Search      string
}

// MatchService owns the match snapshot cache and serves filtered
// reads from it. A cold or stale read refreshes synchronously through
// the provider; refresh failures degrade to stale data or an empty
// list, never to an error at the HTTP boundary.
type MatchService struct {
	provider   MatchProvider
	snapshot   *cache.Snapshot[[]match.Match]
	serveStale bool
	logger     *logging.Logger
}

func NewMatchService(
	provider MatchProvider,
	ttl time.Duration,
	serveStale bool,
	clock func() time.Time,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		provider:   provider,
		snapshot:   cache.NewSnapshot[[]match.Match](ttl, clock),
		serveStale: serveStale,
		logger:     logger,
	}
}

// List returns the current matches, refreshed when stale and narrowed
// by the filter.
func (s *MatchService) List(ctx context.Context, filter MatchFilter) []match.Match {
	return applyFilter(s.load(ctx), filter)
}

// GetByID finds one match by its derived identifier.
func (s *MatchService) GetByID(ctx context.Context, id string) (match.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	for _, m := range s.load(ctx) {
		if m.ID == id {
			return m, nil
		}
	}
	return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, id)
}

// Invalidate forces the next read into a refresh without discarding
// the cached matches.
func (s *MatchService) Invalidate() {
	s.snapshot.Invalidate()
}

// CacheAge is the time since the last successful refresh.
func (s *MatchService) CacheAge() time.Duration {
	return s.snapshot.Age()
}

// CacheFresh reports whether a read right now would be served without
// an upstream call.
func (s *MatchService) CacheFresh() bool {
	return s.snapshot.Fresh()
}

// LastRefreshed is the timestamp of the last successful refresh.
func (s *MatchService) LastRefreshed() (time.Time, bool) {
	_, fetchedAt, ok := s.snapshot.Peek()
	return fetchedAt, ok
}

// CachedCount is the size of the cached list without triggering a
// refresh.
func (s *MatchService) CachedCount() int {
	matches, _, ok := s.snapshot.Peek()
	if !ok {
		return 0
	}
	return len(matches)
}

func (s *MatchService) load(ctx context.Context) []match.Match {
	matches, err := s.snapshot.GetOrRefresh(ctx, func(ctx context.Context) ([]match.Match, error) {
		fetched, fetchErr := s.provider.CurrentMatches(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.logger.InfoContext(ctx, "match cache refreshed", "count", len(fetched))
		return fetched, nil
	})
	if err == nil {
		return matches
	}

	if s.serveStale {
		if stale, fetchedAt, ok := s.snapshot.Peek(); ok {
			s.logger.WarnContext(ctx, "refresh failed, serving stale matches",
				"error", err,
				"fetched_at", fetchedAt,
				"count", len(stale),
			)
			return stale
		}
	}

	s.logger.ErrorContext(ctx, "refresh failed, serving empty match list", "error", err)
	return []match.Match{}
}

func applyFilter(matches []match.Match, filter MatchFilter) []match.Match {
	competition := strings.TrimSpace(filter.Competition)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if competition == "" && search == "" {
		return matches
	}

	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if competition != "" && !strings.EqualFold(m.Competition, competition) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Label()), search) &&
			!strings.Contains(strings.ToLower(m.Competition), search) {
			continue
		}
		out = append(out, m)
	}

	return out
}
