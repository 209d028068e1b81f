package oddsmonitor

import (
	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

const missingTeamPlaceholder = "?"

// Normalizer turns raw provider items into the internal match model.
// A malformed item is logged and skipped; it never aborts the batch.
type Normalizer struct {
	logger *logging.Logger
}

func NewNormalizer(logger *logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize maps one fetch batch into matches sorted by
// (competition, kickoff).
func (n *Normalizer) Normalize(items []RawGame) []match.Match {
	matches := make([]match.Match, 0, len(items))
	for _, item := range items {
		m, ok := normalizeGame(item)
		if !ok {
			n.logger.Warn("skipping malformed provider item", "key", item.Key)
			continue
		}
		matches = append(matches, m)
	}

	match.SortMatches(matches)
	return matches
}

func normalizeGame(item RawGame) (match.Match, bool) {
	if item.Match == nil {
		return match.Match{}, false
	}

	homeTeam := item.Match.Team1
	if homeTeam == "" {
		homeTeam = missingTeamPlaceholder
	}
	awayTeam := item.Match.Team2
	if awayTeam == "" {
		awayTeam = missingTeamPlaceholder
	}

	quotes := make([]match.Quote, 0, len(item.Books))
	for _, book := range item.Books {
		quotes = append(quotes, match.Quote{
			Bookmaker:   book.Bookmaker,
			DisplayName: BookmakerDisplayName(book.Bookmaker),
			HomeOdd:     book.Odd1,
			DrawOdd:     book.OddX,
			AwayOdd:     book.Odd2,
			BestHome:    book.IsBest1,
			BestDraw:    book.IsBestX,
			BestAway:    book.IsBest2,
			Link:        book.Href,
			UpdatedAt:   book.UpdatedAt,
		})
	}
	match.SortQuotes(quotes)

	return match.Match{
		ID:          match.DeriveID(item.Key, homeTeam, awayTeam),
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		Competition: item.Match.Competition,
		Date:        item.Match.Date,
		Kickoff:     item.Match.KickoffDisplay,
		Best:        ResolveBestOdds(item.Best),
		Quotes:      quotes,
	}, true
}

// ResolveBestOdds reads the provider's `best` section, which uses
// either "1"/"X"/"2" or "odd1"/"oddX"/"odd2" keys depending on the
// payload generation. The numeric style wins when both are present;
// a missing slot defaults to zero odds and no bookmakers.
func ResolveBestOdds(best map[string]RawSlot) match.BestOdds {
	return match.BestOdds{
		Home: resolveSlot(best, "1", "odd1"),
		Draw: resolveSlot(best, "X", "oddX"),
		Away: resolveSlot(best, "2", "odd2"),
	}
}

func resolveSlot(best map[string]RawSlot, numericKey, alphaKey string) match.OddsSlot {
	primary := best[numericKey]
	fallback := best[alphaKey]

	out := match.OddsSlot{Odd: primary.Odd, Bookmakers: primary.Bookmakers}
	if out.Odd == 0 {
		out.Odd = fallback.Odd
	}
	if len(out.Bookmakers) == 0 {
		out.Bookmakers = fallback.Bookmakers
	}
	if out.Bookmakers == nil {
		out.Bookmakers = []string{}
	}
	return out
}
