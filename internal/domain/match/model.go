package match

import (
	"sort"
	"strings"
)

// OddsSlot is the best available odd for one outcome and every
// bookmaker currently offering it.
type OddsSlot struct {
	Odd        float64
	Bookmakers []string
}

// BestOdds covers the three outcomes of a 1X2 market.
type BestOdds struct {
	Home OddsSlot
	Draw OddsSlot
	Away OddsSlot
}

// Quote is one bookmaker's three-way odds for a match.
type Quote struct {
	Bookmaker   string
	DisplayName string
	HomeOdd     float64
	DrawOdd     float64
	AwayOdd     float64
	BestHome    bool
	BestDraw    bool
	BestAway    bool
	Link        string
	UpdatedAt   string
}

// HasBest reports whether the quote contributes to the match's best
// odds for at least one outcome.
func (q Quote) HasBest() bool {
	return q.BestHome || q.BestDraw || q.BestAway
}

// Match is one sporting event at one point in time. Instances are
// built fresh on every normalizer pass and replaced wholesale on the
// next cache refresh.
type Match struct {
	ID          string
	HomeTeam    string
	AwayTeam    string
	Competition string
	Date        string
	Kickoff     string
	Best        BestOdds
	Quotes      []Quote
}

// Label is the display form used by the free-text search filter.
func (m Match) Label() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// DeriveID builds the match identifier from the provider key, falling
// back to the team pair when the key is absent. Unique within one
// fetch batch, not across batches.
func DeriveID(providerKey, homeTeam, awayTeam string) string {
	id := providerKey
	if id == "" {
		id = homeTeam + "|" + awayTeam
	}
	return strings.ToLower(strings.ReplaceAll(id, " ", "_"))
}

// SortQuotes orders a match's quotes so that every quote carrying at
// least one best-odds flag precedes all quotes carrying none; within
// each group ordering is ascending by display name, byte order.
func SortQuotes(quotes []Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		iBest := quotes[i].HasBest()
		jBest := quotes[j].HasBest()
		if iBest != jBest {
			return iBest
		}
		return quotes[i].DisplayName < quotes[j].DisplayName
	})
}

// SortMatches orders a batch by (competition, kickoff) ascending,
// case-sensitive on both.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Competition != matches[j].Competition {
			return matches[i].Competition < matches[j].Competition
		}
		return matches[i].Kickoff < matches[j].Kickoff
	})
}
