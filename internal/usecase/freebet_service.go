package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/robokrystal/stgmonitoradar/internal/domain/freebet"
	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

const DefaultFreebetValue = 10.0

// FreebetOpportunity pairs a match's best odds with the freebet
// allocation computed from them. Allocation is nil when the odds
// cannot produce a valid allocation; the match is still reported.
type FreebetOpportunity struct {
	Match        match.Match
	FreebetValue float64
	Allocation   *freebet.Allocation
}

// FreebetService computes freebet arbitrage opportunities over the
// cached match list.
type FreebetService struct {
	matches    *MatchService
	maxWorkers int
	logger     *logging.Logger
}

func NewFreebetService(matches *MatchService, maxWorkers int, logger *logging.Logger) *FreebetService {
	if maxWorkers < 1 {
		maxWorkers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FreebetService{
		matches:    matches,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// List computes opportunities for every match whose three best odds
// are valid payout multipliers, sorted by ROI descending. A non-empty
// bookmaker keeps only matches where that house carries at least one
// best odd.
func (s *FreebetService) List(ctx context.Context, freebetValue float64, bookmaker string) ([]FreebetOpportunity, error) {
	if freebetValue <= 0 {
		return nil, fmt.Errorf("%w: freebet value must be greater than zero", ErrInvalidInput)
	}

	candidates := make([]match.Match, 0)
	for _, m := range s.matches.List(ctx, MatchFilter{}) {
		if bookmaker != "" && !bestOddsInclude(m.Best, bookmaker) {
			continue
		}
		if m.Best.Home.Odd <= 1 || m.Best.Draw.Odd <= 1 || m.Best.Away.Odd <= 1 {
			continue
		}
		candidates = append(candidates, m)
	}

	opportunities := make([]FreebetOpportunity, len(candidates))

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, m := range candidates {
		i, m := i, m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			entry := FreebetOpportunity{Match: m, FreebetValue: freebetValue}
			if alloc, ok := freebet.Compute(m.Best.Home.Odd, m.Best.Draw.Odd, m.Best.Away.Odd, freebetValue); ok {
				entry.Allocation = &alloc
			}
			opportunities[i] = entry
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit freebet task: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunityROI(opportunities[i]) > opportunityROI(opportunities[j])
	})

	return opportunities, nil
}

func opportunityROI(o FreebetOpportunity) float64 {
	if o.Allocation == nil {
		return 0
	}
	return o.Allocation.ROIPercent
}

func bestOddsInclude(best match.BestOdds, bookmaker string) bool {
	needle := strings.ToLower(strings.TrimSpace(bookmaker))
	if needle == "" {
		return true
	}
	for _, slot := range []match.OddsSlot{best.Home, best.Draw, best.Away} {
		for _, house := range slot.Bookmakers {
			if strings.Contains(strings.ToLower(house), needle) {
				return true
			}
		}
	}
	return false
}
