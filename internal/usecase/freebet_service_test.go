package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

func arbMatch(id string, home, draw, away float64, bookmakers ...string) match.Match {
	return match.Match{
		ID:       id,
		HomeTeam: id,
		AwayTeam: "rival",
		Best: match.BestOdds{
			Home: match.OddsSlot{Odd: home, Bookmakers: bookmakers},
			Draw: match.OddsSlot{Odd: draw, Bookmakers: bookmakers},
			Away: match.OddsSlot{Odd: away, Bookmakers: bookmakers},
		},
	}
}

func newFreebetService(matches ...match.Match) *FreebetService {
	matchSvc := NewMatchService(&stubProvider{matches: matches}, time.Minute, true, nil, logging.NewNop())
	return NewFreebetService(matchSvc, 4, logging.NewNop())
}

func TestFreebetService_SortsByROIDescending(t *testing.T) {
	t.Parallel()

	service := newFreebetService(
		arbMatch("low", 1.5, 3.5, 8.0, "bet365"),
		arbMatch("high", 3.0, 3.5, 12.0, "superbet"),
	)

	got, err := service.List(context.Background(), 10.0, "")
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(got))
	}
	if got[0].Match.ID != "high" {
		t.Fatalf("expected the highest roi first, got %q", got[0].Match.ID)
	}
	if got[0].Allocation == nil || got[1].Allocation == nil {
		t.Fatalf("expected allocations for both matches")
	}
	if got[0].Allocation.ROIPercent < got[1].Allocation.ROIPercent {
		t.Fatalf("roi ordering violated: %v then %v", got[0].Allocation.ROIPercent, got[1].Allocation.ROIPercent)
	}
}

func TestFreebetService_SkipsInvalidOdds(t *testing.T) {
	t.Parallel()

	service := newFreebetService(
		arbMatch("valid", 2.0, 3.0, 4.0, "bet365"),
		arbMatch("away at one", 2.0, 3.0, 1.0, "bet365"),
		arbMatch("missing home", 0, 3.0, 4.0, "bet365"),
	)

	got, err := service.List(context.Background(), 10.0, "")
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	if len(got) != 1 || got[0].Match.ID != "valid" {
		t.Fatalf("expected only the valid match, got %+v", got)
	}
}

func TestFreebetService_BookmakerFilter(t *testing.T) {
	t.Parallel()

	service := newFreebetService(
		arbMatch("a", 2.0, 3.0, 4.0, "bet365"),
		arbMatch("b", 2.1, 3.1, 4.1, "superbet"),
	)

	got, err := service.List(context.Background(), 10.0, "super")
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	if len(got) != 1 || got[0].Match.ID != "b" {
		t.Fatalf("expected only the superbet match, got %+v", got)
	}

	got, err = service.List(context.Background(), 10.0, "pinnacle")
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches for an unknown house, got %d", len(got))
	}
}

func TestFreebetService_RejectsNonPositiveValue(t *testing.T) {
	t.Parallel()

	service := newFreebetService(arbMatch("a", 2.0, 3.0, 4.0, "bet365"))

	if _, err := service.List(context.Background(), 0, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero value, got %v", err)
	}
	if _, err := service.List(context.Background(), -10, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative value, got %v", err)
	}
}

func TestFreebetService_CarriesFreebetValue(t *testing.T) {
	t.Parallel()

	service := newFreebetService(arbMatch("a", 2.0, 3.0, 4.0, "bet365"))

	got, err := service.List(context.Background(), 50.0, "")
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(got))
	}
	if got[0].FreebetValue != 50.0 {
		t.Fatalf("expected freebet value 50, got %v", got[0].FreebetValue)
	}
	if got[0].Allocation.StakeAway != 50.0 {
		t.Fatalf("expected the away stake to equal the freebet, got %v", got[0].Allocation.StakeAway)
	}
}
