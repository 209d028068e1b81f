package oddsmonitor

import (
	"context"

	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

// Provider composes the client and the normalizer into the match
// source the cache gate refreshes from.
type Provider struct {
	client     *Client
	normalizer *Normalizer
}

func NewProvider(client *Client, logger *logging.Logger) *Provider {
	return &Provider{
		client:     client,
		normalizer: NewNormalizer(logger),
	}
}

func (p *Provider) CurrentMatches(ctx context.Context) ([]match.Match, error) {
	games, err := p.client.FetchGames(ctx)
	if err != nil {
		return nil, err
	}
	return p.normalizer.Normalize(games), nil
}
