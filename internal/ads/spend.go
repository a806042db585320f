package ads

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Aggregator combines both ad platforms into one spend breakdown.
type Aggregator struct {
	tokens dependency.TokenProvider
	google dependency.AdSpendSource
	meta   dependency.AdSpendSource
}

func NewAggregator(tokens dependency.TokenProvider, google, meta dependency.AdSpendSource) *Aggregator {
	return &Aggregator{tokens: tokens, google: google, meta: meta}
}

// FromConfig wires the concrete platform clients.
func FromConfig(c *Config) *Aggregator {
	return NewAggregator(NewGoogleTokenSource(c), NewGoogleAds(c), NewMetaInsights(c))
}

// FetchSpend refreshes the Google credential, then queries both platforms
// concurrently. Either platform failing aborts the aggregation; no partial
// spend is ever reported.
func (a *Aggregator) FetchSpend(ctx context.Context, startDate, endDate string) (*entity.SpendBreakdown, error) {
	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	out := &entity.SpendBreakdown{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spend, err := a.google.Spend(gctx, startDate, endDate, token)
		if err != nil {
			return err
		}
		out.GoogleSpend = spend
		return nil
	})
	g.Go(func() error {
		spend, err := a.meta.Spend(gctx, startDate, endDate, token)
		if err != nil {
			return err
		}
		out.FacebookSpend = spend
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.TotalSpend = out.GoogleSpend.Add(out.FacebookSpend)
	return out, nil
}
