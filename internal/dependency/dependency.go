package dependency

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type (
	// OrderSource delivers single pages of orders from the storefront API.
	// The cursor inside the query is opaque to callers.
	OrderSource interface {
		QueryOrders(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error)
	}

	// TokenProvider refreshes a short lived access credential. Tokens are
	// requested fresh per aggregation and never cached.
	TokenProvider interface {
		AccessToken(ctx context.Context) (string, error)
	}

	// AdSpendSource returns the total spend of one ad platform for an
	// inclusive date range. Sources that carry their own credential ignore
	// the access token argument.
	AdSpendSource interface {
		Spend(ctx context.Context, startDate, endDate, accessToken string) (decimal.Decimal, error)
	}

	// SpendFetcher combines the ad platforms into one spend breakdown.
	SpendFetcher interface {
		FetchSpend(ctx context.Context, startDate, endDate string) (*entity.SpendBreakdown, error)
	}

	// MetricsStore is the relational persistence for product cost rows and
	// the daily net profit table.
	MetricsStore interface {
		ProductMetrics(ctx context.Context) ([]entity.ProductMetric, error)
		AddVariant(ctx context.Context, v *entity.VariantInsert) (*entity.ProductMetric, error)
		UpdateVariant(ctx context.Context, sku string, v *entity.VariantInsert) (*entity.ProductMetric, error)
		DeleteVariant(ctx context.Context, sku string) error
		NetProfitDaily(ctx context.Context, days int) ([]entity.NetProfitDay, error)
		Close()
	}
)
