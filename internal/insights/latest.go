package insights

import (
	"context"
	"sort"
	"time"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/kansothelabel/insights-manager/internal/shopify"
)

// latestOrdersWindow is how far back the latest-orders view reaches.
const latestOrdersWindow = 90 * 24 * time.Hour

// LatestOrders fetches the trailing 90 days of orders and returns the n most
// recent by creation time.
func LatestOrders(ctx context.Context, src dependency.OrderSource, now time.Time, n int) ([]entity.Order, error) {
	if n <= 0 {
		return nil, gerr.Validationf("'n' must be a positive integer")
	}

	end := now.Format("2006-01-02")
	start := now.Add(-latestOrdersWindow).Format("2006-01-02")
	orders, err := FetchOrders(ctx, src, shopify.DateFilter(start, end, shopify.ClosedInclusive),
		FetchOptions{PageSize: 250, LineItemsFirst: 10})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > n {
		orders = orders[:n]
	}
	return orders, nil
}
