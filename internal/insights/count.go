package insights

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/kansothelabel/insights-manager/internal/shopify"
)

// OrderCounts is the order count plus per-channel unit quantities.
type OrderCounts struct {
	OrderCount      int `json:"orderCount"`
	TotalQuantity   int `json:"totalQuantity"`
	MetaQuantity    int `json:"metaQuantity"`
	GoogleQuantity  int `json:"googleQuantity"`
	OrganicQuantity int `json:"organicQuantity"`
}

// CountByChannel counts orders and sums line item quantities per channel.
// Unlike the revenue aggregations, a missing quantity stays zero here.
// Product has been flagged about the divergence; until they rule, both
// behaviors are kept as is.
func CountByChannel(ctx context.Context, src dependency.OrderSource, startDate, endDate string) (*OrderCounts, error) {
	filter := shopify.DateFilter(startDate, endDate, shopify.HalfOpen)
	orders, err := FetchOrders(ctx, src, filter, FetchOptions{PageSize: 50, LineItemsFirst: 100, Reverse: true})
	if err != nil {
		return nil, err
	}

	out := &OrderCounts{OrderCount: len(orders)}
	for i := range orders {
		order := &orders[i]
		ch := Classify(order)
		for _, li := range order.LineItems {
			out.TotalQuantity += li.Quantity
			switch ch {
			case entity.ChannelMeta:
				out.MetaQuantity += li.Quantity
			case entity.ChannelGoogle:
				out.GoogleQuantity += li.Quantity
			default:
				out.OrganicQuantity += li.Quantity
			}
		}
	}
	return out, nil
}
