package insights

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/shopspring/decimal"
)

// CogsBreakdown is per-channel cost of goods sold. Organic cost is not
// tracked: only the paid channels get a bucket, while the total still covers
// every line item.
type CogsBreakdown struct {
	MetaCogs   decimal.Decimal `json:"metaCogs"`
	GoogleCogs decimal.Decimal `json:"googleCogs"`
	TotalCogs  decimal.Decimal `json:"totalCogs"`
}

// CogsByChannel folds line item unit costs into the paid-channel buckets and
// the grand total. A missing unit cost counts as zero, a missing quantity as
// one unit, matching the sales aggregation.
func CogsByChannel(ctx context.Context, src dependency.OrderSource, startDate, endDate string) (*CogsBreakdown, error) {
	filter := shopify.DateFilter(startDate, endDate, shopify.HalfOpen)
	orders, err := FetchOrders(ctx, src, filter, FetchOptions{PageSize: 50, LineItemsFirst: 10, Reverse: true})
	if err != nil {
		return nil, err
	}

	out := &CogsBreakdown{}
	for i := range orders {
		order := &orders[i]
		ch := Classify(order)
		for _, li := range order.LineItems {
			cost := li.UnitCost.Amount.Mul(saleQuantity(li.Quantity))
			out.TotalCogs = out.TotalCogs.Add(cost)
			switch ch {
			case entity.ChannelMeta:
				out.MetaCogs = out.MetaCogs.Add(cost)
			case entity.ChannelGoogle:
				out.GoogleCogs = out.GoogleCogs.Add(cost)
			}
		}
	}
	return out, nil
}
