package insights

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/shopspring/decimal"
)

// SalesBreakdown is per-channel line item revenue.
type SalesBreakdown struct {
	MetaSales    decimal.Decimal `json:"metaSales"`
	GoogleSales  decimal.Decimal `json:"googleSales"`
	OrganicSales decimal.Decimal `json:"organicSales"`
	TotalSales   decimal.Decimal `json:"totalSales"`
}

// SalesByChannel folds every line item in the date range into per-channel
// revenue sums. A line item's channel is the channel of its parent order.
// A missing or zero quantity counts as one unit here; the count aggregation
// treats the same input differently and the two must not be unified.
func SalesByChannel(ctx context.Context, src dependency.OrderSource, startDate, endDate string) (*SalesBreakdown, error) {
	filter := shopify.DateFilter(startDate, endDate, shopify.HalfOpen)
	orders, err := FetchOrders(ctx, src, filter, FetchOptions{PageSize: 50, LineItemsFirst: 10, Reverse: true})
	if err != nil {
		return nil, err
	}

	out := &SalesBreakdown{}
	for i := range orders {
		order := &orders[i]
		ch := Classify(order)
		for _, li := range order.LineItems {
			sales := li.DiscountedUnitPrice.Amount.Mul(saleQuantity(li.Quantity))
			out.TotalSales = out.TotalSales.Add(sales)
			switch ch {
			case entity.ChannelMeta:
				out.MetaSales = out.MetaSales.Add(sales)
			case entity.ChannelGoogle:
				out.GoogleSales = out.GoogleSales.Add(sales)
			default:
				out.OrganicSales = out.OrganicSales.Add(sales)
			}
		}
	}
	return out, nil
}

// saleQuantity treats absent and explicit zero quantities as a single unit.
func saleQuantity(q int) decimal.Decimal {
	if q == 0 {
		q = 1
	}
	return decimal.NewFromInt(int64(q))
}
