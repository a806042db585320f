package insights

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/shopspring/decimal"
)

// NetRevenueStats splits order totals by cancellation state. OrderCount and
// AvgOrderValue consider only non-cancelled orders; TotalSales covers all.
type NetRevenueStats struct {
	OrderCount      int             `json:"orderCount"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
	CancelledAmount decimal.Decimal `json:"cancelledAmount"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	Currency        string          `json:"currency"`
}

// NetRevenue aggregates per order, not per line item.
func NetRevenue(ctx context.Context, src dependency.OrderSource, startDate, endDate string) (*NetRevenueStats, error) {
	filter := shopify.DateFilter(startDate, endDate, shopify.ClosedInclusive)
	orders, err := FetchOrders(ctx, src, filter, FetchOptions{PageSize: 250})
	if err != nil {
		return nil, err
	}

	out := &NetRevenueStats{Currency: "INR"}
	if len(orders) > 0 && orders[0].TotalPrice.Currency != "" {
		out.Currency = orders[0].TotalPrice.Currency
	}
	for i := range orders {
		order := &orders[i]
		amount := order.TotalPrice.Amount
		out.TotalSales = out.TotalSales.Add(amount)
		if order.Cancelled() {
			out.CancelledAmount = out.CancelledAmount.Add(amount)
			continue
		}
		out.NetRevenue = out.NetRevenue.Add(amount)
		out.OrderCount++
	}
	if out.OrderCount > 0 {
		out.AvgOrderValue = out.NetRevenue.Div(decimal.NewFromInt(int64(out.OrderCount)))
	}
	return out, nil
}

// OrderStats is the plain revenue summary of a date range, cancelled orders
// included.
type OrderStats struct {
	OrderCount    int             `json:"orderCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
	Currency      string          `json:"currency"`
}

// Stats sums order totals over the range.
func Stats(ctx context.Context, src dependency.OrderSource, startDate, endDate string) (*OrderStats, error) {
	filter := shopify.DateFilter(startDate, endDate, shopify.ClosedInclusive)
	orders, err := FetchOrders(ctx, src, filter, FetchOptions{PageSize: 250, LineItemsFirst: 10})
	if err != nil {
		return nil, err
	}

	out := &OrderStats{OrderCount: len(orders), Currency: "INR"}
	if len(orders) > 0 && orders[0].TotalPrice.Currency != "" {
		out.Currency = orders[0].TotalPrice.Currency
	}
	for i := range orders {
		out.TotalRevenue = out.TotalRevenue.Add(orders[i].TotalPrice.Amount)
	}
	if out.OrderCount > 0 {
		out.AvgOrderValue = out.TotalRevenue.Div(decimal.NewFromInt(int64(out.OrderCount)))
	}
	return out, nil
}
