package insights

import (
	"context"
	"sort"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/shopspring/decimal"
)

// ProvinceCount is the number of orders shipped to one province.
type ProvinceCount struct {
	Province      string `json:"province"`
	OrderQuantity int    `json:"order_quantity"`
}

// ProvinceSales is the summed order totals shipped to one province.
type ProvinceSales struct {
	Province   string          `json:"province"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// OrderCountByProvince buckets orders by shipping province. Orders without a
// shipping address land in "Unknown". Rows come back sorted by province so
// the output is stable.
func OrderCountByProvince(ctx context.Context, src dependency.OrderSource, startDate, endDate string) ([]ProvinceCount, error) {
	orders, err := FetchOrders(ctx, src, shopify.DateFilter(startDate, endDate, shopify.ClosedInclusive),
		FetchOptions{PageSize: 250})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for i := range orders {
		counts[orders[i].ShippingProvince]++
	}

	out := make([]ProvinceCount, 0, len(counts))
	for province, n := range counts {
		out = append(out, ProvinceCount{Province: province, OrderQuantity: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Province < out[j].Province })
	return out, nil
}

// OrderSalesByProvince buckets order totals by shipping province.
func OrderSalesByProvince(ctx context.Context, src dependency.OrderSource, startDate, endDate string) ([]ProvinceSales, error) {
	orders, err := FetchOrders(ctx, src, shopify.DateFilter(startDate, endDate, shopify.ClosedInclusive),
		FetchOptions{PageSize: 250})
	if err != nil {
		return nil, err
	}

	sales := map[string]decimal.Decimal{}
	for i := range orders {
		o := &orders[i]
		sales[o.ShippingProvince] = sales[o.ShippingProvince].Add(o.TotalPrice.Amount)
	}

	out := make([]ProvinceSales, 0, len(sales))
	for province, total := range sales {
		out = append(out, ProvinceSales{Province: province, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Province < out[j].Province })
	return out, nil
}
