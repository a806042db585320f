package insights

import (
	"context"
	"sort"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/shopspring/decimal"
)

// SKUSales is the revenue a single SKU produced over a date range.
type SKUSales struct {
	SKU        string          `json:"sku"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// TopSKUs returns the n best selling SKUs by discounted line item revenue,
// descending. Quantity here defaults to zero when absent, so unpriced or
// quantity-less rows simply contribute nothing.
func TopSKUs(ctx context.Context, src dependency.OrderSource, startDate, endDate string, n int) ([]SKUSales, error) {
	if n <= 0 {
		return nil, gerr.Validationf("'n' must be a positive integer")
	}

	orders, err := FetchOrders(ctx, src, shopify.DateFilter(startDate, endDate, shopify.ClosedInclusive),
		FetchOptions{PageSize: 50, LineItemsFirst: 50})
	if err != nil {
		return nil, err
	}

	bySKU := map[string]decimal.Decimal{}
	for i := range orders {
		for _, li := range orders[i].LineItems {
			sales := li.DiscountedUnitPrice.Amount.Mul(decimal.NewFromInt(int64(li.Quantity)))
			bySKU[li.SKU] = bySKU[li.SKU].Add(sales)
		}
	}

	out := make([]SKUSales, 0, len(bySKU))
	for sku, total := range bySKU {
		out = append(out, SKUSales{SKU: sku, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalSales.Cmp(out[j].TotalSales); c != 0 {
			return c > 0
		}
		return out[i].SKU < out[j].SKU
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
