package insights

import (
	"context"
	"testing"
	"time"

	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(amount string) entity.Money {
	return entity.Money{Amount: entity.ParseAmount(amount), Currency: "INR"}
}

func singlePage(orders ...entity.Order) *fakeSource {
	return &fakeSource{pages: []entity.OrderPage{{Orders: orders}}}
}

func TestSalesByChannel_QuantityDefaultsToOne(t *testing.T) {
	src := singlePage(entity.Order{
		Journey: []entity.VisitMoment{{UTMSource: "facebook"}},
		LineItems: []entity.LineItem{
			{DiscountedUnitPrice: price("10"), Quantity: 0}, // absent quantity
			{DiscountedUnitPrice: price("5"), Quantity: 3},
		},
	})

	sales, err := SalesByChannel(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "25", sales.MetaSales.String())
	assert.Equal(t, "25", sales.TotalSales.String())
	assert.True(t, sales.GoogleSales.IsZero())
	assert.True(t, sales.OrganicSales.IsZero())
}

func TestSalesAndCountDisagreeOnAbsentQuantity(t *testing.T) {
	// the same line item contributes 10 to sales but 0 to quantity
	order := entity.Order{LineItems: []entity.LineItem{{DiscountedUnitPrice: price("10"), Quantity: 0}}}

	sales, err := SalesByChannel(context.Background(), singlePage(order), "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "10", sales.TotalSales.String())

	counts, err := CountByChannel(context.Background(), singlePage(order), "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, counts.OrderCount)
	assert.Equal(t, 0, counts.TotalQuantity)
}

func TestCogsByChannel_NoOrganicBucket(t *testing.T) {
	src := singlePage(
		entity.Order{
			Journey:   []entity.VisitMoment{{UTMSource: "google"}},
			LineItems: []entity.LineItem{{UnitCost: price("40"), Quantity: 2}},
		},
		entity.Order{ // organic: cost lands only in the total
			LineItems: []entity.LineItem{{UnitCost: price("15"), Quantity: 1}},
		},
	)

	cogs, err := CogsByChannel(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "80", cogs.GoogleCogs.String())
	assert.True(t, cogs.MetaCogs.IsZero())
	assert.Equal(t, "95", cogs.TotalCogs.String())
}

func TestCogsByChannel_MissingCostIsZero(t *testing.T) {
	src := singlePage(entity.Order{
		Journey:   []entity.VisitMoment{{UTMSource: "fb"}},
		LineItems: []entity.LineItem{{Quantity: 5}},
	})

	cogs, err := CogsByChannel(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, cogs.TotalCogs.IsZero())
}

func TestCountByChannel_Quantities(t *testing.T) {
	src := singlePage(
		entity.Order{
			Journey:   []entity.VisitMoment{{UTMSource: "instagram"}},
			LineItems: []entity.LineItem{{Quantity: 2}, {Quantity: 3}},
		},
		entity.Order{
			Journey:   []entity.VisitMoment{{UTMSource: "google"}},
			LineItems: []entity.LineItem{{Quantity: 1}},
		},
		entity.Order{
			LineItems: []entity.LineItem{{Quantity: 4}},
		},
	)

	counts, err := CountByChannel(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 3, counts.OrderCount)
	assert.Equal(t, 5, counts.MetaQuantity)
	assert.Equal(t, 1, counts.GoogleQuantity)
	assert.Equal(t, 4, counts.OrganicQuantity)
	assert.Equal(t, 10, counts.TotalQuantity)
}

func TestNetRevenue_SplitsCancelledOrders(t *testing.T) {
	cancelled := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	src := singlePage(
		entity.Order{TotalPrice: price("100")},
		entity.Order{TotalPrice: price("50"), CancelledAt: &cancelled},
	)

	stats, err := NetRevenue(context.Background(), src, "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, "100", stats.NetRevenue.String())
	assert.Equal(t, "50", stats.CancelledAmount.String())
	assert.Equal(t, "150", stats.TotalSales.String())
	assert.Equal(t, 1, stats.OrderCount)
	assert.Equal(t, "100", stats.AvgOrderValue.String())
	assert.Equal(t, "INR", stats.Currency)
}

func TestNetRevenue_NoOrders(t *testing.T) {
	stats, err := NetRevenue(context.Background(), singlePage(), "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.OrderCount)
	assert.True(t, stats.AvgOrderValue.IsZero())
	assert.Equal(t, "INR", stats.Currency)
}

func TestStats_CountsCancelledOrdersToo(t *testing.T) {
	cancelled := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	src := singlePage(
		entity.Order{TotalPrice: price("100")},
		entity.Order{TotalPrice: price("60"), CancelledAt: &cancelled},
	)

	stats, err := Stats(context.Background(), src, "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OrderCount)
	assert.Equal(t, "160", stats.TotalRevenue.String())
	assert.Equal(t, "80", stats.AvgOrderValue.String())
}

func TestOrderCountByProvince(t *testing.T) {
	src := singlePage(
		entity.Order{ShippingProvince: "Karnataka", TotalPrice: price("10")},
		entity.Order{ShippingProvince: "Karnataka", TotalPrice: price("20")},
		entity.Order{ShippingProvince: "Unknown", TotalPrice: price("5")},
	)

	counts, err := OrderCountByProvince(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []ProvinceCount{
		{Province: "Karnataka", OrderQuantity: 2},
		{Province: "Unknown", OrderQuantity: 1},
	}, counts)
}

func TestOrderSalesByProvince(t *testing.T) {
	src := singlePage(
		entity.Order{ShippingProvince: "Karnataka", TotalPrice: price("10")},
		entity.Order{ShippingProvince: "Karnataka", TotalPrice: price("20.50")},
	)

	sales, err := OrderSalesByProvince(context.Background(), src, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "30.5", sales[0].TotalSales.String())
}

func TestTopSKUs(t *testing.T) {
	src := singlePage(entity.Order{LineItems: []entity.LineItem{
		{SKU: "A", DiscountedUnitPrice: price("30"), Quantity: 1},
		{SKU: "B", DiscountedUnitPrice: price("25"), Quantity: 2},
		{SKU: "C", DiscountedUnitPrice: price("10"), Quantity: 1},
	}})

	top, err := TopSKUs(context.Background(), src, "2024-03-01", "2024-03-01", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].SKU)
	assert.Equal(t, "50", top[0].TotalSales.String())
	assert.Equal(t, "A", top[1].SKU)
	assert.Equal(t, "30", top[1].TotalSales.String())
}

func TestTopSKUs_RejectsNonPositiveN(t *testing.T) {
	_, err := TopSKUs(context.Background(), singlePage(), "2024-03-01", "2024-03-01", 0)
	assert.Error(t, err)
}

func TestLatestOrders_SortsDescendingAndTruncates(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC) }
	src := singlePage(
		entity.Order{ID: "1", CreatedAt: day(1)},
		entity.Order{ID: "3", CreatedAt: day(3)},
		entity.Order{ID: "2", CreatedAt: day(2)},
	)

	orders, err := LatestOrders(context.Background(), src, day(4), 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "3", orders[0].ID)
	assert.Equal(t, "2", orders[1].ID)
}

func TestSafeDiv(t *testing.T) {
	assert.False(t, SafeDiv(decimal.NewFromInt(10), decimal.Zero).Valid)
	assert.False(t, SafeDiv(decimal.Zero, decimal.Zero).Valid)

	d := SafeDiv(decimal.NewFromInt(10), decimal.NewFromInt(5))
	require.True(t, d.Valid)
	assert.Equal(t, "2", d.Decimal.String())
}

func TestNetProfit(t *testing.T) {
	sales := &SalesBreakdown{
		MetaSales:   decimal.NewFromInt(1000),
		GoogleSales: decimal.NewFromInt(500),
		TotalSales:  decimal.NewFromInt(1800),
	}
	cogs := &CogsBreakdown{
		MetaCogs:   decimal.NewFromInt(400),
		GoogleCogs: decimal.NewFromInt(200),
		TotalCogs:  decimal.NewFromInt(700),
	}
	spend := &entity.SpendBreakdown{
		FacebookSpend: decimal.NewFromInt(300),
		GoogleSpend:   decimal.NewFromInt(100),
		TotalSpend:    decimal.NewFromInt(400),
	}

	np := NetProfit(sales, cogs, spend)
	assert.Equal(t, "300", np.MetaNetProfit.String())
	assert.Equal(t, "200", np.GoogleNetProfit.String())
	assert.Equal(t, "700", np.TotalNetProfit.String())
}

func TestRoas_ZeroSpendIsNull(t *testing.T) {
	sales := &SalesBreakdown{
		MetaSales:  decimal.NewFromInt(900),
		TotalSales: decimal.NewFromInt(900),
	}
	cogs := &CogsBreakdown{
		MetaCogs:  decimal.NewFromInt(300),
		TotalCogs: decimal.NewFromInt(300),
	}
	spend := &entity.SpendBreakdown{
		FacebookSpend: decimal.NewFromInt(300),
		TotalSpend:    decimal.NewFromInt(300),
	}

	r := Roas(sales, cogs, spend)
	require.True(t, r.Meta.GrossRoas.Valid)
	assert.Equal(t, "3", r.Meta.GrossRoas.Decimal.String())
	assert.Equal(t, "2", r.Meta.NetRoas.Decimal.String())
	assert.Equal(t, "2", r.Meta.BeRoas.Decimal.String())

	// google spend is zero, every google ratio must be null
	assert.False(t, r.Google.GrossRoas.Valid)
	assert.False(t, r.Google.NetRoas.Valid)
	assert.False(t, r.Google.BeRoas.Valid)
}
