package store

import (
	"context"
	"os"
	"testing"

	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMargin(t *testing.T) {
	m := margin(decimal.NewFromInt(999), decimal.NewFromInt(400))
	require.True(t, m.Valid)
	assert.Equal(t, "599", m.Decimal.String())

	m = margin(decimal.RequireFromString("10.005"), decimal.NewFromInt(1))
	require.True(t, m.Valid)
	assert.Equal(t, "9.01", m.Decimal.String())

	// zero-priced variants have no meaningful margin
	m = margin(decimal.Zero, decimal.NewFromInt(400))
	assert.False(t, m.Valid)
}

func newTestDB(t *testing.T) *PGStore {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)

	_, err = db.db.ExecContext(context.Background(), "DELETE FROM variants_tt")
	require.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM products_tt")
	require.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM shopify_net_profit_daily")
	require.NoError(t, err)

	return db
}

func TestVariantLifecycle(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.db.ExecContext(ctx, "INSERT INTO products_tt (title) VALUES ('Test Tee')")
	require.NoError(t, err)

	added, err := db.AddVariant(ctx, &entity.VariantInsert{
		ProductName:  "Test Tee",
		VariantTitle: "M",
		SKU:          "TEE-M",
		SellingPrice: decimal.NewFromInt(999),
		UnitCost:     decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.Equal(t, "TEE-M", added.SKU)
	require.True(t, added.Margin.Valid)
	assert.Equal(t, "599", added.Margin.Decimal.String())

	metrics, err := db.ProductMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Test Tee", metrics[0].ProductName)

	updated, err := db.UpdateVariant(ctx, "TEE-M", &entity.VariantInsert{
		ProductName:  "Test Tee",
		VariantTitle: "M",
		SKU:          "TEE-M",
		SellingPrice: decimal.NewFromInt(899),
		UnitCost:     decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.Equal(t, "899", updated.SellingPrice.String())

	_, err = db.UpdateVariant(ctx, "MISSING", &entity.VariantInsert{ProductName: "Test Tee"})
	assert.ErrorIs(t, err, gerr.ErrVariantNotFound)

	_, err = db.AddVariant(ctx, &entity.VariantInsert{ProductName: "No Such Product", SKU: "X"})
	assert.ErrorIs(t, err, gerr.ErrProductNotFound)

	require.NoError(t, db.DeleteVariant(ctx, "TEE-M"))
	assert.ErrorIs(t, db.DeleteVariant(ctx, "TEE-M"), gerr.ErrVariantNotFound)
}

func TestNetProfitDailyExcludesToday(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.db.ExecContext(ctx, `
		INSERT INTO shopify_net_profit_daily (date, net_profit) VALUES
		(CURRENT_DATE, 500),
		(CURRENT_DATE - 1, 120),
		(CURRENT_DATE - 2, -30)`)
	require.NoError(t, err)

	rows, err := db.NetProfitDaily(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "120", rows[0].NetProfit.String())
	assert.Equal(t, "-30", rows[1].NetProfit.String())
}
