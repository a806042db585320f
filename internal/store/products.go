package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/shopspring/decimal"
)

// ProductMetrics returns every variant cost row joined with its product.
// Margin is derived at read time and stays null for zero-priced variants.
func (s *PGStore) ProductMetrics(ctx context.Context) ([]entity.ProductMetric, error) {
	query := `
		SELECT v.variant_title, v.sku, v.price, v.unit_cost, p.title AS product_name
		FROM variants_tt AS v
		JOIN products_tt AS p ON v.product_id = p.product_id`

	var metrics []entity.ProductMetric
	if err := s.db.SelectContext(ctx, &metrics, query); err != nil {
		return nil, fmt.Errorf("can't select product metrics: %w", err)
	}
	for i := range metrics {
		metrics[i].Margin = margin(metrics[i].SellingPrice, metrics[i].UnitCost)
	}
	return metrics, nil
}

func margin(price, unitCost decimal.Decimal) decimal.NullDecimal {
	if price.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: price.Sub(unitCost).Round(2), Valid: true}
}

func (s *PGStore) productIDByTitle(ctx context.Context, title string) (int, error) {
	var id int
	err := s.db.GetContext(ctx, &id, `SELECT product_id FROM products_tt WHERE title = $1`, title)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, gerr.ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("can't resolve product %q: %w", title, err)
	}
	return id, nil
}

// AddVariant inserts a variant cost row under an existing product.
func (s *PGStore) AddVariant(ctx context.Context, v *entity.VariantInsert) (*entity.ProductMetric, error) {
	productID, err := s.productIDByTitle(ctx, v.ProductName)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO variants_tt (product_id, variant_title, sku, price, unit_cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING variant_title, sku, price, unit_cost`

	var m entity.ProductMetric
	if err := s.db.GetContext(ctx, &m, query,
		productID, v.VariantTitle, v.SKU, v.SellingPrice, v.UnitCost); err != nil {
		return nil, fmt.Errorf("can't insert variant: %w", err)
	}
	m.ProductName = v.ProductName
	m.Margin = margin(m.SellingPrice, m.UnitCost)
	return &m, nil
}

// UpdateVariant rewrites the variant row identified by sku.
func (s *PGStore) UpdateVariant(ctx context.Context, sku string, v *entity.VariantInsert) (*entity.ProductMetric, error) {
	productID, err := s.productIDByTitle(ctx, v.ProductName)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE variants_tt
		SET product_id = $1, variant_title = $2, price = $3, unit_cost = $4
		WHERE sku = $5
		RETURNING variant_title, sku, price, unit_cost`

	var m entity.ProductMetric
	err = s.db.GetContext(ctx, &m, query, productID, v.VariantTitle, v.SellingPrice, v.UnitCost, sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gerr.ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't update variant %q: %w", sku, err)
	}
	m.ProductName = v.ProductName
	m.Margin = margin(m.SellingPrice, m.UnitCost)
	return &m, nil
}

// DeleteVariant removes the variant row identified by sku.
func (s *PGStore) DeleteVariant(ctx context.Context, sku string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM variants_tt WHERE sku = $1`, sku)
	if err != nil {
		return fmt.Errorf("can't delete variant %q: %w", sku, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't delete variant %q: %w", sku, err)
	}
	if n == 0 {
		return gerr.ErrVariantNotFound
	}
	return nil
}

// NetProfitDaily returns the last days rows of the daily net profit table,
// most recent first, always excluding today.
func (s *PGStore) NetProfitDaily(ctx context.Context, days int) ([]entity.NetProfitDay, error) {
	query := `
		SELECT date::text AS date, net_profit
		FROM shopify_net_profit_daily
		WHERE date < CURRENT_DATE
		ORDER BY date DESC
		LIMIT $1`

	var rows []entity.NetProfitDay
	if err := s.db.SelectContext(ctx, &rows, query, days); err != nil {
		return nil, fmt.Errorf("can't select daily net profit: %w", err)
	}
	return rows, nil
}
