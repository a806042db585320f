package entity

import "github.com/shopspring/decimal"

// ProductMetric is one variant row of the cost table joined with its product,
// as served by the product metrics endpoints.
type ProductMetric struct {
	ProductName  string              `db:"product_name" json:"product_name"`
	VariantTitle string              `db:"variant_title" json:"variant_title"`
	SKU          string              `db:"sku" json:"sku_name"`
	SellingPrice decimal.Decimal     `db:"price" json:"selling_price"`
	UnitCost     decimal.Decimal     `db:"unit_cost" json:"cogs"`
	Margin       decimal.NullDecimal `db:"-" json:"margin"`
}

// VariantInsert carries the writable fields of a variant cost row. The
// product is referenced by title and must already exist.
type VariantInsert struct {
	ProductName  string          `json:"product_name"`
	VariantTitle string          `json:"variant_title"`
	SKU          string          `json:"sku_name"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	UnitCost     decimal.Decimal `json:"cogs"`
}

// NetProfitDay is one row of the daily net profit table.
type NetProfitDay struct {
	Date      string          `db:"date" json:"date"`
	NetProfit decimal.Decimal `db:"net_profit" json:"net_profit"`
}
