package insights

import (
	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// SafeDiv divides num by denom, yielding null instead of an error when the
// denominator is exactly zero. Ratios over a zero ad spend are undefined,
// not infinite.
func SafeDiv(num, denom decimal.Decimal) decimal.NullDecimal {
	if denom.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Div(denom), Valid: true}
}

// NetProfitBreakdown is sales minus cost of goods minus ad spend, per scope.
type NetProfitBreakdown struct {
	MetaNetProfit   decimal.Decimal `json:"metaNetProfit"`
	GoogleNetProfit decimal.Decimal `json:"googleNetProfit"`
	TotalNetProfit  decimal.Decimal `json:"totalNetProfit"`
}

// NetProfit combines the three aggregations for a shared date range. Pure
// computation, no I/O.
func NetProfit(sales *SalesBreakdown, cogs *CogsBreakdown, spend *entity.SpendBreakdown) *NetProfitBreakdown {
	return &NetProfitBreakdown{
		MetaNetProfit:   sales.MetaSales.Sub(cogs.MetaCogs).Sub(spend.FacebookSpend),
		GoogleNetProfit: sales.GoogleSales.Sub(cogs.GoogleCogs).Sub(spend.GoogleSpend),
		TotalNetProfit:  sales.TotalSales.Sub(cogs.TotalCogs).Sub(spend.TotalSpend),
	}
}

// RoasScope carries the three return-on-ad-spend ratios of one scope. Every
// ratio is null when the scope's ad spend is zero.
type RoasScope struct {
	GrossRoas decimal.NullDecimal `json:"grossRoas"`
	NetRoas   decimal.NullDecimal `json:"netRoas"`
	BeRoas    decimal.NullDecimal `json:"beRoas"`
}

// RoasReport is the per-scope ROAS summary.
type RoasReport struct {
	Meta   RoasScope `json:"meta"`
	Google RoasScope `json:"google"`
	Total  RoasScope `json:"total"`
}

// Roas derives gross, net and break-even ROAS per scope. Meta is measured
// against Facebook spend, Google against Google spend, total against both.
func Roas(sales *SalesBreakdown, cogs *CogsBreakdown, spend *entity.SpendBreakdown) *RoasReport {
	return &RoasReport{
		Meta:   roasScope(sales.MetaSales, cogs.MetaCogs, spend.FacebookSpend),
		Google: roasScope(sales.GoogleSales, cogs.GoogleCogs, spend.GoogleSpend),
		Total:  roasScope(sales.TotalSales, cogs.TotalCogs, spend.TotalSpend),
	}
}

func roasScope(revenue, cogs, adSpend decimal.Decimal) RoasScope {
	return RoasScope{
		GrossRoas: SafeDiv(revenue, adSpend),
		NetRoas:   SafeDiv(revenue.Sub(cogs), adSpend),
		BeRoas:    SafeDiv(cogs.Add(adSpend), adSpend),
	}
}
