package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel is the marketing acquisition bucket an order is attributed to.
type Channel string

const (
	ChannelMeta    Channel = "meta"
	ChannelGoogle  Channel = "google"
	ChannelOrganic Channel = "organic"
)

// Money is an amount as reported by the storefront API.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currencyCode"`
}

// VisitMoment is a single touch point of the customer journey. An empty
// UTMSource means the visit carried no utm_source parameter.
type VisitMoment struct {
	UTMSource string `json:"utmSource"`
}

// LineItem is one line of an order. Quantity is zero when the storefront
// omitted it; the accumulators decide what that zero means.
type LineItem struct {
	SKU                 string `json:"sku"`
	Quantity            int    `json:"quantity"`
	DiscountedUnitPrice Money  `json:"discountedUnitPrice"`
	UnitCost            Money  `json:"unitCost"`
}

// Order is an immutable snapshot of a storefront order, decoded once at the
// source boundary with all defaulting rules already applied.
type Order struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	CreatedAt        time.Time     `json:"createdAt"`
	CancelledAt      *time.Time    `json:"cancelledAt"`
	TotalPrice       Money         `json:"totalPrice"`
	ShippingProvince string        `json:"shippingProvince"`
	Journey          []VisitMoment `json:"journey,omitempty"`
	LineItems        []LineItem    `json:"lineItems"`
}

// Cancelled reports whether the order carries a cancellation timestamp.
func (o *Order) Cancelled() bool {
	return o.CancelledAt != nil
}

// OrderPage is one page of orders delivered by the order source.
type OrderPage struct {
	Orders      []Order
	HasNextPage bool
	EndCursor   string
}

// OrderQuery describes a single page request against the order source.
// After is the opaque cursor of the previous page, empty for the first one.
type OrderQuery struct {
	Filter         string
	First          int
	After          string
	LineItemsFirst int
	Reverse        bool
}

// SpendBreakdown is the combined ad spend of both platforms for a date range.
type SpendBreakdown struct {
	GoogleSpend   decimal.Decimal `json:"googleSpend"`
	FacebookSpend decimal.Decimal `json:"facebookSpend"`
	TotalSpend    decimal.Decimal `json:"totalSpend"`
}

// ParseAmount converts an upstream numeric string to a decimal. Anything that
// does not parse, including the empty string, becomes zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
