package shopify

import (
	"time"

	"github.com/kansothelabel/insights-manager/internal/entity"
)

// Raw wire shapes of the Admin API orders query. Amounts arrive as strings
// and are coerced with the parse-or-zero rule while building entities.

type ordersResponse struct {
	Data *struct {
		Orders *ordersPayload `json:"orders"`
	} `json:"data"`
}

type ordersPayload struct {
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Edges []struct {
		Node orderNode `json:"node"`
	} `json:"edges"`
}

type moneyNode struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

type orderNode struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	CreatedAt       string     `json:"createdAt"`
	CancelledAt     *string    `json:"cancelledAt"`
	TotalPriceSet   *moneyNode `json:"totalPriceSet"`
	ShippingAddress *struct {
		Province string `json:"province"`
	} `json:"shippingAddress"`
	CustomerJourney *struct {
		Moments []struct {
			UTMParameters *struct {
				Source string `json:"source"`
			} `json:"utmParameters"`
		} `json:"moments"`
	} `json:"customerJourney"`
	LineItems *struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type lineItemNode struct {
	SKU                    string     `json:"sku"`
	Quantity               int        `json:"quantity"`
	DiscountedUnitPriceSet *moneyNode `json:"discountedUnitPriceSet"`
	Variant                *struct {
		SKU           string `json:"sku"`
		InventoryItem *struct {
			UnitCost *struct {
				Amount       string `json:"amount"`
				CurrencyCode string `json:"currencyCode"`
			} `json:"unitCost"`
		} `json:"inventoryItem"`
	} `json:"variant"`
}

func (p *ordersPayload) toPage() *entity.OrderPage {
	page := &entity.OrderPage{
		Orders:      make([]entity.Order, 0, len(p.Edges)),
		HasNextPage: p.PageInfo.HasNextPage,
		EndCursor:   p.PageInfo.EndCursor,
	}
	for _, e := range p.Edges {
		page.Orders = append(page.Orders, e.Node.toOrder())
	}
	return page
}

func (n *orderNode) toOrder() entity.Order {
	o := entity.Order{
		ID:               n.ID,
		Name:             n.Name,
		CreatedAt:        parseTime(n.CreatedAt),
		TotalPrice:       money(n.TotalPriceSet),
		ShippingProvince: "Unknown",
	}
	if n.CancelledAt != nil && *n.CancelledAt != "" {
		t := parseTime(*n.CancelledAt)
		o.CancelledAt = &t
	}
	if n.ShippingAddress != nil && n.ShippingAddress.Province != "" {
		o.ShippingProvince = n.ShippingAddress.Province
	}
	if n.CustomerJourney != nil {
		for _, m := range n.CustomerJourney.Moments {
			var src string
			if m.UTMParameters != nil {
				src = m.UTMParameters.Source
			}
			o.Journey = append(o.Journey, entity.VisitMoment{UTMSource: src})
		}
	}
	if n.LineItems != nil {
		for _, e := range n.LineItems.Edges {
			o.LineItems = append(o.LineItems, e.Node.toLineItem())
		}
	}
	return o
}

func (n *lineItemNode) toLineItem() entity.LineItem {
	li := entity.LineItem{
		SKU:                 "Unknown",
		Quantity:            n.Quantity,
		DiscountedUnitPrice: money(n.DiscountedUnitPriceSet),
	}
	switch {
	case n.SKU != "":
		li.SKU = n.SKU
	case n.Variant != nil && n.Variant.SKU != "":
		li.SKU = n.Variant.SKU
	}
	if n.Variant != nil && n.Variant.InventoryItem != nil && n.Variant.InventoryItem.UnitCost != nil {
		li.UnitCost = entity.Money{
			Amount:   entity.ParseAmount(n.Variant.InventoryItem.UnitCost.Amount),
			Currency: n.Variant.InventoryItem.UnitCost.CurrencyCode,
		}
	}
	return li
}

func money(m *moneyNode) entity.Money {
	if m == nil {
		return entity.Money{}
	}
	return entity.Money{
		Amount:   entity.ParseAmount(m.ShopMoney.Amount),
		Currency: m.ShopMoney.CurrencyCode,
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
