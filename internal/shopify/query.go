package shopify

import (
	"fmt"
	"strings"
)

// BoundaryStyle selects which of the two date filter forms a call site needs.
// The two styles differ in time zone and in whether the end of the range is
// exclusive; endpoints were built against one or the other and changing the
// style would silently move orders across day boundaries.
type BoundaryStyle int

const (
	// HalfOpen filters in store local time with an exclusive upper bound.
	HalfOpen BoundaryStyle = iota
	// ClosedInclusive filters in UTC with both bounds inclusive.
	ClosedInclusive
)

// DateFilter builds the order search expression for an inclusive calendar
// date range, in the requested boundary style. Dates are YYYY-MM-DD.
func DateFilter(startDate, endDate string, style BoundaryStyle) string {
	if style == ClosedInclusive {
		return fmt.Sprintf("created_at:>=%sT00:00:00Z created_at:<=%sT23:59:59Z", startDate, endDate)
	}
	return fmt.Sprintf("created_at:>='%sT00:00:00+05:30' AND created_at<'%sT23:59:59+05:30'", startDate, endDate)
}

const ordersDocument = `query getOrders($query: String!, $first: Int!, $after: String) {
  orders(query: $query, first: $first, after: $after, reverse: %t) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        createdAt
        cancelledAt
        totalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        shippingAddress {
          province
        }
        customerJourney {
          moments {
            ... on CustomerVisit {
              utmParameters {
                source
              }
            }
          }
        }%s
      }
    }
  }
}`

const lineItemsFragment = `
        lineItems(first: %d) {
          edges {
            node {
              sku
              quantity
              discountedUnitPriceSet: discountedUnitPriceAfterAllDiscountsSet {
                shopMoney {
                  amount
                  currencyCode
                }
              }
              variant {
                sku
                inventoryItem {
                  unitCost {
                    amount
                    currencyCode
                  }
                }
              }
            }
          }
        }`

// ordersQuery renders the GraphQL document for one page request. The line
// item budget differs per call site and is omitted entirely when zero, which
// keeps order-level aggregations inside the API's field cost limits.
func ordersQuery(lineItemsFirst int, reverse bool) string {
	items := ""
	if lineItemsFirst > 0 {
		items = fmt.Sprintf(lineItemsFragment, lineItemsFirst)
	}
	q := fmt.Sprintf(ordersDocument, reverse, items)
	return strings.TrimSpace(q)
}
