package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateFilter(t *testing.T) {
	assert.Equal(t,
		"created_at:>='2024-03-01T00:00:00+05:30' AND created_at<'2024-03-07T23:59:59+05:30'",
		DateFilter("2024-03-01", "2024-03-07", HalfOpen))

	assert.Equal(t,
		"created_at:>=2024-03-01T00:00:00Z created_at:<=2024-03-07T23:59:59Z",
		DateFilter("2024-03-01", "2024-03-07", ClosedInclusive))
}

func TestOrdersQuery_LineItemBudget(t *testing.T) {
	q := ordersQuery(10, true)
	assert.Contains(t, q, "lineItems(first: 10)")
	assert.Contains(t, q, "reverse: true")

	q = ordersQuery(0, false)
	assert.NotContains(t, q, "lineItems")
	assert.Contains(t, q, "reverse: false")
}
