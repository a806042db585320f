package insights

import (
	"context"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
)

// FetchOptions shapes one pagination run. PageSize and LineItemsFirst map to
// upstream field budgets and differ per call site. Limit of zero means fetch
// everything the filter matches.
type FetchOptions struct {
	PageSize       int
	Limit          int
	LineItemsFirst int
	Reverse        bool
}

// FetchOrders drains the order source page by page. Pages are requested
// strictly sequentially since every cursor depends on the previous response.
// The limit is checked both before issuing a request and after receiving a
// page, so a satisfied limit never costs an extra fetch. A single failed page
// aborts the whole run.
func FetchOrders(ctx context.Context, src dependency.OrderSource, filter string, opts FetchOptions) ([]entity.Order, error) {
	var orders []entity.Order
	cursor := ""
	for {
		if opts.Limit > 0 && len(orders) >= opts.Limit {
			break
		}
		first := opts.PageSize
		if opts.Limit > 0 {
			if remaining := opts.Limit - len(orders); remaining < first {
				first = remaining
			}
		}
		page, err := src.QueryOrders(ctx, entity.OrderQuery{
			Filter:         filter,
			First:          first,
			After:          cursor,
			LineItemsFirst: opts.LineItemsFirst,
			Reverse:        opts.Reverse,
		})
		if err != nil {
			return nil, err
		}
		orders = append(orders, page.Orders...)
		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor
	}
	if opts.Limit > 0 && len(orders) > opts.Limit {
		orders = orders[:opts.Limit]
	}
	return orders, nil
}
