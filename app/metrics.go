package app

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/render"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/kansothelabel/insights-manager/internal/insights"
	"github.com/kansothelabel/insights-manager/internal/timeframe"
)

// dateParams reads the startDate/endDate query params, defaulting both to
// the current calendar day in the store's zone.
func dateParams(r *http.Request) (string, string) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	today := timeframe.Today()
	if start == "" {
		start = today
	}
	if end == "" {
		end = today
	}
	return start, end
}

// snakeDateParams reads the date/start_date/end_date form used by the
// province and SKU routes. An explicit start/end pair wins; otherwise the
// single date, defaulting to today, bounds both ends.
func snakeDateParams(r *http.Request) (string, string) {
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	if start != "" && end != "" {
		return start, end
	}
	date := q.Get("date")
	if date == "" {
		date = timeframe.Today()
	}
	return date, date
}

func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) getSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	sales, err := insights.SalesByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch sales", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Sales", err))
		return
	}
	render.JSON(w, r, sales)
}

func (s *Server) getCogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	cogs, err := insights.CogsByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch cogs", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch COGS", err))
		return
	}
	render.JSON(w, r, cogs)
}

func (s *Server) getAdSpend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	spend, err := s.spend.FetchSpend(ctx, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch ad spend", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Ad Spend", err))
		return
	}
	render.JSON(w, r, spend)
}

func (s *Server) getNetProfit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	sales, err := insights.SalesByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch sales", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Net Profit", err))
		return
	}
	cogs, err := insights.CogsByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch cogs", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Net Profit", err))
		return
	}
	spend, err := s.spend.FetchSpend(ctx, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch ad spend", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Net Profit", err))
		return
	}

	render.JSON(w, r, insights.NetProfit(sales, cogs, spend))
}

func (s *Server) getRoas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	sales, err := insights.SalesByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch sales", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch ROAS", err))
		return
	}
	cogs, err := insights.CogsByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch cogs", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch ROAS", err))
		return
	}
	spend, err := s.spend.FetchSpend(ctx, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch ad spend", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch ROAS", err))
		return
	}

	render.JSON(w, r, insights.Roas(sales, cogs, spend))
}

func (s *Server) getOrderCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dateParams(r)

	counts, err := insights.CountByChannel(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch order counts", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Order Count", err))
		return
	}
	render.JSON(w, r, counts)
}

func (s *Server) getOrderCountByProvince(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := snakeDateParams(r)

	provinces, err := insights.OrderCountByProvince(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch province counts", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Order Count by Province", err))
		return
	}
	render.JSON(w, r, provinces)
}

func (s *Server) getOrderSalesByProvince(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := snakeDateParams(r)

	provinces, err := insights.OrderSalesByProvince(ctx, s.orders, start, end)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch province sales", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Order Sales by Province", err))
		return
	}
	render.JSON(w, r, provinces)
}

func (s *Server) getTopSKUs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := snakeDateParams(r)
	n := intParam(r, "n", 10)

	skus, err := insights.TopSKUs(ctx, s.orders, start, end, n)
	if err != nil {
		var verr *gerr.ValidationError
		if errors.As(err, &verr) {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
		slog.Default().ErrorContext(ctx, "failed to fetch top skus", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Top SKUs", err))
		return
	}
	render.JSON(w, r, skus)
}
