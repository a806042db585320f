package app

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/kansothelabel/insights-manager/internal/insights"
	"github.com/kansothelabel/insights-manager/internal/timeframe"
)

// getOrderStats serves revenue statistics for a symbolic timeframe. Custom
// bounds arrive as startDate/endDate query params. Cancelled orders count
// toward both the order count and the revenue here.
func (s *Server) getOrderStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf := chi.URLParam(r, "timeframe")
	rng := timeframe.Resolve(tf, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))

	stats, err := insights.Stats(ctx, s.orders, rng.StartDate(), rng.EndDate())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch order stats", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Orders", err))
		return
	}
	render.JSON(w, r, stats)
}

// getSpendAndSalesSeries serves the spend vs net sales report. Daily
// timeframes produce one row per calendar day, a year produces one row per
// month, and anything else collapses to range totals.
func (s *Server) getSpendAndSalesSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tf := chi.URLParam(r, "timeframe")
	rng := timeframe.Resolve(tf, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))

	switch tf {
	case "today", "week", "month":
		render.JSON(w, r, s.composer.DailySeries(ctx, rng))
	case "year":
		now := time.Now().In(timeframe.Zone)
		render.JSON(w, r, s.composer.MonthlySeries(ctx, rng.Start.Year(), now))
	default:
		totals, err := s.composer.Totals(ctx, rng)
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed to fetch spend and sales totals",
				slog.String("err", err.Error()))
			render.Render(w, r, ErrUpstream("Failed to fetch Spend and Sales", err))
			return
		}
		render.JSON(w, r, totals)
	}
}

func (s *Server) getLatestOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := intParam(r, "n", 10)

	orders, err := insights.LatestOrders(ctx, s.orders, time.Now().In(timeframe.Zone), n)
	if err != nil {
		var verr *gerr.ValidationError
		if errors.As(err, &verr) {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
		slog.Default().ErrorContext(ctx, "failed to fetch latest orders", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Latest Orders", err))
		return
	}
	render.JSON(w, r, orders)
}

func (s *Server) getNetProfitDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days := intParam(r, "n", 7)

	rows, err := s.db.NetProfitDaily(ctx, days)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch daily net profit", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Daily Net Profit", err))
		return
	}
	render.JSON(w, r, rows)
}
