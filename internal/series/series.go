// Package series assembles day and month level spend/revenue reports. It is
// the one place where upstream failures are tolerated per bucket: a bad day
// gets an error marker instead of sinking the whole series.
package series

import (
	"context"
	"time"

	"log/slog"

	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/kansothelabel/insights-manager/internal/insights"
	"github.com/kansothelabel/insights-manager/internal/timeframe"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Composer fetches one spend/revenue pair per bucket.
type Composer struct {
	orders dependency.OrderSource
	spend  dependency.SpendFetcher
}

func New(orders dependency.OrderSource, spend dependency.SpendFetcher) *Composer {
	return &Composer{orders: orders, spend: spend}
}

// BucketMetrics is the value part of a series row.
type BucketMetrics struct {
	Spend           decimal.Decimal `json:"spend"`
	Revenue         decimal.Decimal `json:"revenue"`
	CancelledAmount decimal.Decimal `json:"cancelledAmount"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	Net             decimal.Decimal `json:"net"`
}

// DayRow is one calendar day of the series. Failed buckets carry only the
// date, the day name and the error.
type DayRow struct {
	Date string `json:"date"`
	Day  string `json:"day"`
	*BucketMetrics
	Error string `json:"error,omitempty"`
}

// MonthRow is one calendar month of the yearly series.
type MonthRow struct {
	Month string `json:"month"`
	*BucketMetrics
	Error string `json:"error,omitempty"`
}

// RangeTotals is the single-shot fallback for timeframes without a bucketed
// breakdown.
type RangeTotals struct {
	TotalSpend decimal.Decimal `json:"totalSpend"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// DailySeries walks every calendar day of the range, fetching spend and net
// revenue concurrently per day. Buckets are processed in order; a failed
// bucket is marked and the walk continues.
func (c *Composer) DailySeries(ctx context.Context, r timeframe.DateRange) []DayRow {
	var rows []DayRow
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		row := DayRow{Date: date, Day: d.Weekday().String()}

		metrics, err := c.bucket(ctx, date, date)
		if err != nil {
			slog.Default().ErrorContext(ctx, "series bucket failed",
				slog.String("date", date),
				slog.String("err", err.Error()),
			)
			row.Error = err.Error()
		} else {
			row.BucketMetrics = metrics
		}
		rows = append(rows, row)
	}
	return rows
}

// MonthlySeries reports January through the current month for the current
// year, or the full twelve months for a past year. Month boundaries are
// resolved in UTC.
func (c *Composer) MonthlySeries(ctx context.Context, year int, now time.Time) []MonthRow {
	last := time.December
	if year == now.Year() {
		last = now.Month()
	}

	var rows []MonthRow
	for m := time.January; m <= last; m++ {
		start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC) // last day of m
		row := MonthRow{Month: m.String()}

		metrics, err := c.bucket(ctx, start.Format("2006-01-02"), end.Format("2006-01-02"))
		if err != nil {
			slog.Default().ErrorContext(ctx, "series bucket failed",
				slog.String("month", m.String()),
				slog.Int("year", year),
				slog.String("err", err.Error()),
			)
			row.Error = err.Error()
		} else {
			row.BucketMetrics = metrics
		}
		rows = append(rows, row)
	}
	return rows
}

// Totals is the combined spend and sales of the whole range. Unlike the
// bucketed series a failure here aborts the request.
func (c *Composer) Totals(ctx context.Context, r timeframe.DateRange) (*RangeTotals, error) {
	var (
		spend *entity.SpendBreakdown
		stats *insights.OrderStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spend, err = c.spend.FetchSpend(gctx, r.StartDate(), r.EndDate())
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = insights.Stats(gctx, c.orders, r.StartDate(), r.EndDate())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &RangeTotals{TotalSpend: spend.TotalSpend, TotalSales: stats.TotalRevenue}, nil
}

// bucket fetches the spend/revenue pair of one bucket concurrently. Both
// results must resolve before combination; either failing fails the bucket.
func (c *Composer) bucket(ctx context.Context, startDate, endDate string) (*BucketMetrics, error) {
	var (
		spend *entity.SpendBreakdown
		rev   *insights.NetRevenueStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spend, err = c.spend.FetchSpend(gctx, startDate, endDate)
		return err
	})
	g.Go(func() error {
		var err error
		rev, err = insights.NetRevenue(gctx, c.orders, startDate, endDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BucketMetrics{
		Spend:           spend.TotalSpend,
		Revenue:         rev.NetRevenue,
		CancelledAmount: rev.CancelledAmount,
		TotalSales:      rev.TotalSales,
		Net:             rev.NetRevenue.Sub(rev.CancelledAmount),
	}, nil
}
