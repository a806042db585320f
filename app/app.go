package app

import (
	"context"

	"log/slog"

	"github.com/kansothelabel/insights-manager/config"
	"github.com/kansothelabel/insights-manager/internal/ads"
	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/series"
	"github.com/kansothelabel/insights-manager/internal/shopify"
	"github.com/kansothelabel/insights-manager/internal/store"
)

// App is the main application.
type App struct {
	srv  *Server
	db   dependency.MetricsStore
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App.
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start connects the store and begins serving the api.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting insights manager")

	db, err := store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to postgres",
			slog.String("err", err.Error()))
		return err
	}
	a.db = db

	orders := shopify.New(&a.c.Shopify)
	spend := ads.FromConfig(&a.c.Ads)
	composer := series.New(orders, spend)

	a.srv = NewServer(&a.c.HTTP, orders, spend, composer, a.db)
	if err := a.srv.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.srv.Done()
		close(a.done)
	}()

	return nil
}

// Stop stops the application and waits for all services to exit.
func (a *App) Stop(ctx context.Context) {
	a.srv.Stop(ctx)
	a.db.Close()
}

// Done returns a channel that is closed after the application has exited.
func (a *App) Done() chan struct{} {
	return a.done
}
