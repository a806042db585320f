package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/kansothelabel/insights-manager/config"
	"github.com/kansothelabel/insights-manager/internal/dependency"
	"github.com/kansothelabel/insights-manager/internal/series"
)

// Server is the http server exposing the analytics api.
type Server struct {
	hs       *http.Server
	c        *config.HTTPConfig
	orders   dependency.OrderSource
	spend    dependency.SpendFetcher
	composer *series.Composer
	db       dependency.MetricsStore
	done     chan struct{}
}

// NewServer wires the upstream sources into a server instance.
func NewServer(c *config.HTTPConfig, orders dependency.OrderSource, spend dependency.SpendFetcher, composer *series.Composer, db dependency.MetricsStore) *Server {
	return &Server{
		c:        c,
		orders:   orders,
		spend:    spend,
		composer: composer,
		db:       db,
		done:     make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	s.hs = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler: s.router(),
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.hs.Addr))
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.hs.Shutdown(sctx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown",
			slog.String("err", err.Error()))
	}
}
