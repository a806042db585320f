package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(httprate.Limit(
		30,
		15*time.Second,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sales", s.getSales)
		r.Get("/cogs", s.getCogs)
		r.Get("/ad_spend", s.getAdSpend)
		r.Get("/net_profit", s.getNetProfit)
		r.Get("/roas", s.getRoas)
		r.Get("/order_count", s.getOrderCount)
		r.Get("/order_count_by_province", s.getOrderCountByProvince)
		r.Get("/order_sales_by_province", s.getOrderSalesByProvince)
		r.Get("/top_skus_by_sales", s.getTopSKUs)
		r.Get("/latest_orders", s.getLatestOrders)

		r.Get("/orders/{timeframe}", s.getOrderStats)
		r.Get("/last_n_days_spend_and_sales/{timeframe}", s.getSpendAndSalesSeries)

		r.Get("/net_profit_daily", s.getNetProfitDaily)

		r.Get("/product_metrics", s.getProductMetrics)
		r.Post("/product_metrics", s.addProductVariant)
		r.Put("/product_metrics/{sku}", s.updateProductVariant)
		r.Delete("/product_metrics/{sku}", s.deleteProductVariant)
	})

	return r
}
