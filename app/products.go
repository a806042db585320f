package app

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
)

// VariantRequest binds the writable fields of a variant cost row.
type VariantRequest struct {
	*entity.VariantInsert
}

func (v *VariantRequest) Bind(r *http.Request) error {
	if v.VariantInsert == nil {
		return gerr.Validationf("missing request body")
	}
	if strings.TrimSpace(v.ProductName) == "" {
		return gerr.Validationf("'product_name' is required")
	}
	if strings.TrimSpace(v.SKU) == "" {
		return gerr.Validationf("'sku_name' is required")
	}
	return nil
}

func (s *Server) getProductMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics, err := s.db.ProductMetrics(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to fetch product metrics", slog.String("err", err.Error()))
		render.Render(w, r, ErrUpstream("Failed to fetch Product Metrics", err))
		return
	}
	render.JSON(w, r, metrics)
}

func (s *Server) addProductVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &VariantRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	m, err := s.db.AddVariant(ctx, data.VariantInsert)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to add product variant", slog.String("err", err.Error()))
		renderStoreErr(w, r, "Failed to add Product Variant", err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, m)
}

func (s *Server) updateProductVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sku := chi.URLParam(r, "sku")

	data := &VariantRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	m, err := s.db.UpdateVariant(ctx, sku, data.VariantInsert)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to update product variant",
			slog.String("sku", sku), slog.String("err", err.Error()))
		renderStoreErr(w, r, "Failed to update Product Variant", err)
		return
	}
	render.JSON(w, r, m)
}

func (s *Server) deleteProductVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sku := chi.URLParam(r, "sku")

	if err := s.db.DeleteVariant(ctx, sku); err != nil {
		slog.Default().ErrorContext(ctx, "failed to delete product variant",
			slog.String("sku", sku), slog.String("err", err.Error()))
		renderStoreErr(w, r, "Failed to delete Product Variant", err)
		return
	}
	render.PlainText(w, r, "Product variant deleted")
}
