package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
)

// ErrResponse is the renderer for every failure payload.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrUpstream maps an aggregation failure to a 500 with a stable
// user-level message and the underlying cause attached for diagnostics.
func ErrUpstream(status string, err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     status,
		ErrorText:      err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// renderStoreErr distinguishes caller mistakes from persistence failures.
func renderStoreErr(w http.ResponseWriter, r *http.Request, status string, err error) {
	switch {
	case errors.Is(err, gerr.ErrVariantNotFound):
		render.Render(w, r, ErrNotFound)
	case errors.Is(err, gerr.ErrProductNotFound):
		render.Render(w, r, ErrInvalidRequest(err))
	default:
		render.Render(w, r, ErrUpstream(status, err))
	}
}
