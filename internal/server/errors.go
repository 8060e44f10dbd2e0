package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ragibsmajic/portfolio/internal/rendering"
)

// ErrSiteUnavailable indicates no site has been loaded yet
type ErrSiteUnavailable struct{}

func (e *ErrSiteUnavailable) Error() string {
	return "site is not loaded"
}

// ErrNotFound indicates the requested page or file does not exist
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// ErrBadRequest indicates a malformed request
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unavailable *ErrSiteUnavailable
		notFound    *ErrNotFound
		missing     *rendering.NotFoundError
		badRequest  *ErrBadRequest
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &notFound), errors.As(err, &missing):
		return http.StatusNotFound
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
