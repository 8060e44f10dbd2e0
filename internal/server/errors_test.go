package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unavailable", &ErrSiteUnavailable{}, http.StatusServiceUnavailable},
		{"not found", &ErrNotFound{Path: "/x"}, http.StatusNotFound},
		{"missing project", &rendering.NotFoundError{Kind: "project", ID: "p9"}, http.StatusNotFound},
		{"wrapped missing project", fmt.Errorf("render: %w", &rendering.NotFoundError{Kind: "project", ID: "p9"}), http.StatusNotFound},
		{"bad request", &ErrBadRequest{Field: "id", Message: "empty"}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "site is not loaded", (&ErrSiteUnavailable{}).Error())
	assert.Equal(t, "not found: /nope", (&ErrNotFound{Path: "/nope"}).Error())
	assert.Equal(t, "bad request: id - empty", (&ErrBadRequest{Field: "id", Message: "empty"}).Error())
}
