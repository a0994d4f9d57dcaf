package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"typed not found", &NotFoundError{Message: "project not found"}, http.StatusNotFound},
		{"wrapped conflict", fmt.Errorf("create: %w", &ConflictError{Message: "slug taken"}), http.StatusConflict},
		{"validation sentinel", fmt.Errorf("%w: name is required", ErrValidation), http.StatusBadRequest},
		{"forbidden sentinel", ErrForbidden, http.StatusForbidden},
		{"unauthorized typed", &UnauthorizedError{Message: "bad token"}, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, &ConflictError{}, ErrConflict)
	assert.ErrorIs(t, &NotFoundError{}, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", &ValidationError{Message: "x"}), ErrValidation)
	assert.NotErrorIs(t, &ForbiddenError{}, ErrNotFound)
}
