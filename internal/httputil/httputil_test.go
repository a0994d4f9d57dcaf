package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-store/internal/domain"
	"project-store/internal/projectmap"
)

func problem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", &domain.NotFoundError{Message: "project not found"}, http.StatusNotFound, "project not found"},
		{"wrapped validation", fmt.Errorf("%w: slug: bad", domain.ErrValidation), http.StatusBadRequest, "validation failed: slug: bad"},
		{"forbidden", &domain.ForbiddenError{Message: "nope"}, http.StatusForbidden, "nope"},
		{"internal detail hidden", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := problem(t, rec)
			assert.Equal(t, tt.detail, body["detail"])
			assert.EqualValues(t, tt.status, body["status"])
		})
	}
}

func TestHandleErrorMissingContentSourceCarriesPath(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("create: %w", &projectmap.MissingContentSourceError{Path: "src/app.js"})
	HandleError(rec, httptest.NewRequest(http.MethodPost, "/", nil), nil, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "src/app.js", problem(t, rec)["path"])
}

func TestParseJSON(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, ParseJSON(httptest.NewRecorder(), req, &dest))
	assert.Equal(t, "x", dest.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := ParseJSON(httptest.NewRecorder(), req, &dest)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
