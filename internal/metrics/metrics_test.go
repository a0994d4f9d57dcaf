package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFlatten(t *testing.T) {
	okBefore := testutil.ToFloat64(treesFlattenedTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(treesFlattenedTotal.WithLabelValues("error"))

	RecordFlatten(4, nil)
	RecordFlatten(0, errors.New("missing content"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(treesFlattenedTotal.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(treesFlattenedTotal.WithLabelValues("error")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/projects/{projectId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counter := httpRequestsTotal.WithLabelValues("GET", "/projects/{projectId}", "204")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/def", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordEvent("files_replaced")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "projectstore_ws_events_total")
}
