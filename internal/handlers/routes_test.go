package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abrezinsky/evote/internal/handlers"
	"github.com/abrezinsky/evote/internal/metrics"
)

func TestHealthz(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(http.MethodGet, "/healthz", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var body handlers.HealthResponse
	decode(t, rec, &body)
	if body.Status != "ok" {
		t.Errorf("expected ok, got %q", body.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.Register()
	setup := newTestSetup(t)

	expectStatus(t, setup.do(http.MethodGet, "/healthz", nil, ""), http.StatusOK)

	rec := setup.do(http.MethodGet, "/metrics", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `evote_http_requests_total{method="GET",path="/healthz",status="200"}`) {
		t.Error("expected request counter for /healthz in metrics output")
	}
}

func TestCORS(t *testing.T) {
	setup := newTestSetup(t)

	req := httptest.NewRequest(http.MethodOptions, "/elections", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected allowed origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/elections", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	setup.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected foreign origin rejected, got %q", got)
	}
}

func TestNoWebSocketRouteWithoutHub(t *testing.T) {
	setup := newTestSetup(t)

	expectStatus(t, setup.do(http.MethodGet, "/ws", nil, ""), http.StatusNotFound)
}
