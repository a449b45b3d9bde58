package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xavierca1/inadimplencia-api/internal/infra/http/middleware"
	"github.com/xavierca1/inadimplencia-api/internal/infra/security"
)

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenService("segredo", "inadimplencia-api", time.Hour)
	valid, err := tokens.Generate("u-1", "ops@example.com", "admin")
	require.NoError(t, err)

	var seen *security.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := middleware.RequireAuth(tokens)(next)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"sem header", "", http.StatusUnauthorized},
		{"esquema errado", "Basic abc", http.StatusUnauthorized},
		{"token invalido", "Bearer lixo", http.StatusUnauthorized},
		{"token valido", "Bearer " + valid, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/persons/123", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, "u-1", seen.UserID)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Get("/persons/{cpf}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, cpf := range []string{"11144477735", "12345678909"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persons/"+cpf, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	metrics, err := gatherText()
	require.NoError(t, err)
	assert.Contains(t, metrics, `http_requests_total{method="GET",path="/persons/{cpf}",status="404"} 2`)
	assert.NotContains(t, metrics, "11144477735")
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func gatherText() (string, error) {
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", rec.Code)
	}
	return strings.TrimSpace(rec.Body.String()), nil
}
