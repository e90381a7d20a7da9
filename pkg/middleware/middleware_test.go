package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/authenticating"
	"github.com/vfg2006/ga-importer/pkg/log"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type fakeCollector struct {
	requests []recordedRequest
}

func (f *fakeCollector) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, path: path, status: status})
}
func (f *fakeCollector) RecordDayImported(string, int, time.Duration) {}
func (f *fakeCollector) RecordDayFailed(string)                       {}
func (f *fakeCollector) RecordStatusTransition(string)                {}
func (f *fakeCollector) SetActiveImports(int)                         {}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{UserName: "admin", UserRoleID: domain.RoleAdmin}

	tests := []struct {
		name         string
		path         string
		header       string
		validator    fakeValidator
		expectedCode int
	}{
		{name: "Rota pública dispensa token", path: "/healthcheck", expectedCode: http.StatusOK},
		{name: "Sem header de autorização", path: "/v1/imports", expectedCode: http.StatusUnauthorized},
		{name: "Header sem Bearer", path: "/v1/imports", header: "abc", expectedCode: http.StatusUnauthorized},
		{
			name:         "Token expirado",
			path:         "/v1/imports",
			header:       "Bearer abc",
			validator:    fakeValidator{err: authenticating.ErrExpiredToken},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Token válido",
			path:         "/v1/imports",
			header:       "Bearer abc",
			validator:    fakeValidator{claims: admin},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = r.Context().Value(ContextKeyUser).(*domain.Claims)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.validator.claims != nil {
				assert.Equal(t, tt.validator.claims, seen)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	viewer := &domain.Claims{UserName: "viewer", UserRoleID: domain.RoleViewer}

	req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
	req = req.WithContext(contextWithClaims(req, viewer))

	rec := httptest.NewRecorder()
	AdminOnly()(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	AllRoles()(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	AllRoles()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/imports", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/v1/imports", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/imports", nil)
	req.Header.Set("Origin", "http://outro.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "/v1/imports", expected: "/v1/imports"},
		{path: "/v1/imports/12/resume", expected: "/v1/imports/:id/resume"},
		{path: "/v1/archives/3/2024-03-10/Referrers_type", expected: "/v1/archives/:id/:date/Referrers_type"},
		{path: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.path))
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	collector := &fakeCollector{}
	handler := MetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/imports/7", nil))

	require.Len(t, collector.requests, 1)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/v1/imports/:id", status: http.StatusNotFound}, collector.requests[0])
}

func TestLoggingMiddleware(t *testing.T) {
	var correlationID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
	}))

	t.Run("Gera ID de correlação", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/imports", nil))

		assert.NotEmpty(t, correlationID)
		assert.Equal(t, correlationID, rec.Header().Get(RequestIDHeader))
	})

	t.Run("Reaproveita X-Request-ID recebido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/imports", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", correlationID)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("falha inesperada")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/imports", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}
