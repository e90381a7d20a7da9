package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/ga-importer/infrastructure/repository/mocks"
	"github.com/vfg2006/ga-importer/internal/api/handler"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/usecases/importing/mocks"
	"github.com/vfg2006/ga-importer/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) LoginUser(username, password string) (string, error) {
	return "token-" + username, nil
}

func (fakeAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	if token != "admin-token" {
		return nil, assert.AnError
	}
	return &domain.Claims{UserName: "admin", UserRoleID: domain.RoleAdmin}, nil
}

type idleScheduler struct{}

func (idleScheduler) TriggerManualSync(context.Context) bool { return true }
func (idleScheduler) GetStatus() map[string]any              { return map[string]any{} }

func newTestServer(t *testing.T, metricsEnabled bool) (*Server, *mocks.MockStatusService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	statuses := mocks.NewMockStatusService(ctrl)

	cfg := &config.Config{
		Server:  config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"*"}},
		Metrics: config.Metrics{Enabled: metricsEnabled},
	}

	srv, err := New(cfg, Dependencies{
		Statuses:      statuses,
		Archives:      repomocks.NewMockArchiveRepository(ctrl),
		Authenticator: fakeAuthenticator{},
		Scheduler:     idleScheduler{},
		HealthChecks:  map[string]handler.HealthCheck{},
	})
	require.NoError(t, err)
	return srv, statuses
}

func TestServer_Handler(t *testing.T) {
	srv, statuses := newTestServer(t, true)
	statuses.EXPECT().GetAllImportStatuses(gomock.Any()).Return([]*domain.ImportStatusView{}, nil)

	tests := []struct {
		name         string
		method       string
		path         string
		token        string
		body         string
		expectedCode int
	}{
		{name: "Healthcheck é público", method: http.MethodGet, path: "/healthcheck", expectedCode: http.StatusOK},
		{name: "Login é público", method: http.MethodPost, path: "/v1/login", body: `{"username":"admin","password":"x"}`, expectedCode: http.StatusOK},
		{name: "Métricas expostas quando habilitadas", method: http.MethodGet, path: "/metrics", expectedCode: http.StatusOK},
		{name: "Listagem exige token", method: http.MethodGet, path: "/v1/imports", expectedCode: http.StatusUnauthorized},
		{name: "Token inválido", method: http.MethodGet, path: "/v1/imports", token: "outro", expectedCode: http.StatusUnauthorized},
		{name: "Listagem com token válido", method: http.MethodGet, path: "/v1/imports", token: "admin-token", expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv, _ := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrRouteNotFound)
}
