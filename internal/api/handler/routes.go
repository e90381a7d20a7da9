package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/api/handler/router"
	"github.com/vfg2006/ga-importer/internal/usecases/authenticating"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
	"github.com/vfg2006/ga-importer/pkg/middleware"
)

func Healthcheck(checks map[string]HealthCheck) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Imports(service importing.StatusService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/imports",
			Method:      http.MethodGet,
			Handler:     ListImports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/imports",
			Method:      http.MethodPost,
			Handler:     StartImport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/imports/:site_id",
			Method:      http.MethodGet,
			Handler:     GetImport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/imports/:site_id",
			Method:      http.MethodDelete,
			Handler:     CancelImport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/imports/:site_id/resume",
			Method:      http.MethodPost,
			Handler:     ResumeImport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/imports/:site_id/date-range",
			Method:      http.MethodPut,
			Handler:     SetImportDateRange(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/imports/:site_id/verbose-logging",
			Method:      http.MethodPut,
			Handler:     SetVerboseLogging(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/imports/:site_id/imported-range",
			Method:      http.MethodGet,
			Handler:     GetImportedDateRange(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Archives(archives repository.ArchiveRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/archives/:site_id/:date/:name",
			Method:      http.MethodGet,
			Handler:     GetArchive(archives),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(scheduler ImportScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/import/run",
			Method:      http.MethodPost,
			Handler:     RunImportJob(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
