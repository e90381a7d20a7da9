package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/api/handler"
	"github.com/vfg2006/ga-importer/internal/api/handler/router"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/internal/usecases/authenticating"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
	"github.com/vfg2006/ga-importer/pkg/metrics"
	"github.com/vfg2006/ga-importer/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne os serviços expostos pela API
type Dependencies struct {
	Statuses      importing.StatusService
	Archives      repository.ArchiveRepository
	Authenticator authenticating.Authenticator
	Scheduler     handler.ImportScheduler
	Metrics       metrics.Collector
	HealthChecks  map[string]handler.HealthCheck
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NoopCollector{}
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(deps.HealthChecks)...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Imports(deps.Statuses)...),
		router.WithRoutes(handler.Archives(deps.Archives)...),
		router.WithRoutes(handler.CronJobs(deps.Scheduler)...),
	}
	if config.Metrics.Enabled {
		configs = append(configs, router.WithRoutes(handler.Metrics()...))
	}
	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.MetricsMiddleware(deps.Metrics),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
