package main

import (
	"context"
	"io"
	"os"
	"path"
	"runtime"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
	"github.com/vfg2006/ga-importer/infrastructure/database/redis"
	"github.com/vfg2006/ga-importer/infrastructure/database/sqlite"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/ga-importer/infrastructure/notifier"
	"github.com/vfg2006/ga-importer/infrastructure/notifier/rabbitmq"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/api"
	"github.com/vfg2006/ga-importer/internal/api/handler"
	"github.com/vfg2006/ga-importer/internal/classifier"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer"
	"github.com/vfg2006/ga-importer/internal/importer/referrers"
	"github.com/vfg2006/ga-importer/internal/importer/visitorinterest"
	"github.com/vfg2006/ga-importer/internal/scheduler"
	"github.com/vfg2006/ga-importer/internal/translation"
	"github.com/vfg2006/ga-importer/internal/usecases/authenticating"
	"github.com/vfg2006/ga-importer/internal/usecases/importing"
	"github.com/vfg2006/ga-importer/pkg/distlock"
	"github.com/vfg2006/ga-importer/pkg/log"
	"github.com/vfg2006/ga-importer/pkg/metrics"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := postgres.EnsureSchema(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o schema do PostgreSQL")
	}

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		logrus.Info("Conexão com Redis estabelecida com sucesso")
	}

	optionStore, closeStore := newOptionStore(ctx, cfg, pgConn, redisClient)
	defer closeStore.Close()

	var collector metrics.Collector = metrics.NoopCollector{}
	if cfg.Metrics.Enabled {
		collector = metrics.NewPrometheusCollector(cfg.Metrics.Prefix, nil)
	}

	notifiers := notifier.Multi{notifier.NewMetrics(collector)}
	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logrus.WithError(err).Error("Erro ao conectar ao RabbitMQ, eventos de status não serão publicados")
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	translator, err := translation.New(cfg.App.Language)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar traduções")
	}

	siteRepo := repository.NewSiteRepository(pgConn)
	archiveRepo, err := repository.NewArchiveRepository(pgConn, cfg.Archive.CompressionLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar repositório de arquivos")
	}

	statusService := importing.NewStatusService(
		optionStore,
		siteRepo,
		translator,
		importing.WithNotifier(notifiers),
		importing.WithLogDir(cfg.App.LogDir, log.Hostname()),
	)

	registry, err := newRegistry(cfg, translator)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao registrar importadores")
	}

	gaHTTPClient, err := gaclient.NewHTTPClient(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar cliente do Google Analytics")
	}
	gaClient := gaclient.NewClient(cfg, gaHTTPClient)
	queryFactory := google.NewQueryFactory()

	dayImporter := importing.NewDayImporter(
		registry,
		archiveRepo,
		func(status *domain.ImportStatus, logger logrus.FieldLogger) importer.Querier {
			return google.NewQueryService(gaClient, queryFactory, status.GA.View, cfg.Google.PageSize, logger)
		},
		collector,
	)

	importSyncService := scheduler.NewImportSyncService(
		statusService,
		siteRepo,
		dayImporter,
		distlock.NewFactory(redisClient, pgConn.DB, cfg.ImportSync.LockTTL),
		collector,
		cfg,
	)

	if err := importSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importações")
	} else {
		logrus.Info("Agendador de importações iniciado com sucesso")
	}

	healthChecks := map[string]handler.HealthCheck{
		"postgres": pgConn.Ping,
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	server, err := api.New(cfg, api.Dependencies{
		Statuses:      statusService,
		Archives:      archiveRepo,
		Authenticator: authenticating.NewService(cfg),
		Scheduler:     importSyncService,
		Metrics:       collector,
		HealthChecks:  healthChecks,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newOptionStore escolhe onde os status de importação são guardados
func newOptionStore(ctx context.Context, cfg *config.Config, pgConn *postgres.Connection, redisClient *goredis.Client) (repository.OptionStore, io.Closer) {
	switch cfg.OptionStore.Driver {
	case "redis":
		if redisClient == nil {
			logrus.Fatal("OPTION_STORE_DRIVER=redis exige REDIS_ADDR")
		}
		logrus.Info("Status de importação armazenados no Redis")
		return repository.NewRedisOptionStore(redisClient), nopCloser{}

	case "sqlite":
		db, err := sqlite.NewConnection(ctx, cfg.OptionStore.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao abrir o SQLite")
		}
		logrus.WithField("path", cfg.OptionStore.SQLitePath).Info("Status de importação armazenados no SQLite")
		return repository.NewSQLiteOptionStore(db), db

	default:
		logrus.Info("Status de importação armazenados no PostgreSQL")
		return repository.NewPostgresOptionStore(pgConn), nopCloser{}
	}
}

func newRegistry(cfg *config.Config, translator translation.Translator) (*importer.Registry, error) {
	social, err := classifier.NewSocial(translator.Translate("General_Unknown"))
	if err != nil {
		return nil, err
	}
	searchEngines, err := classifier.NewSearchEngineMapper()
	if err != nil {
		return nil, err
	}

	registry := importer.NewRegistry()
	registry.Register(referrers.PluginName, referrers.NewFactory(social, searchEngines, referrers.Config{
		MaxRowsLevelZero: cfg.Archive.MaxRowsReferrers,
		MaxRowsSubtable:  cfg.Archive.MaxRowsReferrersSubtable,
	}))
	visitorInterest, err := visitorinterest.NewFactory()
	if err != nil {
		return nil, err
	}
	registry.Register(visitorinterest.PluginName, visitorInterest)

	return registry, nil
}
