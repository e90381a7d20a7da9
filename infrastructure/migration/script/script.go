package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/database/postgres"
	"github.com/vfg2006/ga-importer/infrastructure/database/redis"
	"github.com/vfg2006/ga-importer/infrastructure/database/sqlite"
	"github.com/vfg2006/ga-importer/infrastructure/migration"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/pkg/utils"
)

// Copia os status de importação entre armazenamentos de opções, por exemplo
// ao trocar OPTION_STORE_DRIVER de sqlite para postgres.
func main() {
	from := flag.String("from", "sqlite", "armazenamento de origem: postgres, redis ou sqlite")
	to := flag.String("to", "postgres", "armazenamento de destino: postgres, redis ou sqlite")
	overwrite := flag.Bool("overwrite", false, "sobrescreve opções que já existem no destino")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})

	runID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar identificador da migração")
	}
	logger := logrus.WithFields(logrus.Fields{"run_id": runID, "from": *from, "to": *to})
	logger.Info("Iniciando script de migração...")

	if *from == *to {
		logger.Fatal("Origem e destino devem ser diferentes")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logger.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	stores := newStores(ctx, cfg, *from, *to)

	startTime := time.Now()
	report, err := migration.CopyImportOptions(ctx, stores[*from], stores[*to], *overwrite)
	if err != nil {
		logger.WithError(err).Fatal("Migração interrompida")
	}

	logger.WithFields(logrus.Fields{
		"copied":   report.Copied,
		"upgraded": report.Upgraded,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
		"duration": time.Since(startTime).String(),
	}).Info("Migração concluída")
}

func newStores(ctx context.Context, cfg *config.Config, drivers ...string) map[string]repository.OptionStore {
	stores := map[string]repository.OptionStore{}

	for _, driver := range drivers {
		switch driver {
		case "postgres":
			conn, err := postgres.NewConnection(ctx, cfg.Database)
			if err != nil {
				logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
			}
			if err := postgres.EnsureSchema(ctx, conn); err != nil {
				logrus.WithError(err).Fatal("Erro ao preparar o schema do PostgreSQL")
			}
			stores[driver] = repository.NewPostgresOptionStore(conn)

		case "redis":
			client, err := redis.NewClient(ctx, cfg.Redis)
			if err != nil || client == nil {
				logrus.WithError(err).Fatal("Erro ao conectar ao Redis, verifique REDIS_ADDR")
			}
			stores[driver] = repository.NewRedisOptionStore(client)

		case "sqlite":
			db, err := sqlite.NewConnection(ctx, cfg.OptionStore.SQLitePath)
			if err != nil {
				logrus.WithError(err).Fatal("Erro ao abrir o SQLite")
			}
			stores[driver] = repository.NewSQLiteOptionStore(db)

		default:
			logrus.Fatalf("Armazenamento desconhecido: %s", driver)
		}
	}

	return stores
}
