package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vfg2006/ga-importer/internal/config"
)

// NewClient conecta ao Redis configurado. Sem endereço, retorna nil.
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
