package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisOptionKeyPrefix = "gaimporter:option:"

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

type redisOptionStore struct {
	client *redis.Client
}

func NewRedisOptionStore(client *redis.Client) OptionStore {
	return &redisOptionStore{client: client}
}

func redisOptionKey(name string) string {
	return redisOptionKeyPrefix + name
}

func (s *redisOptionStore) Get(ctx context.Context, name string) (*string, error) {
	value, err := s.client.Get(ctx, redisOptionKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar opção %s: %w", name, err)
	}
	return &value, nil
}

func (s *redisOptionStore) Set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, redisOptionKey(name), value, 0).Err(); err != nil {
		return fmt.Errorf("erro ao salvar opção %s: %w", name, err)
	}
	return nil
}

func (s *redisOptionStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, redisOptionKey(name)).Err(); err != nil {
		return fmt.Errorf("erro ao remover opção %s: %w", name, err)
	}
	return nil
}

func (s *redisOptionStore) GetLike(ctx context.Context, prefix string) (map[string]string, error) {
	pattern := globEscaper.Replace(redisOptionKey(prefix)) + "*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("erro ao listar opções %s: %w", prefix, err)
	}

	options := map[string]string{}
	if len(keys) == 0 {
		return options, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler opções %s: %w", prefix, err)
	}

	for i, key := range keys {
		// removida entre o SCAN e o MGET
		value, ok := values[i].(string)
		if !ok {
			continue
		}
		options[strings.TrimPrefix(key, redisOptionKeyPrefix)] = value
	}

	return options, nil
}

func (s *redisOptionStore) CompareAndSwap(ctx context.Context, name string, old *string, value string) (bool, error) {
	key := redisOptionKey(name)
	swapped := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if old != nil {
				return nil
			}
		case err != nil:
			return err
		default:
			if old == nil || *old != current {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		if err != nil {
			return err
		}

		swapped = true
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar opção %s: %w", name, err)
	}

	return swapped, nil
}
