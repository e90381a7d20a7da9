// Package distlock garante que um único processo importe um site por vez.
package distlock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock é um lock exclusivo por chave. Cada instância deve ser usada por
// uma única goroutine.
type DistLock interface {
	// Acquire tenta obter o lock sem bloquear
	Acquire(ctx context.Context) (bool, error)
	// Release libera o lock se ele ainda pertencer a esta instância
	Release(ctx context.Context) error
}

// Extender é implementado pelos locks que expiram por TTL
type Extender interface {
	Extend(ctx context.Context, ttl time.Duration) (bool, error)
}

// Extend renova o lock quando o backend expira. Locks de sessão e locais não
// expiram e continuam válidos.
func Extend(ctx context.Context, lock DistLock, ttl time.Duration) (bool, error) {
	extender, ok := lock.(Extender)
	if !ok || ttl <= 0 {
		return true, nil
	}
	return extender.Extend(ctx, ttl)
}

// Factory cria um lock para a chave informada
type Factory func(key string) DistLock

// NewFactory escolhe o backend disponível: Redis, depois advisory lock do
// Postgres e, sem nenhum dos dois, um lock local ao processo.
func NewFactory(redisClient *redis.Client, db *sql.DB, ttl time.Duration) Factory {
	return func(key string) DistLock {
		return NewLock(redisClient, db, key, ttl)
	}
}

func NewLock(redisClient *redis.Client, db *sql.DB, key string, ttl time.Duration) DistLock {
	switch {
	case redisClient != nil:
		return NewRedisLock(redisClient, key, ttl)
	case db != nil:
		return NewPGAdvisoryLock(db, key)
	default:
		return NewLocalLock(key)
	}
}

// PGAdvisoryLock usa pg_try_advisory_lock. O lock é de sessão, então a mesma
// conexão é mantida entre Acquire e Release.
type PGAdvisoryLock struct {
	db     *sql.DB
	conn   *sql.Conn
	lockID int64
}

func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &PGAdvisoryLock{
		db:     db,
		lockID: int64(h.Sum64()),
	}
}

func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get connection for advisory lock: %w", err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to acquire advisory lock %d: %w", l.lockID, err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}

	l.conn = conn
	return true, nil
}

func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	defer func() {
		l.conn.Close()
		l.conn = nil
	}()

	_, err := l.conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}

var (
	localMu    sync.Mutex
	localLocks = map[string]struct{}{}
)

// LocalLock serve instalações com um único processo e banco SQLite
type LocalLock struct {
	key  string
	held bool
}

func NewLocalLock(key string) *LocalLock {
	return &LocalLock{key: key}
}

func (l *LocalLock) Acquire(context.Context) (bool, error) {
	localMu.Lock()
	defer localMu.Unlock()

	if _, taken := localLocks[l.key]; taken {
		return false, nil
	}
	localLocks[l.key] = struct{}{}
	l.held = true
	return true, nil
}

func (l *LocalLock) Release(context.Context) error {
	localMu.Lock()
	defer localMu.Unlock()

	if l.held {
		delete(localLocks, l.key)
		l.held = false
	}
	return nil
}
