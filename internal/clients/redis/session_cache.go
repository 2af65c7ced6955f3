// Package redis holds the optional session cache. When REDIS_ADDR is set,
// resolved access tokens are cached so the hot auth path skips the token
// table; when it is not set the backend runs without redis entirely.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

// ErrCacheMiss is returned when the token is not in the cache. Callers fall
// back to the token table.
var ErrCacheMiss = errors.New("session cache miss")

type SessionEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Admin  bool      `json:"admin"`
}

type SessionCache interface {
	Get(ctx context.Context, accessToken string) (*SessionEntry, error)
	Set(ctx context.Context, accessToken string, entry SessionEntry, ttl time.Duration) error
	Invalidate(ctx context.Context, accessToken string) error
	Close() error
}

type sessionCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewSessionCache(log *logger.Logger) (SessionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionCache{
		log:    log.With("service", "RedisSessionCache"),
		rdb:    rdb,
		prefix: "session:",
	}, nil
}

func (sc *sessionCache) Get(ctx context.Context, accessToken string) (*SessionEntry, error) {
	raw, err := sc.rdb.Get(ctx, sc.prefix+accessToken).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("session cache get: %w", err)
	}
	var entry SessionEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &entry, nil
}

func (sc *sessionCache) Set(ctx context.Context, accessToken string, entry SessionEntry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	if err := sc.rdb.Set(ctx, sc.prefix+accessToken, raw, ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

func (sc *sessionCache) Invalidate(ctx context.Context, accessToken string) error {
	if err := sc.rdb.Del(ctx, sc.prefix+accessToken).Err(); err != nil {
		return fmt.Errorf("session cache invalidate: %w", err)
	}
	return nil
}

func (sc *sessionCache) Close() error {
	return sc.rdb.Close()
}
