package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogas/gogas-backend/internal/clients/redis"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type Clients struct {
	SessionCache redis.SessionCache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional. Without it every token check hits the database.
	var cache redis.SessionCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		sc, err := redis.NewSessionCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session cache: %w", err)
		}
		cache = sc
	}

	return Clients{SessionCache: cache}, nil
}
