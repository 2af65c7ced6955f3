package app

import (
	"time"

	"github.com/gogas/gogas-backend/internal/pkg/envutil"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type Config struct {
	Port                 string
	JWTSecretKey         string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	FavoriteSyncInterval time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.GetEnv("PORT", "8080", log)
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	favoriteSyncIntervalMs := envutil.GetEnvAsInt("FAVORITE_SYNC_INTERVAL_MS", 500, log)
	return Config{
		Port:                 port,
		JWTSecretKey:         jwtSecretKey,
		AccessTokenTTL:       time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:      time.Duration(refreshTokenTTLSeconds) * time.Second,
		FavoriteSyncInterval: time.Duration(favoriteSyncIntervalMs) * time.Millisecond,
	}
}
