package app

import (
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/pkg/logger"
	"github.com/gogas/gogas-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Station      services.StationService
	User         services.UserService
	Favorite     services.FavoriteService
	FavoriteSync services.FavoriteSyncService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:         services.NewAuthService(db, log, reposet.User, reposet.UserToken, clients.SessionCache, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Station:      services.NewStationService(db, log, reposet.Station, reposet.Price, reposet.Review, reposet.User),
		User:         services.NewUserService(db, log, reposet.User, reposet.UserToken, reposet.Favorite, reposet.Review),
		Favorite:     services.NewFavoriteService(db, log, reposet.User, reposet.Station, reposet.Favorite),
		FavoriteSync: services.NewFavoriteSyncService(log, reposet.Favorite, reposet.Station, cfg.FavoriteSyncInterval),
	}
}
