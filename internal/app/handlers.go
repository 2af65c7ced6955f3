package app

import (
	"gorm.io/gorm"

	"github.com/gogas/gogas-backend/internal/http/handlers"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Station  *handlers.StationHandler
	User     *handlers.UserHandler
	Favorite *handlers.FavoriteHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(serviceset.Auth, serviceset.FavoriteSync),
		Station:  handlers.NewStationHandler(serviceset.Station),
		User:     handlers.NewUserHandler(serviceset.User),
		Favorite: handlers.NewFavoriteHandler(serviceset.Favorite),
		Health:   handlers.NewHealthHandler(db),
	}
}
