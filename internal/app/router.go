package app

import (
	"github.com/gin-gonic/gin"

	"github.com/gogas/gogas-backend/internal/pkg/logger"
	"github.com/gogas/gogas-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  middlewareset.Auth,
		AuthHandler:     handlerset.Auth,
		StationHandler:  handlerset.Station,
		UserHandler:     handlerset.User,
		FavoriteHandler: handlerset.Favorite,
		HealthHandler:   handlerset.Health,
	})
}
