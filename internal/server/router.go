package server

import (
	"github.com/gin-gonic/gin"

	"github.com/gogas/gogas-backend/internal/http/handlers"
	"github.com/gogas/gogas-backend/internal/http/middleware"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthMiddleware  *middleware.AuthMiddleware
	AuthHandler     *handlers.AuthHandler
	StationHandler  *handlers.StationHandler
	UserHandler     *handlers.UserHandler
	FavoriteHandler *handlers.FavoriteHandler
	HealthHandler   *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.Check)
	router.POST("/user", cfg.AuthHandler.Register)
	router.POST("/session", cfg.AuthHandler.Login)
	router.GET("/stations", cfg.StationHandler.List)
	router.GET("/station/:id", cfg.StationHandler.Get)
	router.GET("/user/:id", cfg.UserHandler.Get)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.GET("/session", cfg.AuthHandler.Session)
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.DELETE("/logout", cfg.AuthHandler.Logout)
	// Station
	protected.POST("/station", cfg.StationHandler.Create)
	protected.DELETE("/station/:id", cfg.StationHandler.Delete)
	protected.POST("/price", cfg.StationHandler.PostPrice)
	protected.POST("/review", cfg.StationHandler.PostReview)
	protected.DELETE("/station/:id/review/:review_id", cfg.StationHandler.DeleteReview)
	// User
	protected.GET("/users", cfg.UserHandler.List)
	protected.DELETE("/user/:id", cfg.UserHandler.Delete)
	protected.PUT("/user/:id/admin", cfg.UserHandler.GiveAdmin)
	protected.PUT("/user/:id/remove_admin", cfg.UserHandler.RemoveAdmin)
	// Favorite
	protected.POST("/user/:id/favorites/:station_id", cfg.FavoriteHandler.Add)
	protected.DELETE("/user/:id/favorites/:station_id", cfg.FavoriteHandler.Remove)

	return router
}
