package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/http/response"
	"github.com/gogas/gogas-backend/internal/pkg/ctxutil"
	"github.com/gogas/gogas-backend/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	favoriteSync services.FavoriteSyncService
}

func NewAuthHandler(authService services.AuthService, favoriteSync services.FavoriteSyncService) *AuthHandler {
	return &AuthHandler{authService: authService, favoriteSync: favoriteSync}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Zip      string `json:"zip" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_rejected", err)
		return
	}
	user := &types.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Zip:      req.Zip,
	}
	created, err := ah.authService.Register(c.Request.Context(), user)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_rejected", err)
		return
	}
	user, accessToken, refreshToken, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	// The favorite snapshot refresher runs for the lifetime of the session.
	ah.favoriteSync.Track(user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"id":            user.ID,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Session(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.RespondOK(c, gin.H{"id": rd.UserID, "admin": rd.Admin})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	accessToken, refreshToken, err := ah.authService.Refresh(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondFromError(c, err)
		return
	}
	if rd != nil {
		ah.favoriteSync.Untrack(rd.UserID)
	}
	response.RespondOK(c, gin.H{"message": "logged out successfully"})
}
