package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/http/response"
	"github.com/gogas/gogas-backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (fh *FavoriteHandler) Add(c *gin.Context) {
	userID, stationID, ok := fh.parseIDs(c)
	if !ok {
		return
	}
	user, err := fh.favoriteService.Add(c.Request.Context(), userID, stationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (fh *FavoriteHandler) Remove(c *gin.Context) {
	userID, stationID, ok := fh.parseIDs(c)
	if !ok {
		return
	}
	user, err := fh.favoriteService.Remove(c.Request.Context(), userID, stationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (fh *FavoriteHandler) parseIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	stationID, err := uuid.Parse(c.Param("station_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, stationID, true
}
