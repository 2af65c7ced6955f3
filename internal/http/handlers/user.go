package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/http/response"
	"github.com/gogas/gogas-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, users)
}

func (uh *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	user, err := uh.userService.Delete(c.Request.Context(), userID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (uh *UserHandler) GiveAdmin(c *gin.Context) {
	uh.setAdmin(c, true)
}

func (uh *UserHandler) RemoveAdmin(c *gin.Context) {
	uh.setAdmin(c, false)
}

func (uh *UserHandler) setAdmin(c *gin.Context, admin bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	user, err := uh.userService.SetAdmin(c.Request.Context(), userID, admin)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, user)
}
