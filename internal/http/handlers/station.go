package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gogas/gogas-backend/internal/http/response"
	"github.com/gogas/gogas-backend/internal/services"
)

type StationHandler struct {
	stationService services.StationService
}

func NewStationHandler(stationService services.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

func (sh *StationHandler) Create(c *gin.Context) {
	// Pointer field so a coordinate of 0 binds as present rather than
	// tripping the required check.
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Address     string   `json:"address" binding:"required"`
		LatLng      *float64 `json:"lat_lng" binding:"required"`
		StationType string   `json:"station_type" binding:"required"`
		PumpHours   string   `json:"pump_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_rejected", err)
		return
	}
	station, err := sh.stationService.Create(c.Request.Context(), services.CreateStationInput{
		Name:        req.Name,
		Address:     req.Address,
		LatLng:      *req.LatLng,
		StationType: req.StationType,
		PumpHours:   req.PumpHours,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, station)
}

func (sh *StationHandler) List(c *gin.Context) {
	stations, err := sh.stationService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, stations)
}

func (sh *StationHandler) Get(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	detail, err := sh.stationService.Get(c.Request.Context(), stationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (sh *StationHandler) Delete(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	station, err := sh.stationService.Delete(c.Request.Context(), stationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, station)
}

func (sh *StationHandler) PostPrice(c *gin.Context) {
	// Price binds through a pointer: 0 is a legitimate first price and must
	// reach the plausibility check instead of failing the required tag.
	var req struct {
		StationID uuid.UUID `json:"station_id" binding:"required"`
		Price     *float64  `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_rejected", err)
		return
	}
	result, err := sh.stationService.PostPrice(c.Request.Context(), req.StationID, *req.Price)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	// A rejected price is not an error. The unchanged station and the
	// decision bounds go back with a 200 so the client can explain why.
	if !result.Decision.Accepted {
		response.RespondOK(c, result)
		return
	}
	response.RespondCreated(c, result)
}

func (sh *StationHandler) PostReview(c *gin.Context) {
	var req struct {
		StationID uuid.UUID `json:"station_id" binding:"required"`
		Rating    int       `json:"rating" binding:"required,gte=1,lte=5"`
		Comment   string    `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_rejected", err)
		return
	}
	review, err := sh.stationService.PostReview(c.Request.Context(), req.StationID, req.Rating, req.Comment)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, review)
}

func (sh *StationHandler) DeleteReview(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	review, err := sh.stationService.DeleteReview(c.Request.Context(), stationID, reviewID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, review)
}
