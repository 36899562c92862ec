package handlers

import (
	"net/http"

	"shamba-service/internal/models"
	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ObservationHandler struct {
	observationService services.IObservationService
}

func NewObservationHandler(observationService services.IObservationService) *ObservationHandler {
	return &ObservationHandler{observationService: observationService}
}

func (h *ObservationHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/observations")
	group.GET("", h.GetObservations)
	group.POST("", h.CreateObservation)
	group.POST("/:id/validations", h.ValidateObservation)
}

func (h *ObservationHandler) GetObservations(c *gin.Context) {
	observations, err := h.observationService.GetRecentObservations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch observations")
		return
	}
	c.JSON(http.StatusOK, utils.CreateListResponse(observations))
}

func (h *ObservationHandler) CreateObservation(c *gin.Context) {
	var req models.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "Invalid observation: "+err.Error()))
		return
	}

	obs, err := h.observationService.CreateObservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit observation")
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(obs))
}

func (h *ObservationHandler) ValidateObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "Invalid observation id"))
		return
	}

	var req models.ValidateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "userId and isValid are required"))
		return
	}

	obs, err := h.observationService.ValidateObservation(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to validate observation")
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(obs))
}
