package handlers

import (
	"net/http"

	"shamba-service/internal/models"
	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
)

type PlantingHandler struct {
	plantingService services.IPlantingService
	cropService     services.ICropService
}

func NewPlantingHandler(plantingService services.IPlantingService, cropService services.ICropService) *PlantingHandler {
	return &PlantingHandler{
		plantingService: plantingService,
		cropService:     cropService,
	}
}

func (h *PlantingHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/planting", h.GetPlantingAdvice)
	router.GET("/crops", h.ListCrops)
}

func (h *PlantingHandler) GetPlantingAdvice(c *gin.Context) {
	var req models.PlantingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "Missing required parameters: lat, lon and cropName"))
		return
	}

	advice, err := h.plantingService.GetAdvice(c.Request.Context(), *req.Lat, *req.Lon, req.CropName)
	if err != nil {
		respondError(c, err, "Failed to fetch weather data")
		return
	}

	c.JSON(http.StatusOK, advice)
}

func (h *PlantingHandler) ListCrops(c *gin.Context) {
	crops, err := h.cropService.ListCrops(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch crops")
		return
	}
	c.JSON(http.StatusOK, utils.CreateListResponse(crops))
}
