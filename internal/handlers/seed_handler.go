package handlers

import (
	"net/http"

	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
)

type SeedHandler struct {
	seedService services.ISeedService
}

func NewSeedHandler(seedService services.ISeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

func (h *SeedHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/seed", h.Seed)
}

func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to seed database")
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
