package handlers

import (
	"net/http"

	"shamba-service/internal/models"
	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketService services.IMarketService
}

func NewMarketHandler(marketService services.IMarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

func (h *MarketHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/market", h.GetPrices)
	router.POST("/market", h.CreatePrice)
}

func (h *MarketHandler) GetPrices(c *gin.Context) {
	limit, err := utils.GetQueryParamAsInt(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", err.Error()))
		return
	}

	prices, err := h.marketService.GetLatestPrices(c.Request.Context(), c.Query("market"), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch prices")
		return
	}
	c.JSON(http.StatusOK, utils.CreateListResponse(prices))
}

func (h *MarketHandler) CreatePrice(c *gin.Context) {
	var req models.CreateMarketPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "crop, market and pricePerBag are required"))
		return
	}

	price, err := h.marketService.CreatePrice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create price")
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(price))
}
