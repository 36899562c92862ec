package handlers

import (
	"net/http"

	"shamba-service/internal/models"
	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	notificationService services.INotificationService
}

func NewSubscriptionHandler(notificationService services.INotificationService) *SubscriptionHandler {
	return &SubscriptionHandler{notificationService: notificationService}
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/subscribe", h.Subscribe)
	router.GET("/subscribe", h.Status)
	router.POST("/sms", h.SendSMS)
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "Invalid request body"))
		return
	}

	resp, err := h.notificationService.Subscribe(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to subscribe")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"notificationsEnabled": h.notificationService.NotificationsEnabled(),
	})
}

func (h *SubscriptionHandler) SendSMS(c *gin.Context) {
	var req models.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", "Invalid request body"))
		return
	}

	resp, err := h.notificationService.SendSMS(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to send SMS")
		return
	}
	c.JSON(http.StatusOK, resp)
}
