package handlers

import (
	"log/slog"
	"net/http"

	"shamba-service/internal/models"
	"shamba-service/internal/services"

	"github.com/gin-gonic/gin"
)

const ussdSystemError = "END System Error"

type UssdHandler struct {
	ussdService services.IUssdService
}

func NewUssdHandler(ussdService services.IUssdService) *UssdHandler {
	return &UssdHandler{ussdService: ussdService}
}

func (h *UssdHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/ussd", h.HandleSession)
}

// HandleSession answers the gateway in plain text, "CON ..." to continue or "END ..." to close
func (h *UssdHandler) HandleSession(c *gin.Context) {
	var req models.UssdRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("invalid ussd request", "error", err)
		c.String(http.StatusBadRequest, ussdSystemError)
		return
	}

	response, err := h.ussdService.Handle(c.Request.Context(), req)
	if err != nil {
		slog.Error("ussd session failed", "session_id", req.SessionID, "error", err)
		c.String(http.StatusInternalServerError, ussdSystemError)
		return
	}
	c.String(http.StatusOK, response)
}
