package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"shamba-service/internal/services"
	"shamba-service/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinel errors to a status code. Internal errors
// are logged and replaced with fallback so driver messages never reach clients.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUpstreamUnavailable):
		slog.Warn("upstream unavailable", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, utils.CreateErrorResponse("Service Unavailable", fallback+". Please try again later."))
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("Bad Request", clientMessage(err)))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("Not Found", clientMessage(err)))
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse("Internal server error", fallback))
	}
}

// clientMessage strips the sentinel prefix, "validation error: pricePerBag must
// be greater than 0" becomes "pricePerBag must be greater than 0".
func clientMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{services.ErrValidation, services.ErrInvalidInput, services.ErrNotFound} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
