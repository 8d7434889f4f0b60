// Package v1 provides HTTP handlers for the wrapped render service.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/wrapped/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service     *service.Service
	exportsRoot string
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, exportsRoot string) *Handler {
	return &Handler{
		service:     service,
		exportsRoot: exportsRoot,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/status", h.Status)
	e.POST("/request-otp", h.RequestOTP)
	e.POST("/validate-otp", h.ValidateOTP)
	e.POST("/video", h.CreateVideo)
	e.GET("/video/:filename", h.GetVideo)
}

// Status returns the status of the server.
// GET /status
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
