package api

import (
	"time"

	xhttp "PumpStat/pkg/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the /test body.
type HealthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

// HealthEchoHandler serves the liveness probe.
type HealthEchoHandler struct{}

func NewHealthEchoHandler() *HealthEchoHandler { return &HealthEchoHandler{} }

func (h *HealthEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.Any("/test", h.Test)
}

func (h *HealthEchoHandler) Test(c echo.Context) error {
	return xhttp.SuccessResponse(c, HealthResponse{
		Message:   "API is working!",
		Timestamp: xhttp.FormatTimestamp(time.Now()),
		Method:    c.Request().Method,
		Status:    StatusSuccess,
	})
}
