package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SystemRoutes registers liveness and scrape endpoints.
type SystemRoutes struct {
	metrics http.Handler
}

// NewSystemRoutes constructs system routes. A nil metrics handler leaves /metrics unregistered.
func NewSystemRoutes(metrics http.Handler) *SystemRoutes {
	return &SystemRoutes{metrics: metrics}
}

// RegisterRoutes registers system endpoints.
func (r *SystemRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/health", handleHealth)
	if r.metrics != nil {
		s.GET("/metrics", echo.WrapHandler(r.metrics))
	}
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "github-webhook-receiver",
	})
}
