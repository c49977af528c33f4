package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the static media directory
// that serves uploaded movie images.
func RegisterRoutes(e *echo.Echo, mediaBaseURL, mediaRoot string) {
	// Health endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)
	// Uploaded images are fetched from the URLs returned in movie and
	// session responses, which live under this prefix.
	e.Static(mediaBaseURL, mediaRoot)
}
