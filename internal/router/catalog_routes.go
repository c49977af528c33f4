package router

import (
	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/handler"
	"github.com/filmhaus/cinema-api/internal/middleware"
)

// RegisterCatalog registers the catalog endpoints under /v1.  Reads require
// any authenticated user (401 without a valid token); writes require the
// ADMIN role (403 for customers).  The cache middleware is applied only to
// the reference-data listings: movie and session reads stay uncached so a
// freshly attached image shows up immediately.
func RegisterCatalog(e *echo.Echo, m *handler.MovieHandler, s *handler.SessionHandler, cat *handler.CatalogHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)

	// ---- Movies ----
	read.GET("/movies", m.ListMovies) // supports ?title= &genres= &actors=
	read.GET("/movies/:id", m.GetMovie)

	// ---- Sessions ----
	read.GET("/sessions", s.ListSessions)
	read.GET("/sessions/:id", s.GetSession)

	// ---- Reference data ----
	// The cache key is derived from the route pattern, so only the fixed
	// listing routes are cached; :id lookups would all share one key.
	read.GET("/genres", cat.ListGenres, cache)
	read.GET("/genres/:id", cat.GetGenre)
	read.GET("/actors", cat.ListActors, cache)
	read.GET("/actors/:id", cat.GetActor)
	read.GET("/halls", cat.ListHalls, cache)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	admin.POST("/movies", m.CreateMovie)
	// Image attachment is a separate step after creation; POST /movies
	// deliberately never persists an inline image payload.
	admin.POST("/movies/:id/image", m.UploadMovieImage)
	admin.DELETE("/movies/:id/image", m.DeleteMovieImage)

	admin.POST("/genres", cat.CreateGenre)
	admin.POST("/actors", cat.CreateActor)
	admin.POST("/halls", cat.CreateHall)
	admin.POST("/sessions", s.CreateSession)
}
