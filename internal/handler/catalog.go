// This file defines handlers for the catalog reference data: genres, actors
// and cinema halls.  Listing and lookup are open to any authenticated user;
// creation is ADMIN only.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/repository"
)

// GenreStore is the persistence surface the genre handlers need.
// *repository.GenreRepo satisfies it.
type GenreStore interface {
	Create(ctx context.Context, g *repository.Genre) error
	GetByID(ctx context.Context, id uint64) (*repository.Genre, error)
	ListAll(ctx context.Context) ([]*repository.Genre, error)
}

// ActorStore is the persistence surface the actor handlers need.
// *repository.ActorRepo satisfies it.
type ActorStore interface {
	Create(ctx context.Context, a *repository.Actor) error
	GetByID(ctx context.Context, id uint64) (*repository.Actor, error)
	ListAll(ctx context.Context) ([]*repository.Actor, error)
}

// HallStore is the persistence surface the hall handlers need.
// *repository.HallRepo satisfies it.
type HallStore interface {
	Create(ctx context.Context, h *repository.CinemaHall) error
	ListAll(ctx context.Context) ([]*repository.CinemaHall, error)
}

// CatalogHandler bundles stores for the reference-data endpoints.
type CatalogHandler struct {
	Genres GenreStore
	Actors ActorStore
	Halls  HallStore
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(genres GenreStore, actors ActorStore, halls HallStore) *CatalogHandler {
	if genres == nil || actors == nil || halls == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	return &CatalogHandler{Genres: genres, Actors: actors, Halls: halls}
}

type hallResp struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	Capacity   uint32 `json:"capacity"`
}

// ListGenres handles GET /v1/genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	items, err := h.Genres.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]genreResp, 0, len(items))
	for _, g := range items {
		out = append(out, genreResp{ID: g.ID, Name: g.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// GetGenre handles GET /v1/genres/:id.
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, genreResp{ID: g.ID, Name: g.Name})
}

// CreateGenre handles POST /v1/genres (ADMIN only).  Duplicate names yield
// 409.
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var body struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := &repository.Genre{Name: body.Name}
	if err := h.Genres.Create(c.Request().Context(), g); err != nil {
		if errors.Is(err, repository.ErrGenreExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create genre"})
	}
	return c.JSON(http.StatusCreated, genreResp{ID: g.ID, Name: g.Name})
}

// ListActors handles GET /v1/actors.
func (h *CatalogHandler) ListActors(c echo.Context) error {
	items, err := h.Actors.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]actorResp, 0, len(items))
	for _, a := range items {
		out = append(out, actorResp{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()})
	}
	return c.JSON(http.StatusOK, out)
}

// GetActor handles GET /v1/actors/:id.
func (h *CatalogHandler) GetActor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Actors.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "actor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, actorResp{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()})
}

// CreateActor handles POST /v1/actors (ADMIN only).
func (h *CatalogHandler) CreateActor(c echo.Context) error {
	var body struct {
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.LastName = strings.TrimSpace(body.LastName)
	if body.FirstName == "" || body.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	a := &repository.Actor{FirstName: body.FirstName, LastName: body.LastName}
	if err := h.Actors.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create actor"})
	}
	return c.JSON(http.StatusCreated, actorResp{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()})
}

// ListHalls handles GET /v1/halls.  Capacity is rows × seats_in_row.
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	items, err := h.Halls.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]hallResp, 0, len(items))
	for _, hall := range items {
		out = append(out, hallResp{
			ID:         hall.ID,
			Name:       hall.Name,
			Rows:       hall.Rows,
			SeatsInRow: hall.SeatsInRow,
			Capacity:   hall.Capacity(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateHall handles POST /v1/halls (ADMIN only).  Rows and seats_in_row
// must be positive.
func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var body struct {
		Name       string `json:"name" form:"name"`
		Rows       uint32 `json:"rows" form:"rows"`
		SeatsInRow uint32 `json:"seats_in_row" form:"seats_in_row"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || body.Rows == 0 || body.SeatsInRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name, rows and seats_in_row are required and must be greater than zero",
		})
	}
	hall := &repository.CinemaHall{Name: body.Name, Rows: body.Rows, SeatsInRow: body.SeatsInRow}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hall"})
	}
	return c.JSON(http.StatusCreated, hallResp{
		ID:         hall.ID,
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	})
}
