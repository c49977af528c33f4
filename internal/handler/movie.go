// Package handler exposes HTTP handlers for the cinema catalog.  This file
// defines movie listing, detail and creation.  Listing supports optional
// filters (title substring, genre id, actor id) that compose with AND;
// title matching is case-insensitive.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/queue"
	"github.com/filmhaus/cinema-api/internal/repository"
)

// MovieStore is the persistence surface the movie handlers need.
// *repository.MovieRepo satisfies it.
type MovieStore interface {
	List(ctx context.Context, f repository.MovieFilter) ([]repository.MovieSummary, error)
	GetDetail(ctx context.Context, id uint64) (*repository.MovieDetail, error)
	GetByID(ctx context.Context, id uint64) (*repository.Movie, error)
	Create(ctx context.Context, m *repository.Movie, genreIDs, actorIDs []uint64) error
	SetImagePath(ctx context.Context, id uint64, p sql.NullString) error
}

// ImageStore is the media surface the handlers need.  *media.DiskStore
// satisfies it.
type ImageStore interface {
	SaveMovieImage(data []byte, ext string) (string, error)
	Remove(rel string) error
	URL(rel string) string
}

// MovieHandler bundles dependencies for movie endpoints.
type MovieHandler struct {
	Movies MovieStore
	Images ImageStore
	Events CatalogEvents // may be nil; publishing is best-effort
}

// NewMovieHandler constructs a MovieHandler and panics if a required
// dependency is nil.
func NewMovieHandler(movies MovieStore, images ImageStore, events CatalogEvents) *MovieHandler {
	if movies == nil || images == nil {
		panic("nil dependency passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Images: images, Events: events}
}

// ----- response shapes -----

type movieSummaryResp struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    uint32   `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Image       *string  `json:"image"` // null when no image is attached
}

type genreResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type actorResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type movieDetailResp struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    uint32      `json:"duration"`
	Genres      []genreResp `json:"genres"`
	Actors      []actorResp `json:"actors"`
	Image       *string     `json:"image"`
}

// imageURL maps a stored relative path to a nullable URL.
func imageURL(images ImageStore, rel string) *string {
	if rel == "" {
		return nil
	}
	u := images.URL(rel)
	return &u
}

// parseMovieFilter builds a MovieFilter from query parameters.  The genres
// and actors parameters must be base-10 unsigned integers; anything else is
// a client error.
func parseMovieFilter(c echo.Context) (repository.MovieFilter, error) {
	f := repository.MovieFilter{Title: strings.TrimSpace(c.QueryParam("title"))}

	if raw := strings.TrimSpace(c.QueryParam("genres")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, errors.New("invalid genres filter")
		}
		f.GenreID = &id
	}
	if raw := strings.TrimSpace(c.QueryParam("actors")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, errors.New("invalid actors filter")
		}
		f.ActorID = &id
	}
	return f, nil
}

// ListMovies handles GET /v1/movies with optional title/genres/actors
// filters.  No filters returns the whole catalog; no matches returns an
// empty array.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	f, err := parseMovieFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	items, err := h.Movies.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	out := make([]movieSummaryResp, 0, len(items))
	for _, m := range items {
		out = append(out, movieSummaryResp{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Duration:    m.Duration,
			Genres:      m.Genres,
			Actors:      m.Actors,
			Image:       imageURL(h.Images, m.ImagePath),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetMovie handles GET /v1/movies/:id and returns the movie with its full
// genre and actor sets.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	d, err := h.Movies.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, h.detailResp(d))
}

func (h *MovieHandler) detailResp(d *repository.MovieDetail) movieDetailResp {
	resp := movieDetailResp{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Duration:    d.Duration,
		Genres:      make([]genreResp, 0, len(d.Genres)),
		Actors:      make([]actorResp, 0, len(d.Actors)),
		Image:       imageURL(h.Images, d.ImagePath.String),
	}
	for _, g := range d.Genres {
		resp.Genres = append(resp.Genres, genreResp{ID: g.ID, Name: g.Name})
	}
	for _, a := range d.Actors {
		resp.Actors = append(resp.Actors, actorResp{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			FullName:  a.FullName(),
		})
	}
	return resp
}

// CreateMovie handles POST /v1/movies (ADMIN only).  The body may arrive as
// JSON or multipart form data.  A multipart "image" file part is ignored:
// attaching an image is a separate upload step, so a freshly created movie
// never has one.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body struct {
		Title       string   `json:"title" form:"title"`
		Description string   `json:"description" form:"description"`
		Duration    uint32   `json:"duration" form:"duration"`
		Genres      []uint64 `json:"genres" form:"genres"`
		Actors      []uint64 `json:"actors" form:"actors"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || body.Duration == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and a positive duration are required"})
	}

	m := &repository.Movie{
		Title:       body.Title,
		Description: body.Description,
		Duration:    body.Duration,
	}
	ctx := c.Request().Context()
	if err := h.Movies.Create(ctx, m, body.Genres, body.Actors); err != nil {
		if errors.Is(err, repository.ErrBadReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown genre or actor id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}

	h.publish(ctx, queue.CatalogEvent{
		Type:       queue.EventMovieCreated,
		MovieID:    m.ID,
		MovieTitle: m.Title,
		AdminID:    adminID,
		OccurredAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	})

	d, err := h.Movies.GetDetail(ctx, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, h.detailResp(d))
}

// publish sends a catalog event when a publisher is configured.  Failures
// are already logged by the publisher and never affect the response.
func (h *MovieHandler) publish(ctx context.Context, ev queue.CatalogEvent) {
	if h.Events == nil {
		return
	}
	_ = h.Events.PublishCatalogEvent(ctx, ev)
}
