// This file defines handlers for movie sessions.  Session reads join the
// referenced movie and hall; each row exposes the movie's image under
// movie_image so clients can render posters without a second request.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/repository"
)

// SessionStore is the persistence surface the session handlers need.
// *repository.SessionRepo satisfies it.
type SessionStore interface {
	List(ctx context.Context) ([]repository.SessionRow, error)
	GetByID(ctx context.Context, id uint64) (*repository.SessionRow, error)
	Create(ctx context.Context, s *repository.MovieSession) error
}

// MovieLookup resolves a movie by ID.  *repository.MovieRepo satisfies it.
type MovieLookup interface {
	GetByID(ctx context.Context, id uint64) (*repository.Movie, error)
}

// HallLookup resolves a hall by ID.  *repository.HallRepo satisfies it.
type HallLookup interface {
	GetByID(ctx context.Context, id uint64) (*repository.CinemaHall, error)
}

// SessionHandler bundles dependencies for session endpoints.
type SessionHandler struct {
	Sessions SessionStore
	Movies   MovieLookup
	Halls    HallLookup
	Images   ImageStore
}

// NewSessionHandler constructs a SessionHandler and panics if any
// dependency is nil.
func NewSessionHandler(sessions SessionStore, movies MovieLookup, halls HallLookup, images ImageStore) *SessionHandler {
	if sessions == nil || movies == nil || halls == nil || images == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions, Movies: movies, Halls: halls, Images: images}
}

type sessionResp struct {
	ID                 uint64  `json:"id"`
	ShowTime           string  `json:"show_time"`
	MovieID            uint64  `json:"movie_id"`
	MovieTitle         string  `json:"movie_title"`
	MovieImage         *string `json:"movie_image"` // null when the movie has no image
	CinemaHallID       uint64  `json:"cinema_hall_id"`
	CinemaHallName     string  `json:"cinema_hall_name"`
	CinemaHallCapacity uint32  `json:"cinema_hall_capacity"`
}

func (h *SessionHandler) sessionResp(d repository.SessionRow) sessionResp {
	return sessionResp{
		ID:                 d.ID,
		ShowTime:           d.ShowTime,
		MovieID:            d.MovieID,
		MovieTitle:         d.MovieTitle,
		MovieImage:         imageURL(h.Images, d.MovieImagePath),
		CinemaHallID:       d.HallID,
		CinemaHallName:     d.HallName,
		CinemaHallCapacity: d.HallCapacity,
	}
}

// ListSessions handles GET /v1/sessions.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	items, err := h.Sessions.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]sessionResp, 0, len(items))
	for _, d := range items {
		out = append(out, h.sessionResp(d))
	}
	return c.JSON(http.StatusOK, out)
}

// GetSession handles GET /v1/sessions/:id.
func (h *SessionHandler) GetSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, h.sessionResp(*d))
}

// showTimeLayouts are the accepted show_time formats.  Times are stored in
// the DB layout, UTC.
var showTimeLayouts = []string{"2006-01-02 15:04:05", time.RFC3339}

func parseShowTime(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02 15:04:05"), true
		}
	}
	return "", false
}

// CreateSession handles POST /v1/sessions (ADMIN only).  The referenced
// movie and hall must exist; a session never dangles.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var body struct {
		ShowTime     string `json:"show_time" form:"show_time"`
		MovieID      uint64 `json:"movie_id" form:"movie_id"`
		CinemaHallID uint64 `json:"cinema_hall_id" form:"cinema_hall_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	showTime, ok := parseShowTime(body.ShowTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_time must be 'YYYY-MM-DD HH:MM:SS' or RFC3339"})
	}
	if body.MovieID == 0 || body.CinemaHallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and cinema_hall_id are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, body.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.Halls.GetByID(ctx, body.CinemaHallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	s := &repository.MovieSession{
		ShowTime:     showTime,
		MovieID:      body.MovieID,
		CinemaHallID: body.CinemaHallID,
	}
	if err := h.Sessions.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create session"})
	}

	d, err := h.Sessions.GetByID(ctx, s.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, h.sessionResp(*d))
}
