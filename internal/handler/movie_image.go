// This file implements the movie image attachment lifecycle: upload
// (validate, store, point the movie at the new file), replacement (the old
// file is removed once the new reference is persisted) and deletion (no
// orphaned files are left behind).
package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/media"
	"github.com/filmhaus/cinema-api/internal/queue"
	"github.com/filmhaus/cinema-api/internal/repository"
)

// UploadMovieImage handles POST /v1/movies/:id/image (ADMIN only).  The
// multipart "image" part must decode as JPEG, PNG or GIF; anything else is
// rejected without touching the movie's current image.
func (h *MovieHandler) UploadMovieImage(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}

	ext, err := media.DecodeCheck(data)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
	}

	rel, err := h.Images.SaveMovieImage(data, ext)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
	}
	if err := h.Movies.SetImagePath(ctx, id, sql.NullString{String: rel, Valid: true}); err != nil {
		// The reference never changed, so drop the file we just wrote.
		_ = h.Images.Remove(rel)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie"})
	}
	// Replacement: the previous file is unreferenced now, remove it.
	if m.ImagePath.Valid {
		_ = h.Images.Remove(m.ImagePath.String)
	}

	url := h.Images.URL(rel)
	h.publish(ctx, queue.CatalogEvent{
		Type:       queue.EventImageAttached,
		MovieID:    id,
		MovieTitle: m.Title,
		Image:      url,
		AdminID:    adminID,
		OccurredAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	})

	return c.JSON(http.StatusOK, echo.Map{"image": url})
}

// DeleteMovieImage handles DELETE /v1/movies/:id/image (ADMIN only).  It
// clears the movie's image reference and removes the stored file.  Deleting
// when no image is attached is a no-op 204.
func (h *MovieHandler) DeleteMovieImage(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if m.ImagePath.Valid {
		if err := h.Movies.SetImagePath(ctx, id, sql.NullString{}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie"})
		}
		_ = h.Images.Remove(m.ImagePath.String)

		h.publish(ctx, queue.CatalogEvent{
			Type:       queue.EventImageRemoved,
			MovieID:    id,
			MovieTitle: m.Title,
			AdminID:    adminID,
			OccurredAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
