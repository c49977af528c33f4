// Package repository contains data access logic for movie sessions.  A
// MovieSession represents a scheduled screening of a movie in a cinema hall.
// Sessions always reference an existing movie and hall; handlers validate
// referenced IDs before creation so no orphaned sessions exist.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// MovieSession mirrors the 'movie_sessions' table.
// NOTE: ShowTime is stored in DB format "2006-01-02 15:04:05" (UTC).
type MovieSession struct {
	ID           uint64 // movie_sessions.id
	ShowTime     string // movie_sessions.show_time ("YYYY-MM-DD HH:MM:SS" UTC)
	MovieID      uint64 // movie_sessions.movie_id
	CinemaHallID uint64 // movie_sessions.cinema_hall_id
}

// SessionRow is a session read joined with its movie and hall.  The movie's
// image path is denormalized into the row at read time so session listings
// can expose the poster without a second query.
type SessionRow struct {
	ID             uint64
	ShowTime       string
	MovieID        uint64
	MovieTitle     string
	MovieImagePath string // empty when the movie has no image
	HallID         uint64
	HallName       string
	HallCapacity   uint32
}

// ErrSessionNotFound indicates that a session was not located in the DB.
var ErrSessionNotFound = errors.New("movie session not found")

// SessionRepo manages persistence for movie sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionSelect = `SELECT
		s.id,
		DATE_FORMAT(s.show_time, '%Y-%m-%d %T') AS show_time,
		s.movie_id,
		m.title AS movie_title,
		COALESCE(m.image_path, '') AS movie_image_path,
		s.cinema_hall_id,
		ch.name AS hall_name,
		ch.seat_rows * ch.seats_in_row AS hall_capacity
	FROM movie_sessions s
	JOIN movies m        ON m.id = s.movie_id
	JOIN cinema_halls ch ON ch.id = s.cinema_hall_id`

// Create inserts a session and assigns the generated ID back to s.
func (r *SessionRepo) Create(ctx context.Context, s *MovieSession) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movie_sessions (show_time, movie_id, cinema_hall_id) VALUES (?, ?, ?)`,
		s.ShowTime, s.MovieID, s.CinemaHallID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List returns all sessions joined with movie and hall data, ordered by
// show time then ID.
func (r *SessionRepo) List(ctx context.Context) ([]SessionRow, error) {
	rows, err := r.db.QueryContext(ctx, sessionSelect+` ORDER BY s.show_time, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SessionRow, 0)
	for rows.Next() {
		var d SessionRow
		if err := rows.Scan(&d.ID, &d.ShowTime, &d.MovieID, &d.MovieTitle, &d.MovieImagePath,
			&d.HallID, &d.HallName, &d.HallCapacity); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a single joined session row.  It returns
// ErrSessionNotFound when no row matches.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*SessionRow, error) {
	var d SessionRow
	err := r.db.QueryRowContext(ctx, sessionSelect+` WHERE s.id = ?`, id).
		Scan(&d.ID, &d.ShowTime, &d.MovieID, &d.MovieTitle, &d.MovieImagePath,
			&d.HallID, &d.HallName, &d.HallCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &d, nil
}
