package repository

import (
	"context"
	"database/sql"
	"errors"
)

// CinemaHall represents a screening hall.  Rows and SeatsInRow describe the
// seat layout; capacity is their product and is computed in responses rather
// than stored.
type CinemaHall struct {
	ID         uint64 // cinema_halls.id
	Name       string // cinema_halls.name
	Rows       uint32 // cinema_halls.seat_rows
	SeatsInRow uint32 // cinema_halls.seats_in_row
}

// Capacity returns the total number of seats in the hall.
func (h CinemaHall) Capacity() uint32 {
	return h.Rows * h.SeatsInRow
}

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("cinema hall not found")

// HallRepo provides methods to create and retrieve cinema halls.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a hall and assigns the generated ID back to h.  The caller
// must have validated that rows and seats_in_row are positive.
func (r *HallRepo) Create(ctx context.Context, h *CinemaHall) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cinema_halls (name, seat_rows, seats_in_row) VALUES (?, ?, ?)`,
		h.Name, h.Rows, h.SeatsInRow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*CinemaHall, error) {
	var h CinemaHall
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, seat_rows, seats_in_row FROM cinema_halls WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListAll returns every hall ordered by ID.
func (r *HallRepo) ListAll(ctx context.Context) ([]*CinemaHall, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, seat_rows, seats_in_row FROM cinema_halls ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CinemaHall
	for rows.Next() {
		h := new(CinemaHall)
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
