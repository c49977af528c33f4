package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Actor is a performer that can be linked to any number of movies.
// FullName is derived as "first_name last_name" at read time and never stored.
type Actor struct {
	ID        uint64 // actors.id
	FirstName string // actors.first_name
	LastName  string // actors.last_name
}

// FullName returns the display name used in API responses.
func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

// ErrActorNotFound is returned when an actor lookup fails.
var ErrActorNotFound = errors.New("actor not found")

// ActorRepo provides persistence for actors.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the given DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// Create inserts an actor and assigns the generated ID back to a.
func (r *ActorRepo) Create(ctx context.Context, a *Actor) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO actors (first_name, last_name) VALUES (?, ?)`,
		a.FirstName, a.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an actor by ID, returning ErrActorNotFound when absent.
func (r *ActorRepo) GetByID(ctx context.Context, id uint64) (*Actor, error) {
	var a Actor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM actors WHERE id = ?`, id).
		Scan(&a.ID, &a.FirstName, &a.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAll returns every actor ordered by ID.
func (r *ActorRepo) ListAll(ctx context.Context) ([]*Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM actors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Actor
	for rows.Next() {
		a := new(Actor)
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
