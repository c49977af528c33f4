package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
)

// Genre is a movie category.  Names are unique.
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
}

// ErrGenreNotFound is returned when a genre lookup fails.
var ErrGenreNotFound = errors.New("genre not found")

// ErrGenreExists signals a duplicate genre name.
var ErrGenreExists = errors.New("genre already exists")

// GenreRepo provides persistence for genres.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// Create inserts a genre and assigns the generated ID back to g.
// A duplicate name maps to ErrGenreExists.
func (r *GenreRepo) Create(ctx context.Context, g *Genre) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, g.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrGenreExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID retrieves a genre by ID, returning ErrGenreNotFound when absent.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*Genre, error) {
	var g Genre
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM genres WHERE id = ?`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListAll returns every genre ordered by name.
func (r *GenreRepo) ListAll(ctx context.Context) ([]*Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Genre
	for rows.Next() {
		g := new(Genre)
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
