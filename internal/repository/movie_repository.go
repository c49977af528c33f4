// Package repository contains data access logic for the catalog.  This file
// defines the Movie model, the catalog filter and repository methods for
// movies including their many-to-many genre and actor links.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Movie mirrors the 'movies' table.  ImagePath is the slash-separated path
// of the attached image relative to the media root; it is NULL until an
// image is uploaded, which is a valid, displayable state.
type Movie struct {
	ID          uint64         // movies.id
	Title       string         // movies.title
	Description string         // movies.description
	Duration    uint32         // movies.duration (minutes)
	ImagePath   sql.NullString // movies.image_path (nullable)
}

// MovieSummary is a catalog list row.  Genres and Actors carry display
// names aggregated from the join tables.
type MovieSummary struct {
	ID          uint64
	Title       string
	Description string
	Duration    uint32
	Genres      []string
	Actors      []string
	ImagePath   string // empty when no image is attached
}

// MovieDetail is a single-movie read with its full genre and actor sets.
type MovieDetail struct {
	Movie
	Genres []Genre
	Actors []Actor
}

// MovieFilter restricts the catalog listing.  Nil pointers and the empty
// title mean "no restriction"; present filters compose with AND.
// Title matching is a case-insensitive substring match.
type MovieFilter struct {
	Title   string  // substring of movies.title
	GenreID *uint64 // movies linked to this genre
	ActorID *uint64 // movies linked to this actor
}

// ErrMovieNotFound is returned when a movie lookup fails.
var ErrMovieNotFound = errors.New("movie not found")

// ErrBadReference signals a genre or actor ID that does not exist when
// linking relations at movie creation.
var ErrBadReference = errors.New("referenced genre or actor does not exist")

// MovieRepo manages persistence for movies and their relations.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// likeEscaper neutralizes LIKE metacharacters in user input so a title
// filter of "100%" matches the literal string and not every title
// containing "100".  Backslash is MySQL's default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClause compiles a MovieFilter into a WHERE condition and its
// arguments.  The alias "m" refers to the movies table.  An empty filter
// compiles to "1=1" so the caller can always append the condition.
func filterClause(f MovieFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if t := strings.TrimSpace(f.Title); t != "" {
		where = append(where, "LOWER(m.title) LIKE ?")
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(t))+"%")
	}
	if f.GenreID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = ?)")
		args = append(args, *f.GenreID)
	}
	if f.ActorID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.id AND ma.actor_id = ?)")
		args = append(args, *f.ActorID)
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// List returns catalog summaries matching the filter, ordered by ID so the
// result is deterministic for a fixed data set.  No matches yield an empty
// slice, not an error.
func (r *MovieRepo) List(ctx context.Context, f MovieFilter) ([]MovieSummary, error) {
	cond, args := filterClause(f)

	q := `SELECT
			m.id,
			m.title,
			m.description,
			m.duration,
			COALESCE(m.image_path, '') AS image_path,
			COALESCE(GROUP_CONCAT(DISTINCT g.name ORDER BY g.name SEPARATOR ','), '') AS genre_names,
			COALESCE(GROUP_CONCAT(DISTINCT CONCAT(a.first_name, ' ', a.last_name) ORDER BY a.first_name, a.last_name SEPARATOR ','), '') AS actor_names
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g        ON g.id = mg.genre_id
		LEFT JOIN movie_actors ma ON ma.movie_id = m.id
		LEFT JOIN actors a        ON a.id = ma.actor_id
		WHERE ` + cond + `
		GROUP BY m.id, m.title, m.description, m.duration, m.image_path
		ORDER BY m.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MovieSummary, 0)
	for rows.Next() {
		var (
			s          MovieSummary
			genreNames string
			actorNames string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Duration, &s.ImagePath, &genreNames, &actorNames); err != nil {
			return nil, err
		}
		s.Genres = splitNames(genreNames)
		s.Actors = splitNames(actorNames)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitNames turns a GROUP_CONCAT result into a slice, mapping the empty
// aggregate to an empty (non-nil) slice so it serializes as [].
func splitNames(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// GetByID retrieves a movie row without its relations.  It returns
// ErrMovieNotFound when no row is found.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	var m Movie
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, duration, image_path FROM movies WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &m.ImagePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetDetail retrieves a movie together with its genres (ordered by name)
// and actors (ordered by ID).
func (r *MovieRepo) GetDetail(ctx context.Context, id uint64) (*MovieDetail, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &MovieDetail{Movie: *m, Genres: []Genre{}, Actors: []Actor{}}

	grows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.name
		 FROM genres g JOIN movie_genres mg ON mg.genre_id = g.id
		 WHERE mg.movie_id = ? ORDER BY g.name`, id)
	if err != nil {
		return nil, err
	}
	defer grows.Close()
	for grows.Next() {
		var g Genre
		if err := grows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		d.Genres = append(d.Genres, g)
	}
	if err := grows.Err(); err != nil {
		return nil, err
	}

	arows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.first_name, a.last_name
		 FROM actors a JOIN movie_actors ma ON ma.actor_id = a.id
		 WHERE ma.movie_id = ? ORDER BY a.id`, id)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var a Actor
		if err := arows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		d.Actors = append(d.Actors, a)
	}
	if err := arows.Err(); err != nil {
		return nil, err
	}

	return d, nil
}

// dedupeIDs drops repeated IDs while preserving first-seen order.  Clients
// may send the same genre or actor twice; inserting the pair twice would
// trip the join table's primary key.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create inserts a movie and its genre/actor links in one transaction and
// assigns the generated ID back to m.  A genre or actor ID that violates a
// foreign key maps to ErrBadReference; duplicate IDs in the payload are
// linked once.  The image reference is never set here: attaching an image
// is a separate operation.
func (r *MovieRepo) Create(ctx context.Context, m *Movie, genreIDs, actorIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO movies (title, description, duration) VALUES (?, ?, ?)`,
		m.Title, m.Description, m.Duration)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	for _, gid := range dedupeIDs(genreIDs) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`, m.ID, gid); err != nil {
			if isFKViolation(err) {
				return ErrBadReference
			}
			return err
		}
	}
	for _, aid := range dedupeIDs(actorIDs) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_actors (movie_id, actor_id) VALUES (?, ?)`, m.ID, aid); err != nil {
			if isFKViolation(err) {
				return ErrBadReference
			}
			return err
		}
	}

	return tx.Commit()
}

// SetImagePath points the movie's image reference at a stored path, or
// clears it when p is invalid.  The caller is responsible for removing the
// previously stored file.
func (r *MovieRepo) SetImagePath(ctx context.Context, id uint64, p sql.NullString) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE movies SET image_path = ? WHERE id = ?`, p, id)
	return err
}
