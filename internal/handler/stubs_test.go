package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/filmhaus/cinema-api/internal/queue"
	"github.com/filmhaus/cinema-api/internal/repository"
)

// movieStoreStub is an in-memory MovieStore for handler tests.
type movieStoreStub struct {
	summaries []repository.MovieSummary
	detail    *repository.MovieDetail
	movie     *repository.Movie

	listErr   error
	createErr error

	gotFilter     *repository.MovieFilter
	created       *repository.Movie
	createdGenres []uint64
	createdActors []uint64
	setPathCalls  []sql.NullString
	setPathErr    error
}

func (s *movieStoreStub) List(ctx context.Context, f repository.MovieFilter) ([]repository.MovieSummary, error) {
	s.gotFilter = &f
	return s.summaries, s.listErr
}

func (s *movieStoreStub) GetDetail(ctx context.Context, id uint64) (*repository.MovieDetail, error) {
	if s.detail == nil || s.detail.ID != id {
		return nil, repository.ErrMovieNotFound
	}
	return s.detail, nil
}

func (s *movieStoreStub) GetByID(ctx context.Context, id uint64) (*repository.Movie, error) {
	if s.movie == nil || s.movie.ID != id {
		return nil, repository.ErrMovieNotFound
	}
	return s.movie, nil
}

func (s *movieStoreStub) Create(ctx context.Context, m *repository.Movie, genreIDs, actorIDs []uint64) error {
	if s.createErr != nil {
		return s.createErr
	}
	m.ID = 7
	s.created = m
	s.createdGenres = genreIDs
	s.createdActors = actorIDs
	return nil
}

func (s *movieStoreStub) SetImagePath(ctx context.Context, id uint64, p sql.NullString) error {
	if s.setPathErr != nil {
		return s.setPathErr
	}
	s.setPathCalls = append(s.setPathCalls, p)
	if s.movie != nil && s.movie.ID == id {
		s.movie.ImagePath = p
	}
	return nil
}

// sessionStoreStub is an in-memory SessionStore for handler tests.
type sessionStoreStub struct {
	rows    []repository.SessionRow
	listErr error
}

func (s *sessionStoreStub) List(ctx context.Context) ([]repository.SessionRow, error) {
	return s.rows, s.listErr
}

func (s *sessionStoreStub) GetByID(ctx context.Context, id uint64) (*repository.SessionRow, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (s *sessionStoreStub) Create(ctx context.Context, sess *repository.MovieSession) error {
	sess.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, repository.SessionRow{
		ID:       sess.ID,
		ShowTime: sess.ShowTime,
		MovieID:  sess.MovieID,
		HallID:   sess.CinemaHallID,
	})
	return nil
}

// hallLookupStub resolves halls for session creation tests.
type hallLookupStub struct {
	hall *repository.CinemaHall
}

func (s *hallLookupStub) GetByID(ctx context.Context, id uint64) (*repository.CinemaHall, error) {
	if s.hall == nil || s.hall.ID != id {
		return nil, repository.ErrHallNotFound
	}
	return s.hall, nil
}

// eventsStub records published catalog events.
type eventsStub struct {
	events []queue.CatalogEvent
}

func (s *eventsStub) PublishCatalogEvent(ctx context.Context, ev queue.CatalogEvent) error {
	s.events = append(s.events, ev)
	return nil
}

// genreStoreStub is an in-memory GenreStore for handler tests.
type genreStoreStub struct {
	genres    []*repository.Genre
	createErr error
}

func (s *genreStoreStub) Create(ctx context.Context, g *repository.Genre) error {
	if s.createErr != nil {
		return s.createErr
	}
	g.ID = uint64(len(s.genres) + 1)
	s.genres = append(s.genres, g)
	return nil
}

func (s *genreStoreStub) GetByID(ctx context.Context, id uint64) (*repository.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, repository.ErrGenreNotFound
}

func (s *genreStoreStub) ListAll(ctx context.Context) ([]*repository.Genre, error) {
	return s.genres, nil
}

// actorStoreStub is an in-memory ActorStore for handler tests.
type actorStoreStub struct {
	actors []*repository.Actor
}

func (s *actorStoreStub) Create(ctx context.Context, a *repository.Actor) error {
	a.ID = uint64(len(s.actors) + 1)
	s.actors = append(s.actors, a)
	return nil
}

func (s *actorStoreStub) GetByID(ctx context.Context, id uint64) (*repository.Actor, error) {
	for _, a := range s.actors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrActorNotFound
}

func (s *actorStoreStub) ListAll(ctx context.Context) ([]*repository.Actor, error) {
	return s.actors, nil
}

// hallStoreStub is an in-memory HallStore for handler tests.
type hallStoreStub struct {
	halls []*repository.CinemaHall
}

func (s *hallStoreStub) Create(ctx context.Context, h *repository.CinemaHall) error {
	h.ID = uint64(len(s.halls) + 1)
	s.halls = append(s.halls, h)
	return nil
}

func (s *hallStoreStub) ListAll(ctx context.Context) ([]*repository.CinemaHall, error) {
	return s.halls, nil
}

// userStoreStub is an in-memory UserStore for auth handler tests.
type userStoreStub struct {
	users  map[string]repository.User // by email
	nextID uint64
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{users: map[string]repository.User{}, nextID: 1}
}

func (s *userStoreStub) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	if _, dup := s.users[email]; dup {
		return 0, repository.ErrEmailExists
	}
	id := s.nextID
	s.nextID++
	s.users[email] = repository.User{ID: id, Email: email, PasswordHash: password, Role: role}
	return id, nil
}

func (s *userStoreStub) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return repository.User{}, sql.ErrNoRows
}

func (s *userStoreStub) GetByID(ctx context.Context, id uint64) (repository.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, sql.ErrNoRows
}

// tokenStoreStub records refresh-token operations for auth handler tests.
type tokenStoreStub struct {
	stored        map[string]uint64 // hash -> userID
	revokedHashes []string
	revokedUsers  []uint64
}

func newTokenStoreStub() *tokenStoreStub {
	return &tokenStoreStub{stored: map[string]uint64{}}
}

func (s *tokenStoreStub) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.stored[tokenHash] = userID
	return nil
}

func (s *tokenStoreStub) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	if uid, ok := s.stored[tokenHash]; ok {
		return uid, nil
	}
	return 0, sql.ErrNoRows
}

func (s *tokenStoreStub) RevokeByHash(ctx context.Context, tokenHash string) error {
	delete(s.stored, tokenHash)
	s.revokedHashes = append(s.revokedHashes, tokenHash)
	return nil
}

func (s *tokenStoreStub) RevokeAllForUser(ctx context.Context, userID uint64) error {
	for h, uid := range s.stored {
		if uid == userID {
			delete(s.stored, h)
		}
	}
	s.revokedUsers = append(s.revokedUsers, userID)
	return nil
}
