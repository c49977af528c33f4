package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhaus/cinema-api/internal/media"
	"github.com/filmhaus/cinema-api/internal/queue"
	"github.com/filmhaus/cinema-api/internal/repository"
)

func newTestImages(t *testing.T) *media.DiskStore {
	t.Helper()
	s, err := media.NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)
	return s
}

func newContext(e *echo.Echo, method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAdmin(c echo.Context) {
	c.Set("user_id", float64(1))
	c.Set("role", "ADMIN")
}

func TestListMoviesNoFilter(t *testing.T) {
	store := &movieStoreStub{summaries: []repository.MovieSummary{
		{ID: 1, Title: "Alpha", Duration: 90, Genres: []string{"Drama"}, Actors: []string{"A B"}},
		{ID: 2, Title: "Beta", Duration: 120, Genres: []string{}, Actors: []string{}, ImagePath: "movies/x.png"},
	}}
	h := NewMovieHandler(store, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies", nil, "")
	require.NoError(t, h.ListMovies(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Alpha", out[0]["title"])
	assert.Nil(t, out[0]["image"])
	assert.Equal(t, "/media/movies/x.png", out[1]["image"])
	assert.Equal(t, repository.MovieFilter{}, *store.gotFilter)
}

func TestListMoviesPassesFilters(t *testing.T) {
	store := &movieStoreStub{}
	h := NewMovieHandler(store, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies?title=Matrix&genres=3&actors=9", nil, "")
	require.NoError(t, h.ListMovies(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, store.gotFilter)
	assert.Equal(t, "Matrix", store.gotFilter.Title)
	require.NotNil(t, store.gotFilter.GenreID)
	assert.Equal(t, uint64(3), *store.gotFilter.GenreID)
	require.NotNil(t, store.gotFilter.ActorID)
	assert.Equal(t, uint64(9), *store.gotFilter.ActorID)
}

func TestListMoviesEmptyCatalogIsArray(t *testing.T) {
	h := NewMovieHandler(&movieStoreStub{}, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies", nil, "")
	require.NoError(t, h.ListMovies(c))
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListMoviesBadFilterParams(t *testing.T) {
	h := NewMovieHandler(&movieStoreStub{}, newTestImages(t), nil)

	for _, target := range []string{"/v1/movies?genres=drama", "/v1/movies?actors=-1"} {
		c, rec := newContext(echo.New(), http.MethodGet, target, nil, "")
		require.NoError(t, h.ListMovies(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	h := NewMovieHandler(&movieStoreStub{}, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies/5", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovieInvalidID(t *testing.T) {
	h := NewMovieHandler(&movieStoreStub{}, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies/abc", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMovieDetail(t *testing.T) {
	store := &movieStoreStub{detail: &repository.MovieDetail{
		Movie: repository.Movie{
			ID: 5, Title: "Alpha", Description: "desc", Duration: 90,
			ImagePath: sql.NullString{String: "movies/a.jpg", Valid: true},
		},
		Genres: []repository.Genre{{ID: 2, Name: "Drama"}},
		Actors: []repository.Actor{{ID: 3, FirstName: "Keanu", LastName: "Reeves"}},
	}}
	h := NewMovieHandler(store, newTestImages(t), nil)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/movies/5", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.GetMovie(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Alpha", out["title"])
	assert.Equal(t, "/media/movies/a.jpg", out["image"])

	genres := out["genres"].([]any)
	require.Len(t, genres, 1)
	assert.Equal(t, "Drama", genres[0].(map[string]any)["name"])

	actors := out["actors"].([]any)
	require.Len(t, actors, 1)
	assert.Equal(t, "Keanu Reeves", actors[0].(map[string]any)["full_name"])
}

func TestCreateMovieJSON(t *testing.T) {
	store := &movieStoreStub{}
	events := &eventsStub{}
	h := NewMovieHandler(store, newTestImages(t), events)

	body := `{"title":"Gamma","description":"d","duration":100,"genres":[1,2],"actors":[3]}`
	c, rec := newContext(echo.New(), http.MethodPost, "/v1/movies", strings.NewReader(body), echo.MIMEApplicationJSON)
	asAdmin(c)

	// Create assigns ID 7; detail fetch after creation must resolve it.
	store.detail = &repository.MovieDetail{
		Movie:  repository.Movie{ID: 7, Title: "Gamma", Description: "d", Duration: 100},
		Genres: []repository.Genre{{ID: 1, Name: "Drama"}, {ID: 2, Name: "Comedy"}},
		Actors: []repository.Actor{{ID: 3, FirstName: "A", LastName: "B"}},
	}

	require.NoError(t, h.CreateMovie(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, store.created)
	assert.Equal(t, "Gamma", store.created.Title)
	assert.Equal(t, []uint64{1, 2}, store.createdGenres)
	assert.Equal(t, []uint64{3}, store.createdActors)

	require.Len(t, events.events, 1)
	assert.Equal(t, queue.EventMovieCreated, events.events[0].Type)
	assert.Equal(t, uint64(7), events.events[0].MovieID)
	assert.Equal(t, uint64(1), events.events[0].AdminID)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, float64(7), out["id"])
	assert.Nil(t, out["image"])
}

func TestCreateMovieRequiresTitleAndDuration(t *testing.T) {
	h := NewMovieHandler(&movieStoreStub{}, newTestImages(t), nil)

	for _, body := range []string{
		`{"title":"","duration":100}`,
		`{"title":"X","duration":0}`,
	} {
		c, rec := newContext(echo.New(), http.MethodPost, "/v1/movies", strings.NewReader(body), echo.MIMEApplicationJSON)
		asAdmin(c)
		require.NoError(t, h.CreateMovie(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateMovieUnknownRelation(t *testing.T) {
	store := &movieStoreStub{createErr: repository.ErrBadReference}
	h := NewMovieHandler(store, newTestImages(t), nil)

	body := `{"title":"X","duration":100,"genres":[999]}`
	c, rec := newContext(echo.New(), http.MethodPost, "/v1/movies", strings.NewReader(body), echo.MIMEApplicationJSON)
	asAdmin(c)
	require.NoError(t, h.CreateMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown genre or actor id")
}

func TestCreateMovieMultipartIgnoresInlineImage(t *testing.T) {
	store := &movieStoreStub{}
	h := NewMovieHandler(store, newTestImages(t), nil)

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Delta"))
	require.NoError(t, w.WriteField("duration", "95"))
	require.NoError(t, w.WriteField("genres", "1"))
	fw, err := w.CreateFormFile("image", "poster.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("ignored bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	c, rec := newContext(echo.New(), http.MethodPost, "/v1/movies", strings.NewReader(buf.String()), w.FormDataContentType())
	asAdmin(c)

	store.detail = &repository.MovieDetail{
		Movie:  repository.Movie{ID: 7, Title: "Delta", Duration: 95},
		Genres: []repository.Genre{{ID: 1, Name: "Drama"}},
		Actors: []repository.Actor{},
	}

	require.NoError(t, h.CreateMovie(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, store.created)
	assert.Equal(t, "Delta", store.created.Title)
	assert.Equal(t, uint32(95), store.created.Duration)
	assert.Empty(t, store.setPathCalls)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Nil(t, out["image"])
}
