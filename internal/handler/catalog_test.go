package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhaus/cinema-api/internal/repository"
)

func TestGetGenre(t *testing.T) {
	genres := &genreStoreStub{genres: []*repository.Genre{{ID: 3, Name: "Drama"}}}
	h := NewCatalogHandler(genres, &actorStoreStub{}, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/genres/3", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, h.GetGenre(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, float64(3), out["id"])
	assert.Equal(t, "Drama", out["name"])
}

func TestGetGenreNotFound(t *testing.T) {
	h := NewCatalogHandler(&genreStoreStub{}, &actorStoreStub{}, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/genres/9", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.GetGenre(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetGenreInvalidID(t *testing.T) {
	h := NewCatalogHandler(&genreStoreStub{}, &actorStoreStub{}, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/genres/x", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, h.GetGenre(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetActor(t *testing.T) {
	actors := &actorStoreStub{actors: []*repository.Actor{{ID: 2, FirstName: "Keanu", LastName: "Reeves"}}}
	h := NewCatalogHandler(&genreStoreStub{}, actors, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/actors/2", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.GetActor(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Keanu Reeves", out["full_name"])
}

func TestGetActorNotFound(t *testing.T) {
	h := NewCatalogHandler(&genreStoreStub{}, &actorStoreStub{}, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/actors/9", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.GetActor(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGenreDuplicate(t *testing.T) {
	genres := &genreStoreStub{createErr: repository.ErrGenreExists}
	h := NewCatalogHandler(genres, &actorStoreStub{}, &hallStoreStub{})

	c, rec := newContext(echo.New(), http.MethodPost, "/v1/genres", strings.NewReader(`{"name":"Drama"}`), echo.MIMEApplicationJSON)
	asAdmin(c)
	require.NoError(t, h.CreateGenre(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "genre already exists")
}

func TestListHallsIncludesCapacity(t *testing.T) {
	halls := &hallStoreStub{halls: []*repository.CinemaHall{{ID: 1, Name: "Blue", Rows: 8, SeatsInRow: 12}}}
	h := NewCatalogHandler(&genreStoreStub{}, &actorStoreStub{}, halls)

	c, rec := newContext(echo.New(), http.MethodGet, "/v1/halls", nil, "")
	require.NoError(t, h.ListHalls(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(96), out[0]["capacity"])
}

// Validation happens before any store access, so the 400 paths run against
// a zero-value handler.

func TestCreateGenreRequiresName(t *testing.T) {
	h := &CatalogHandler{}
	c, rec := newContext(echo.New(), http.MethodPost, "/v1/genres", strings.NewReader(`{"name":"  "}`), echo.MIMEApplicationJSON)
	asAdmin(c)
	require.NoError(t, h.CreateGenre(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestCreateActorRequiresBothNames(t *testing.T) {
	h := &CatalogHandler{}
	for _, body := range []string{
		`{"first_name":"","last_name":"Reeves"}`,
		`{"first_name":"Keanu","last_name":" "}`,
	} {
		c, rec := newContext(echo.New(), http.MethodPost, "/v1/actors", strings.NewReader(body), echo.MIMEApplicationJSON)
		asAdmin(c)
		require.NoError(t, h.CreateActor(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateHallRequiresPositiveDimensions(t *testing.T) {
	h := &CatalogHandler{}
	for _, body := range []string{
		`{"name":"","rows":8,"seats_in_row":12}`,
		`{"name":"Blue","rows":0,"seats_in_row":12}`,
		`{"name":"Blue","rows":8,"seats_in_row":0}`,
	} {
		c, rec := newContext(echo.New(), http.MethodPost, "/v1/halls", strings.NewReader(body), echo.MIMEApplicationJSON)
		asAdmin(c)
		require.NoError(t, h.CreateHall(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
