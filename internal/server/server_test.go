package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"holocron/internal/config"
	"holocron/internal/importer"
	"holocron/internal/models"
	"holocron/internal/repository"
	"holocron/internal/swapi"
	"holocron/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                 "test",
		Port:                "0",
		AllowedOrigins:      "*",
		CurrentUserID:       1,
		CurrentUsername:     "demo",
		CurrentUserEmail:    "demo@test.com",
		SwapiBaseURL:        "http://swapi.invalid/api",
		SwapiTimeoutSeconds: 1,
		SeedRateLimit:       5,
	}
}

// stubSource serves single-page listings from memory.
type stubSource struct {
	pages map[string]*swapi.Page
	err   error
}

func (s *stubSource) FirstPage(resource string) string { return resource }

func (s *stubSource) FetchPage(_ context.Context, url string) (*swapi.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	if page, ok := s.pages[url]; ok {
		return page, nil
	}
	return &swapi.Page{Results: []map[string]any{}}, nil
}

func newTestServer(t *testing.T, rdb *redis.Client) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	s, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return s, s.NewApp(), db
}

func useSource(s *Server, db *gorm.DB, src importer.Source) {
	s.importer = importer.New(src, repository.NewPlanetRepository(db), repository.NewPeopleRepository(db))
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestNewServerWithDeps_RequiresDependencies(t *testing.T) {
	_, err := NewServerWithDeps(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewServerWithDeps(testConfig(), nil, nil)
	assert.Error(t, err)
}

func TestCatalogRoutes(t *testing.T) {
	_, app, db := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodGet, "/planets", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	planets := testutil.SeedPlanets(t, db, "Tatooine", "Alderaan")
	people := testutil.SeedPeople(t, db, "Luke Skywalker")

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantName   string
		wantCode   string
	}{
		{"planet found", fmt.Sprintf("/planets/%d", planets[1].ID), http.StatusOK, "Alderaan", ""},
		{"person found", fmt.Sprintf("/people/%d", people[0].ID), http.StatusOK, "Luke Skywalker", ""},
		{"planet missing", "/planets/999", http.StatusNotFound, "", models.CodeNotFound},
		{"person missing", "/people/999", http.StatusNotFound, "", models.CodeNotFound},
		{"bad id", "/planets/abc", http.StatusBadRequest, "", models.CodeValidation},
		{"zero id", "/people/0", http.StatusBadRequest, "", models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, status)
			got := decode[map[string]any](t, body)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, got["name"])
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, got["code"])
			}
		})
	}

	status, body = doRequest(t, app, http.MethodGet, "/planets", "")
	assert.Equal(t, http.StatusOK, status)
	listed := decode[[]models.Planet](t, body)
	require.Len(t, listed, 2)
	assert.Equal(t, "Tatooine", listed[0].Name)
}

func TestFavoriteRoutes_Lifecycle(t *testing.T) {
	_, app, db := newTestServer(t, nil)
	people := testutil.SeedPeople(t, db, "Luke Skywalker", "Leia Organa")
	target := fmt.Sprintf("/favorite/people/%d", people[1].ID)

	status, body := doRequest(t, app, http.MethodPost, target, "")
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	assert.EqualValues(t, 1, created["user_id"])
	assert.EqualValues(t, people[1].ID, created["people_id"])
	assert.Nil(t, created["planet_id"])

	status, body = doRequest(t, app, http.MethodPost, target, "")
	assert.Equal(t, http.StatusOK, status)
	again := decode[map[string]any](t, body)
	assert.Equal(t, "Favorite already exists", again["msg"])

	status, body = doRequest(t, app, http.MethodGet, "/users/favorites", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Favorite](t, body), 1)

	status, body = doRequest(t, app, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"Deleted"}`, string(body))

	status, body = doRequest(t, app, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, decode[map[string]any](t, body)["code"])
}

func TestFavoriteRoutes_MissingTarget(t *testing.T) {
	_, app, db := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodPost, "/favorite/planet/42", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, decode[map[string]any](t, body)["code"])

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFavoriteRoutes_EmptyListCreatesUser(t *testing.T) {
	_, app, db := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodGet, "/users/favorites", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	var user models.User
	require.NoError(t, db.First(&user, 1).Error)
	assert.Equal(t, "demo", user.Username)
}

func TestDeleteUser_CascadesFavorites(t *testing.T) {
	_, app, db := newTestServer(t, nil)
	planets := testutil.SeedPlanets(t, db, "Hoth")

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/favorite/planet/%d", planets[0].ID), "")
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"Deleted"}`, string(body))

	var favorites int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	assert.Zero(t, favorites)

	status, _ = doRequest(t, app, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSeedSwapi(t *testing.T) {
	t.Run("imports with default limits", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{pages: map[string]*swapi.Page{
			swapi.ResourcePlanets: {Results: []map[string]any{{"name": "Tatooine", "population": "200000"}}},
			swapi.ResourcePeople:  {Results: []map[string]any{{"name": "Luke Skywalker"}, {"name": "C-3PO"}}},
		}})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", "")
		require.Equal(t, http.StatusCreated, status, string(body))
		got := decode[map[string]any](t, body)
		assert.Equal(t, "SWAPI seeded!", got["msg"])
		assert.Equal(t, map[string]any{"planets": float64(1), "people": float64(2)}, got["created"])

		var users int64
		require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
		assert.Equal(t, int64(1), users)
	})

	t.Run("zero limits fetch nothing", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{err: errors.New("must not be called")})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", `{"people_limit":0,"planets_limit":0}`)
		require.Equal(t, http.StatusCreated, status, string(body))
		got := decode[map[string]any](t, body)
		assert.Equal(t, map[string]any{"planets": float64(0), "people": float64(0)}, got["created"])
	})

	t.Run("failure reports partial counts", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{err: errors.New("connection refused")})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", `{"planets_limit":3}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		got := decode[map[string]any](t, body)
		assert.Equal(t, "SWAPI seed failed", got["msg"])
		assert.Equal(t, models.CodeExternalFetchFailure, got["code"])
		assert.Contains(t, got["error"], "connection refused")
		assert.Equal(t, map[string]any{"planets": float64(0), "people": float64(0)}, got["created_so_far"])
	})

	t.Run("malformed body uses defaults", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{pages: map[string]*swapi.Page{
			swapi.ResourcePlanets: {Results: []map[string]any{{"name": "Hoth"}, {"name": "Dagobah"}}},
			swapi.ResourcePeople:  {Results: []map[string]any{{"name": "Yoda"}}},
		}})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", `{"planets_limit":`)
		require.Equal(t, http.StatusCreated, status, string(body))
		got := decode[map[string]any](t, body)
		assert.Equal(t, map[string]any{"planets": float64(2), "people": float64(1)}, got["created"])
	})

	t.Run("negative limits import nothing", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{err: errors.New("must not be called")})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", `{"people_limit":-1,"planets_limit":-5}`)
		require.Equal(t, http.StatusCreated, status, string(body))
		got := decode[map[string]any](t, body)
		assert.Equal(t, "SWAPI seeded!", got["msg"])
		assert.Equal(t, map[string]any{"planets": float64(0), "people": float64(0)}, got["created"])

		var planets int64
		require.NoError(t, db.Model(&models.Planet{}).Count(&planets).Error)
		assert.Zero(t, planets)
	})

	t.Run("large limit is not capped", func(t *testing.T) {
		s, app, db := newTestServer(t, nil)
		useSource(s, db, &stubSource{pages: map[string]*swapi.Page{
			swapi.ResourcePlanets: {Results: []map[string]any{{"name": "Naboo"}}},
		}})

		status, body := doRequest(t, app, http.MethodPost, "/seed/swapi", `{"planets_limit":5000,"people_limit":0}`)
		require.Equal(t, http.StatusCreated, status, string(body))
		got := decode[map[string]any](t, body)
		assert.Equal(t, map[string]any{"planets": float64(1), "people": float64(0)}, got["created"])
	})
}

func TestSeedTestData(t *testing.T) {
	_, app, db := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodPost, "/seed/test", "")
	require.Equal(t, http.StatusCreated, status, string(body))
	got := decode[map[string]any](t, body)
	assert.Equal(t, "Test data created", got["msg"])
	assert.Equal(t, "Test Planet", got["planet"].(map[string]any)["name"])
	assert.Equal(t, "Test Person", got["person"].(map[string]any)["name"])

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestSeedRoutes_RateLimited(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, _, _ := newTestServer(t, rdb)
	s.config.SeedRateLimit = 1
	app := s.NewApp()

	status, _ := doRequest(t, app, http.MethodPost, "/seed/test", "")
	assert.Equal(t, http.StatusCreated, status)
	status, _ = doRequest(t, app, http.MethodPost, "/seed/test", "")
	assert.Equal(t, http.StatusTooManyRequests, status)

	status, _ = doRequest(t, app, http.MethodGet, "/planets", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestHealthChecks(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		_, app, _ := newTestServer(t, nil)
		status, body := doRequest(t, app, http.MethodGet, "/health/live", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "up", decode[map[string]any](t, body)["status"])
	})

	t.Run("ready without redis", func(t *testing.T) {
		_, app, _ := newTestServer(t, nil)
		status, body := doRequest(t, app, http.MethodGet, "/health/ready", "")
		assert.Equal(t, http.StatusOK, status)
		got := decode[map[string]any](t, body)
		assert.Equal(t, "healthy", got["status"])
		assert.Equal(t, "disabled", got["checks"].(map[string]any)["redis"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = rdb.Close() })
		_, app, _ := newTestServer(t, rdb)
		mr.Close()

		status, body := doRequest(t, app, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", decode[map[string]any](t, body)["status"])
	})
}

func TestSitemap(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	routes := decode[[]routeEntry](t, body)
	assert.Contains(t, routes, routeEntry{Method: http.MethodGet, Path: "/planets"})
	assert.Contains(t, routes, routeEntry{Method: http.MethodPost, Path: "/favorite/people/:id"})
	assert.Contains(t, routes, routeEntry{Method: http.MethodPost, Path: "/seed/swapi"})
	for _, r := range routes {
		assert.NotEqual(t, http.MethodHead, r.Method)
	}
}

func TestUnknownRoute(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	status, body := doRequest(t, app, http.MethodGet, "/starships", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "Cannot GET /starships")
}
