package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/db/dbtest"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/repository"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/service"
)

const testToken = "test-token"

type brokenStore struct{}

func (brokenStore) List(context.Context) ([]models.Bookmark, error) {
	return nil, &repository.StorageError{Op: "list", Err: errors.New("connection refused")}
}
func (brokenStore) GetByID(context.Context, uint64) (*models.Bookmark, error) { return nil, nil }
func (brokenStore) Insert(context.Context, models.NewBookmark) (models.Bookmark, error) {
	return models.Bookmark{}, nil
}
func (brokenStore) Update(context.Context, uint64, models.BookmarkPatch) (int64, error) {
	return 0, nil
}
func (brokenStore) DeleteByID(context.Context, uint64) (int64, error) { return 0, nil }

func newTestServer(t *testing.T, env string, store repository.Store) *HTTPServer {
	t.Helper()
	cfg := &config.Config{Env: env, APIToken: testToken}
	l := zap.NewNop().Sugar()
	return NewHTTPServer(cfg, service.NewBookmarks(store, l), l)
}

func do(s *HTTPServer, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func errorBody(message string) string {
	return fmt.Sprintf(`{"error":{"message":%q}}`, message)
}

func seed(t *testing.T, s *HTTPServer) []models.Bookmark {
	t.Helper()
	fixtures := []string{
		`{"title":"artstation","url":"https://artstation.com","description":"description 1","rating":5}`,
		`{"title":"duckduckgo","url":"https://duckduckgo.com","description":"description 2","rating":5}`,
		`{"title":"cryengine","url":"https://cryengine.com","description":"description 3","rating":5}`,
	}
	out := make([]models.Bookmark, 0, len(fixtures))
	for _, f := range fixtures {
		rec := do(s, http.MethodPost, "/api/bookmarks", f, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		b := models.Bookmark{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		out = append(out, b)
	}
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))

	rec := do(s, http.MethodGet, "/ping", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))

	t.Run("missing token", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/bookmarks", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, errorBody("Unauthorized request"), rec.Body.String())
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, errorBody("Unauthorized request"), rec.Body.String())
	})
}

func TestBookmarkList(t *testing.T) {
	t.Run("no bookmarks", func(t *testing.T) {
		s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))

		rec := do(s, http.MethodGet, "/api/bookmarks", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("given bookmarks", func(t *testing.T) {
		s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
		want := seed(t, s)

		rec := do(s, http.MethodGet, "/api/bookmarks", "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		got := make([]models.Bookmark, 0)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, want, got)
	})
}

func TestBookmarkGet(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
	seeded := seed(t, s)

	t.Run("existing", func(t *testing.T) {
		rec := do(s, http.MethodGet, fmt.Sprintf("/api/bookmarks/%d", seeded[1].ID), "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		got := models.Bookmark{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, seeded[1], got)
	})

	for _, id := range []string{"123456", "abc"} {
		t.Run("missing "+id, func(t *testing.T) {
			rec := do(s, http.MethodGet, "/api/bookmarks/"+id, "", true)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, errorBody("Bookmark doesn't exist"), rec.Body.String())
		})
	}
}

func TestBookmarkCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))

		rec := do(s, http.MethodPost, "/api/bookmarks",
			`{"title":"new title","url":"https://duckduckgo.com","description":"description","rating":4}`, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		got := models.Bookmark{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotZero(t, got.ID)
		assert.Equal(t, "new title", got.Title)
		assert.Equal(t, "https://duckduckgo.com", got.URL)
		assert.Equal(t, "description", got.Description)
		assert.Equal(t, float64(4), got.Rating)
		assert.Equal(t, fmt.Sprintf("/api/bookmarks/%d", got.ID), rec.Header().Get("Location"))

		fetched := do(s, http.MethodGet, rec.Header().Get("Location"), "", true)
		assert.Equal(t, http.StatusOK, fetched.Code)
		assert.JSONEq(t, rec.Body.String(), fetched.Body.String())
	})

	t.Run("sanitized", func(t *testing.T) {
		s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))

		payload, err := json.Marshal(map[string]interface{}{
			"title":       `Naughty naughty very naughty <script>alert("xss");</script>`,
			"url":         "https://www.hackers.com",
			"description": `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
			"rating":      1,
		})
		require.NoError(t, err)

		rec := do(s, http.MethodPost, "/api/bookmarks", string(payload), true)
		require.Equal(t, http.StatusCreated, rec.Code)

		got := models.Bookmark{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`, got.Title)
		assert.Equal(t, `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`, got.Description)

		list := do(s, http.MethodGet, "/api/bookmarks", "", true)
		assert.JSONEq(t, "["+rec.Body.String()+"]", list.Body.String())
	})

	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
	for _, field := range []string{"title", "url", "description", "rating"} {
		field := field
		t.Run("missing "+field, func(t *testing.T) {
			p := map[string]interface{}{
				"title":       "new title",
				"url":         "https://duckduckgo.com",
				"description": "new description",
				"rating":      3,
			}
			delete(p, field)
			body, err := json.Marshal(p)
			require.NoError(t, err)

			rec := do(s, http.MethodPost, "/api/bookmarks", string(body), true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, errorBody(fmt.Sprintf("Missing '%s' in request body", field)), rec.Body.String())
		})
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "invalid url",
			body: `{"title":"t","url":"duckduckgo.com","description":"d","rating":3}`,
			want: "'url' must be a valid URL",
		},
		{
			name: "url without host",
			body: `{"title":"t","url":"http://:80","description":"d","rating":3}`,
			want: "'url' must be a valid URL",
		},
		{
			name: "rating out of range",
			body: `{"title":"t","url":"https://duckduckgo.com","description":"d","rating":6}`,
			want: "'rating' must be a number between 0 and 5",
		},
		{
			name: "rating not a number",
			body: `{"title":"t","url":"https://duckduckgo.com","description":"d","rating":"5"}`,
			want: "'rating' must be a number between 0 and 5",
		},
		{
			name: "empty body",
			body: `{}`,
			want: "Missing 'title' in request body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/bookmarks", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, errorBody(tt.want), rec.Body.String())
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/bookmarks", `{"title":`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNonJSONBody(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
	seeded := seed(t, s)

	send := func(method, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target,
			strings.NewReader(`{"title":"t","url":"https://duckduckgo.com","description":"d","rating":3}`))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("Authorization", "Bearer "+testToken)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodPost, "/api/bookmarks")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody("Missing 'title' in request body"), rec.Body.String())

	rec = send(http.MethodPatch, fmt.Sprintf("/api/bookmarks/%d", seeded[0].ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody("Request body must contain either 'title', 'url', 'description' or 'rating'"), rec.Body.String())
}

func TestBookmarkUpdate(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
	seeded := seed(t, s)
	target := fmt.Sprintf("/api/bookmarks/%d", seeded[0].ID)

	rec := do(s, http.MethodPatch, target, `{"title":"updated","rating":2}`, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(s, http.MethodGet, target, "", true)
	got := models.Bookmark{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "updated", got.Title)
	assert.Equal(t, float64(2), got.Rating)
	assert.Equal(t, seeded[0].URL, got.URL)

	rec = do(s, http.MethodPatch, target, `{"foo":"bar"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, errorBody("Request body must contain either 'title', 'url', 'description' or 'rating'"), rec.Body.String())

	rec = do(s, http.MethodPatch, "/api/bookmarks/123456", `{"title":"x"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookmarkDelete(t *testing.T) {
	s := newTestServer(t, config.EnvTest, repository.NewGorm(dbtest.NewSQLite(t)))
	seeded := seed(t, s)

	rec := do(s, http.MethodDelete, fmt.Sprintf("/api/bookmarks/%d", seeded[1].ID), "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(s, http.MethodGet, "/api/bookmarks", "", true)
	got := make([]models.Bookmark, 0)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []models.Bookmark{seeded[0], seeded[2]}, got)

	rec = do(s, http.MethodDelete, "/api/bookmarks/1234567", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, errorBody("Bookmark doesn't exist"), rec.Body.String())
}

func TestStorageFailure(t *testing.T) {
	t.Run("development exposes the error", func(t *testing.T) {
		s := newTestServer(t, config.EnvDevelopment, brokenStore{})

		rec := do(s, http.MethodGet, "/api/bookmarks", "", true)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})

	t.Run("production hides it", func(t *testing.T) {
		s := newTestServer(t, config.EnvProduction, brokenStore{})

		rec := do(s, http.MethodGet, "/api/bookmarks", "", true)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, errorBody("server error"), rec.Body.String())
	})
}
