package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/booknest/internal/database"
	"github.com/booknest/booknest/internal/database/books"
	"github.com/booknest/booknest/internal/database/notes"
	"github.com/booknest/booknest/internal/database/series"
	"github.com/booknest/booknest/internal/database/stats"
	"github.com/booknest/booknest/internal/metadata"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeSearcher stands in for the OpenLibrary client.
type fakeSearcher struct {
	suggestions []metadata.Suggestion
	err         error
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string) ([]metadata.Suggestion, error) {
	return f.suggestions, f.err
}

// setupRouter builds the full route table over a throwaway database, the same
// wiring the entrypoint does.
func setupRouter(t *testing.T, searcher MetadataSearcher) (*gin.Engine, func()) {
	t.Helper()

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	seriesRepo := series.NewRepository(db.DB)

	cfg := RouterConfig{
		Books:  NewBooksController(books.NewRepository(db.DB, seriesRepo)),
		Notes:  NewNotesController(notes.NewRepository(db.DB)),
		Series: NewSeriesController(seriesRepo),
		Stats:  NewStatsController(stats.NewRepository(db.DB)),
	}
	if searcher != nil {
		cfg.Metadata = NewMetadataController(searcher)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}
	return NewRouter(cfg), cleanup
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func TestHealth(t *testing.T) {
	router, cleanup := setupRouter(t, nil)
	defer cleanup()

	w := doJSON(t, router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStatsEndpoint(t *testing.T) {
	router, cleanup := setupRouter(t, nil)
	defer cleanup()

	w := doJSON(t, router, "POST", "/api/books", gin.H{"title": "Dune", "status": "read", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/api/books/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	decodeBody(t, w, &response)

	assert.Equal(t, float64(1), response["total_books"])
	assert.Equal(t, float64(1), response["read"])
	assert.Equal(t, float64(5), response["avg_rating"])

	byGenre, ok := response["by_genre"].([]interface{})
	require.True(t, ok)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Untagged", byGenre[0].(map[string]interface{})["genre"])
}

func TestMetadataEndpoint(t *testing.T) {
	t.Run("returns suggestions", func(t *testing.T) {
		router, cleanup := setupRouter(t, &fakeSearcher{
			suggestions: []metadata.Suggestion{{Title: "Dune", CoverURL: "https://covers.example/1.jpg"}},
		})
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/metadata/search?title=Dune", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Dune"`)
	})

	t.Run("requires a title", func(t *testing.T) {
		router, cleanup := setupRouter(t, &fakeSearcher{})
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/metadata/search?author=Herbert", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")
	})

	t.Run("upstream failure is a bad gateway", func(t *testing.T) {
		router, cleanup := setupRouter(t, &fakeSearcher{err: context.DeadlineExceeded})
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/metadata/search?title=Dune", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("unregistered without a searcher", func(t *testing.T) {
		router, cleanup := setupRouter(t, nil)
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/metadata/search?title=Dune", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
