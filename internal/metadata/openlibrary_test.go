package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		httpClient:  server.Client(),
		baseURL:     server.URL,
		rateLimiter: newRateLimiter(0),
	}
}

func TestClient_Search(t *testing.T) {
	t.Run("maps docs to suggestions", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/search.json", r.URL.Path)
			gotQuery = r.URL.Query().Get("q")
			assert.Equal(t, "5", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"numFound": 2,
				"docs": [
					{
						"key": "/works/OL893415W",
						"title": "Dune",
						"author_name": ["Frank Herbert", "Someone Else"],
						"first_publish_year": 1965,
						"cover_i": 11481354,
						"number_of_pages_median": 412
					},
					{"key": "/works/OL893416W", "title": "Dune Messiah"}
				]
			}`))
		}))
		defer server.Close()

		suggestions, err := testClient(server).Search(context.Background(), "Dune", "Frank Herbert")
		require.NoError(t, err)
		require.Len(t, suggestions, 2)

		assert.Equal(t, "Dune Frank Herbert", gotQuery)

		first := suggestions[0]
		assert.Equal(t, "Dune", first.Title)
		assert.Equal(t, "Frank Herbert", first.Author)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-M.jpg", first.CoverURL)
		assert.Equal(t, 412, first.PageCount)
		assert.Equal(t, 1965, first.FirstPublishYear)

		// Missing fields stay zero-valued.
		second := suggestions[1]
		assert.Empty(t, second.Author)
		assert.Empty(t, second.CoverURL)
		assert.Zero(t, second.PageCount)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer server.Close()

		_, err := testClient(server).Search(context.Background(), "   ", "")
		assert.Error(t, err)
	})

	t.Run("surfaces upstream errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := testClient(server).Search(context.Background(), "Dune", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"numFound": 0, "docs": []}`))
		}))
		defer server.Close()

		suggestions, err := testClient(server).Search(context.Background(), "zzzzzz", "")
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(50 * time.Millisecond)

	start := time.Now()
	limiter.wait()
	limiter.wait()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}
