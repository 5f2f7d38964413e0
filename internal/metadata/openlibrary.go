// Package metadata looks up book details on OpenLibrary to pre-fill the book
// form. It is a convenience only: nothing in the CRUD path depends on it
// being reachable.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Suggestion is one candidate match for an autofill request.
type Suggestion struct {
	Title            string `json:"title"`
	Author           string `json:"author,omitempty"`
	CoverURL         string `json:"cover_url,omitempty"`
	PageCount        int    `json:"page_count,omitempty"`
	FirstPublishYear int    `json:"first_publish_year,omitempty"`
}

// Client fetches book metadata from the OpenLibrary search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates an OpenLibrary client with rate limiting.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://openlibrary.org",
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// Search returns up to five suggestions for the given title, optionally
// narrowed by author.
func (c *Client) Search(ctx context.Context, title, author string) ([]Suggestion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	c.rateLimiter.wait()

	q := title
	if author = strings.TrimSpace(author); author != "" {
		q = fmt.Sprintf("%s %s", title, author)
	}
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=5", c.baseURL, url.QueryEscape(q))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Booknest/1.0 (https://github.com/booknest/booknest)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(result.Docs))
	for i := range result.Docs {
		suggestions = append(suggestions, c.toSuggestion(&result.Docs[i]))
	}
	return suggestions, nil
}

func (c *Client) toSuggestion(doc *searchDoc) Suggestion {
	s := Suggestion{
		Title:            doc.Title,
		PageCount:        doc.NumberOfPagesMedian,
		FirstPublishYear: doc.FirstPublishYear,
	}
	if len(doc.AuthorName) > 0 {
		s.Author = doc.AuthorName[0]
	}
	if doc.CoverI != 0 {
		s.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverI)
	}
	return s
}

type searchResult struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	CoverI              int      `json:"cover_i"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
}
