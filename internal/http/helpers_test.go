package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/booknest/booknest/internal/apperr"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "123", true},
		{"garbage", "abc", false},
		{"negative", "-1", false},
		{"zero", "0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseID(c, "id")

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, int64(123), id)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "Invalid id")
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperr.Validation("Title is required"), http.StatusBadRequest, "Title is required"},
		{"not found", apperr.NotFound("Book"), http.StatusNotFound, "Book not found"},
		{"conflict", apperr.Conflict("Series name already exists"), http.StatusConflict, "already exists"},
		{"storage", apperr.Storage(errors.New("disk on fire")), http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			// Internal detail never leaks to the client.
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
