package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/booknest/booknest/internal/apperr"
)

// parseID reads a numeric path parameter, answering 400 itself on garbage.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy to status codes. Storage errors are
// logged with full detail and answered generically.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": e.Message})
			return
		case apperr.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Message})
			return
		case apperr.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"error": e.Message})
			return
		}
	}
	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
