package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MetadataController serves autofill suggestions. The lookup is best-effort:
// upstream failures never become 5xx storage noise for the client, just an
// empty-handed 502.
type MetadataController struct {
	searcher MetadataSearcher
}

func NewMetadataController(searcher MetadataSearcher) *MetadataController {
	return &MetadataController{searcher: searcher}
}

func (controller *MetadataController) Search(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	suggestions, err := controller.searcher.Search(c.Request.Context(), title, c.Query("author"))
	if err != nil {
		log.Printf("Metadata lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Metadata lookup unavailable"})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
