package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the controllers and middleware settings; a nil
// Metadata controller leaves the autofill endpoint unregistered.
type RouterConfig struct {
	Books    *BooksController
	Notes    *NotesController
	Series   *SeriesController
	Stats    *StatsController
	Metadata *MetadataController

	CORSOrigins []string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		router.Use(cors.New(corsCfg))
	}

	router.GET("/health", Health)

	api := router.Group("/api")

	api.GET("/books", cfg.Books.ListBooks)
	api.GET("/books/stats", cfg.Stats.GetStats)
	api.POST("/books", cfg.Books.CreateBook)
	api.GET("/books/:id", cfg.Books.GetBook)
	api.PUT("/books/:id", cfg.Books.UpdateBook)
	api.DELETE("/books/:id", cfg.Books.DeleteBook)

	api.GET("/notes/:bookId", cfg.Notes.ListNotes)
	api.POST("/notes/:bookId", cfg.Notes.CreateNote)
	api.PUT("/notes/:noteId", cfg.Notes.UpdateNote)
	api.DELETE("/notes/:noteId", cfg.Notes.DeleteNote)

	api.GET("/series", cfg.Series.ListSeries)
	api.POST("/series", cfg.Series.CreateSeries)
	api.GET("/series/:id", cfg.Series.GetSeries)
	api.PUT("/series/:id", cfg.Series.UpdateSeries)
	api.DELETE("/series/:id", cfg.Series.DeleteSeries)

	if cfg.Metadata != nil {
		api.GET("/metadata/search", cfg.Metadata.Search)
	}

	return router
}
