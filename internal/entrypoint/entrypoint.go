// Package entrypoint wires the application together: storage, repositories,
// background workers, and the HTTP server with graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/booknest/booknest/internal/config"
	"github.com/booknest/booknest/internal/database"
	"github.com/booknest/booknest/internal/database/books"
	"github.com/booknest/booknest/internal/database/notes"
	"github.com/booknest/booknest/internal/database/series"
	"github.com/booknest/booknest/internal/database/stats"
	"github.com/booknest/booknest/internal/entities"
	http_controllers "github.com/booknest/booknest/internal/http"
	"github.com/booknest/booknest/internal/metadata"
	"github.com/booknest/booknest/internal/scheduler"
	"github.com/booknest/booknest/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains with the
// configured timeout. onShutdown runs before the listener closes so workers
// stop accepting new work first.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run initializes everything and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Booknest v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	seriesRepo := series.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB, seriesRepo)
	notesRepo := notes.NewRepository(db.DB)
	statsRepo := stats.NewRepository(db.DB)

	booksController := http_controllers.NewBooksController(booksRepo)
	routerCfg := http_controllers.RouterConfig{
		Books:       booksController,
		Notes:       http_controllers.NewNotesController(notesRepo),
		Series:      http_controllers.NewSeriesController(seriesRepo),
		Stats:       http_controllers.NewStatsController(statsRepo),
		CORSOrigins: cfg.CORS.Origins,
	}

	var openLibrary *metadata.Client
	if cfg.Metadata.LookupEnabled || cfg.Metadata.EnrichEnabled {
		openLibrary = metadata.NewClient()
	}
	if cfg.Metadata.LookupEnabled {
		routerCfg.Metadata = http_controllers.NewMetadataController(openLibrary)
	}

	// Background enrichment is opt-in; without it no task database is created.
	var taskClient *tasks.Client
	if cfg.Metadata.EnrichEnabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer taskClient.Close()

		enricher := metadata.NewEnricher(openLibrary, booksRepo)
		taskClient.Register(tasks.NewEnrichBookQueue(enricher))

		taskCtx, taskCancel := context.WithCancel(context.Background())
		defer taskCancel()
		go taskClient.Start(taskCtx)

		booksController.OnCreate(func(book *entities.Book) {
			if book.CoverURL != nil && book.PageCount != nil {
				return
			}
			if _, err := taskClient.Add(tasks.EnrichBookTask{BookID: book.ID}).Save(); err != nil {
				log.Printf("Failed to queue enrichment for book %d: %v", book.ID, err)
			}
		})
	}

	var maintenance *scheduler.Maintenance
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenance(db, cfg.Maintenance.Schedule)
		if err := maintenance.Start(); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	})
}
