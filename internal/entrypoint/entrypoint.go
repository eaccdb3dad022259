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

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/authors"
	"github.com/mrlokans/library-manager/internal/database/books"
	http_controllers "github.com/mrlokans/library-manager/internal/http"
	"github.com/mrlokans/library-manager/internal/library"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Services groups the service layer built on top of one database handle.
type Services struct {
	Authors *library.AuthorService
	Books   *library.BookService
}

// NewServices wires the repositories into the services.
func NewServices(db *database.Database) *Services {
	authorStore := authors.NewRepository(db.DB)
	bookStore := books.NewRepository(db.DB)

	return &Services{
		Authors: library.NewAuthorService(authorStore),
		Books:   library.NewBookService(bookStore, authorStore),
	}
}

// NewRouter builds the HTTP router for an already opened database.
func NewRouter(cfg *config.Config, db *database.Database, version string) (*gin.Engine, error) {
	services := NewServices(db)

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthorService:  services.Authors,
		BookService:    services.Books,
		Database:       db,
		Development:    cfg.IsDevelopment(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		UIEnabled:      cfg.UI.Enabled,
		Version:        version,
	})
}

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

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT.
	// SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Manager v%s (%s)", version, cfg.Global.Environment)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
		log.Printf("Development mode: error details are returned to clients and CORS allows any origin")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router, err := NewRouter(cfg, db, version)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to build router: %v", err)
	}

	// The pool is closed only after in-flight requests have drained.
	onShutdown := func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
