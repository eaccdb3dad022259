package http

import (
	"github.com/mrlokans/library-manager/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	AuthorService AuthorService
	BookService   BookService
	Database      *database.Database

	// Development enables the full error chain in problem responses.
	Development bool

	// CORS origins for the API; "*" allows any origin.
	AllowedOrigins []string

	// Register the server-rendered pages.
	UIEnabled bool

	// Application info
	Version string
}
