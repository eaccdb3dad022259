// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup for SQLite and PostgreSQL
//	├── migrate.go       # Embedded golang-migrate migrations
//	├── constraints.go   # Driver errors -> ConstraintError
//	├── migrations/      # SQL per driver (sqlite, postgres)
//	├── authors/         # Author CRUD operations
//	└── books/           # Book CRUD operations
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection and apply migrations
//	db, err := database.NewDatabase(cfg.Database)
//
//	// Create domain-specific repositories
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	// Use repositories
//	author, err := authorsRepo.GetAuthor(ctx, 12, true)
//
// # Interface Implementations
//
//   - authors.Repository: implements library.AuthorStore
//   - books.Repository: implements library.BookStore
//
// # Constraint Violations
//
// Repositories pass write errors through TranslateError so callers see a
// *ConstraintError carrying the constraint name, whichever driver produced it.
// The names are declared in internal/entities and used by both migration sets.
package database
