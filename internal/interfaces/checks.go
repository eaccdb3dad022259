package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library-manager/internal/database/authors"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/http"
	"github.com/mrlokans/library-manager/internal/library"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// AuthorStore implementations
var _ library.AuthorStore = (*authors.Repository)(nil)

// BookStore implementations
var _ library.BookStore = (*books.Repository)(nil)

// =============================================================================
// Service Layer
// =============================================================================

// AuthorService implementations
var _ http.AuthorService = (*library.AuthorService)(nil)

// BookService implementations
var _ http.BookService = (*library.BookService)(nil)
