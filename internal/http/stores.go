package http

import (
	"context"

	"github.com/mrlokans/library-manager/internal/library"
)

// This file consolidates the service interfaces used by HTTP controllers.
// The API controllers and the UI controller share them.

// AuthorService provides the author operations.
type AuthorService interface {
	List(ctx context.Context, includeBooks bool) ([]library.AuthorDTO, error)
	Get(ctx context.Context, id uint) (*library.AuthorDTO, error)
	Create(ctx context.Context, input library.AuthorCreate) (*library.AuthorDTO, error)
	Update(ctx context.Context, id uint, input library.AuthorUpdate) error
	Delete(ctx context.Context, id uint) error
}

// BookService provides the book operations.
type BookService interface {
	List(ctx context.Context, includeAuthor bool) ([]library.BookDTO, error)
	Get(ctx context.Context, id uint) (*library.BookDTO, error)
	Create(ctx context.Context, input library.BookCreate) (*library.BookDTO, error)
	Update(ctx context.Context, id uint, input library.BookUpdate) error
	Delete(ctx context.Context, id uint) error
}
