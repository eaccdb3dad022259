package library

import (
	"context"

	"github.com/mrlokans/library-manager/internal/entities"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks . AuthorStore,BookStore

// AuthorStore persists authors. Lookups of absent rows return database.ErrNotFound;
// integrity violations come back as *database.ConstraintError.
type AuthorStore interface {
	ListAuthors(ctx context.Context, withBooks bool) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint, withBooks bool) (*entities.Author, error)
	AuthorExists(ctx context.Context, id uint) (bool, error)
	CountBooks(ctx context.Context, authorID uint) (int64, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	UpdateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
}

// BookStore persists books.
type BookStore interface {
	ListBooks(ctx context.Context, withAuthor bool) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint, withAuthor bool) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id uint) error
}
