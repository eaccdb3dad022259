// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in
// internal/library/store.go.
//
// # Interface Implementation
//
//	var _ library.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBook(ctx, 123, true)
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns every book ordered by id, optionally with its author.
func (r *Repository) ListBooks(ctx context.Context, withAuthor bool) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if withAuthor {
		query = query.Preload("Author")
	}

	var books []entities.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook retrieves a book by ID. Returns database.ErrNotFound if absent.
func (r *Repository) GetBook(ctx context.Context, id uint, withAuthor bool) (*entities.Book, error) {
	query := r.db.WithContext(ctx)
	if withAuthor {
		query = query.Preload("Author")
	}

	var book entities.Book
	err := query.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts the book and fills in its ID. The Author association is
// never written.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	book.ID = 0
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error
	return database.TranslateError(err)
}

// UpdateBook overwrites every mutable column. Returns database.ErrNotFound if
// no row has the book's ID.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	result := r.db.WithContext(ctx).
		Model(book).
		Select("title", "isbn", "published_date", "author_id").
		Updates(book)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteBook removes the book.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
