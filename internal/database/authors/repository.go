// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in
// internal/library/store.go.
//
// # Interface Implementation
//
//	var _ library.AuthorStore = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetAuthor(ctx, 42, true)
package authors

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderedBooks(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ListAuthors returns every author ordered by id, optionally with their books.
func (r *Repository) ListAuthors(ctx context.Context, withBooks bool) ([]entities.Author, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if withBooks {
		query = query.Preload("Books", orderedBooks)
	}

	var authors []entities.Author
	if err := query.Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// GetAuthor retrieves an author by ID. Returns database.ErrNotFound if absent.
func (r *Repository) GetAuthor(ctx context.Context, id uint, withBooks bool) (*entities.Author, error) {
	query := r.db.WithContext(ctx)
	if withBooks {
		query = query.Preload("Books", orderedBooks)
	}

	var author entities.Author
	err := query.First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// AuthorExists reports whether an author with the given ID is stored.
func (r *Repository) AuthorExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountBooks returns how many books reference the author.
func (r *Repository) CountBooks(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CreateAuthor inserts the author and fills in its ID.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	author.ID = 0
	author.Books = nil
	return database.TranslateError(r.db.WithContext(ctx).Create(author).Error)
}

// UpdateAuthor overwrites the author's name. Returns database.ErrNotFound if
// no row has the author's ID.
func (r *Repository) UpdateAuthor(ctx context.Context, author *entities.Author) error {
	result := r.db.WithContext(ctx).
		Model(author).
		Select("name", "name_key").
		Updates(author)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteAuthor removes the author. The books foreign key rejects the delete
// while books still reference it.
func (r *Repository) DeleteAuthor(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Author{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
