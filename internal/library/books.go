package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

const (
	missingAuthorMessage    = "The informed author does not exist."
	missingNewAuthorMessage = "The new author does not exist."
)

// BookService owns the Book rules, including the check that every book
// points at an existing author.
type BookService struct {
	books   BookStore
	authors AuthorStore
}

func NewBookService(books BookStore, authors AuthorStore) *BookService {
	return &BookService{books: books, authors: authors}
}

// List returns all books ordered by id. AuthorName is left empty unless
// includeAuthor is set.
func (s *BookService) List(ctx context.Context, includeAuthor bool) ([]BookDTO, error) {
	books, err := s.books.ListBooks(ctx, includeAuthor)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	result := make([]BookDTO, 0, len(books))
	for i := range books {
		result = append(result, toBookDTO(&books[i], includeAuthor))
	}
	return result, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*BookDTO, error) {
	book, err := s.books.GetBook(ctx, id, true)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound(entityBook, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting book %d: %w", id, err)
	}

	dto := toBookDTO(book, true)
	return &dto, nil
}

// Create inserts a book after confirming its author exists. Nothing is
// written when the author is missing.
func (s *BookService) Create(ctx context.Context, input BookCreate) (*BookDTO, error) {
	author, err := s.authors.GetAuthor(ctx, input.AuthorID, false)
	if errors.Is(err, database.ErrNotFound) {
		return nil, BadRequest(missingAuthorMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("checking author %d: %w", input.AuthorID, err)
	}

	book := &entities.Book{
		Title:         input.Title,
		ISBN:          input.ISBN,
		PublishedDate: dateValue(input.PublishedDate).Time,
		AuthorID:      input.AuthorID,
	}
	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}

	book.Author = author
	dto := toBookDTO(book, true)
	return &dto, nil
}

// Update replaces every mutable field of a book. The author is re-checked
// only when it changes.
func (s *BookService) Update(ctx context.Context, id uint, input BookUpdate) error {
	if input.ID != id {
		return BadRequest(idMismatchMessage)
	}

	current, err := s.books.GetBook(ctx, id, false)
	if errors.Is(err, database.ErrNotFound) {
		return NotFound(entityBook, id)
	}
	if err != nil {
		return fmt.Errorf("getting book %d: %w", id, err)
	}

	if current.AuthorID != input.AuthorID {
		exists, err := s.authors.AuthorExists(ctx, input.AuthorID)
		if err != nil {
			return fmt.Errorf("checking author %d: %w", input.AuthorID, err)
		}
		if !exists {
			return BadRequest(missingNewAuthorMessage)
		}
	}

	err = s.books.UpdateBook(ctx, &entities.Book{
		ID:            id,
		Title:         input.Title,
		ISBN:          input.ISBN,
		PublishedDate: dateValue(input.PublishedDate).Time,
		AuthorID:      input.AuthorID,
	})
	if errors.Is(err, database.ErrNotFound) {
		return NotFound(entityBook, id)
	}
	if err != nil {
		return fmt.Errorf("updating book %d: %w", id, err)
	}
	return nil
}

func (s *BookService) Delete(ctx context.Context, id uint) error {
	err := s.books.DeleteBook(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return NotFound(entityBook, id)
	}
	if err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	return nil
}
