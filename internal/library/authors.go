package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

const (
	entityAuthor = "Author"
	entityBook   = "Book"

	idMismatchMessage = "The ID in the request body does not match the ID in the URL."
)

type AuthorService struct {
	store AuthorStore
}

func NewAuthorService(store AuthorStore) *AuthorService {
	return &AuthorService{store: store}
}

// List returns all authors ordered by id. Books is always a non-nil slice,
// empty unless includeBooks is set.
func (s *AuthorService) List(ctx context.Context, includeBooks bool) ([]AuthorDTO, error) {
	authors, err := s.store.ListAuthors(ctx, includeBooks)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}

	result := make([]AuthorDTO, 0, len(authors))
	for i := range authors {
		result = append(result, toAuthorDTO(&authors[i]))
	}
	return result, nil
}

func (s *AuthorService) Get(ctx context.Context, id uint) (*AuthorDTO, error) {
	author, err := s.store.GetAuthor(ctx, id, true)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound(entityAuthor, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting author %d: %w", id, err)
	}

	dto := toAuthorDTO(author)
	return &dto, nil
}

// Create inserts a new author. A name that folds to an existing one fails
// with a unique *database.ConstraintError.
func (s *AuthorService) Create(ctx context.Context, input AuthorCreate) (*AuthorDTO, error) {
	author := &entities.Author{Name: input.Name}
	if err := s.store.CreateAuthor(ctx, author); err != nil {
		return nil, fmt.Errorf("creating author: %w", err)
	}

	dto := toAuthorDTO(author)
	return &dto, nil
}

func (s *AuthorService) Update(ctx context.Context, id uint, input AuthorUpdate) error {
	if input.ID != id {
		return BadRequest(idMismatchMessage)
	}

	err := s.store.UpdateAuthor(ctx, &entities.Author{ID: id, Name: input.Name})
	if errors.Is(err, database.ErrNotFound) {
		return NotFound(entityAuthor, id)
	}
	if err != nil {
		return fmt.Errorf("updating author %d: %w", id, err)
	}
	return nil
}

// Delete removes an author that has no books left.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	exists, err := s.store.AuthorExists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking author %d: %w", id, err)
	}
	if !exists {
		return NotFound(entityAuthor, id)
	}

	count, err := s.store.CountBooks(ctx, id)
	if err != nil {
		return fmt.Errorf("counting books of author %d: %w", id, err)
	}
	if count > 0 {
		return Conflict(fmt.Sprintf("Author with ID %d still has %d book(s); delete or reassign them first.", id, count))
	}

	err = s.store.DeleteAuthor(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return NotFound(entityAuthor, id)
	}
	if err != nil {
		return fmt.Errorf("deleting author %d: %w", id, err)
	}
	return nil
}
