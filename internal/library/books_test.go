package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/library/mocks"
)

func newBookService(t *testing.T) (*BookService, *mocks.MockBookStore, *mocks.MockAuthorStore) {
	ctrl := gomock.NewController(t)
	books := mocks.NewMockBookStore(ctrl)
	authors := mocks.NewMockAuthorStore(ctrl)
	return NewBookService(books, authors), books, authors
}

func mustDate(t *testing.T, value string) *Date {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return &d
}

func TestBookService_List(t *testing.T) {
	published := time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with author names", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().ListBooks(gomock.Any(), true).Return([]entities.Book{
			{ID: 1, Title: "Dune", ISBN: "1", PublishedDate: published, AuthorID: 4, Author: &entities.Author{ID: 4, Name: "Frank Herbert"}},
			{ID: 2, Title: "Orphaned", ISBN: "2", PublishedDate: published, AuthorID: 5},
		}, nil)

		result, err := service.List(context.Background(), true)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Frank Herbert", result[0].AuthorName)
		assert.Equal(t, "1965-08-01", result[0].PublishedDate.String())
		assert.Equal(t, AuthorNotProvided, result[1].AuthorName)
	})

	t.Run("without author names", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().ListBooks(gomock.Any(), false).Return([]entities.Book{
			{ID: 1, Title: "Dune", ISBN: "1", PublishedDate: published, AuthorID: 4},
		}, nil)

		result, err := service.List(context.Background(), false)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Empty(t, result[0].AuthorName)
		assert.Equal(t, uint(4), result[0].AuthorID)
	})
}

func TestBookService_Get(t *testing.T) {
	t.Run("missing author relation uses the placeholder", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), true).Return(&entities.Book{ID: 1, Title: "Lost", AuthorID: 3}, nil)

		book, err := service.Get(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, AuthorNotProvided, book.AuthorName)
	})

	t.Run("missing book", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), true).Return(nil, database.ErrNotFound)

		_, err := service.Get(context.Background(), 1)

		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, "Book with ID 1 not found.", err.Error())
	})
}

func TestBookService_Create(t *testing.T) {
	input := BookCreate{
		Title:         "Harry Potter and the Philosopher's Stone",
		ISBN:          "9780747532699",
		AuthorID:      1,
		PublishedDate: mustDate(t, "1997-06-26"),
	}

	t.Run("missing author writes nothing", func(t *testing.T) {
		service, _, authors := newBookService(t)
		authors.EXPECT().GetAuthor(gomock.Any(), uint(1), false).Return(nil, database.ErrNotFound)

		_, err := service.Create(context.Background(), input)

		assert.Equal(t, KindBadRequest, KindOf(err))
		assert.Equal(t, "The informed author does not exist.", err.Error())
	})

	t.Run("round trips through get", func(t *testing.T) {
		service, books, authors := newBookService(t)
		author := &entities.Author{ID: 1, Name: "J.K. Rowling"}
		var stored entities.Book

		authors.EXPECT().GetAuthor(gomock.Any(), uint(1), false).Return(author, nil)
		books.EXPECT().CreateBook(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *entities.Book) error {
			b.ID = 10
			stored = *b
			return nil
		})
		books.EXPECT().GetBook(gomock.Any(), uint(10), true).DoAndReturn(func(context.Context, uint, bool) (*entities.Book, error) {
			withAuthor := stored
			withAuthor.Author = author
			return &withAuthor, nil
		})

		created, err := service.Create(context.Background(), input)
		require.NoError(t, err)

		fetched, err := service.Get(context.Background(), created.ID)
		require.NoError(t, err)

		assert.Equal(t, created, fetched)
		assert.Equal(t, BookDTO{
			ID:            10,
			Title:         input.Title,
			ISBN:          input.ISBN,
			PublishedDate: *input.PublishedDate,
			AuthorID:      1,
			AuthorName:    "J.K. Rowling",
		}, *fetched)
	})
}

func TestBookService_Update(t *testing.T) {
	update := BookUpdate{
		ID:            1,
		Title:         "Dune Messiah",
		ISBN:          "9780593098233",
		AuthorID:      2,
		PublishedDate: mustDate(t, "1969-10-15"),
	}

	t.Run("id mismatch is rejected whether or not the book exists", func(t *testing.T) {
		service, _, _ := newBookService(t)
		mismatched := update
		mismatched.ID = 2

		err := service.Update(context.Background(), 1, mismatched)

		assert.Equal(t, KindBadRequest, KindOf(err))
	})

	t.Run("missing book", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), false).Return(nil, database.ErrNotFound)

		err := service.Update(context.Background(), 1, update)

		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("moving to a missing author leaves the row alone", func(t *testing.T) {
		service, books, authors := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), false).Return(&entities.Book{ID: 1, AuthorID: 1}, nil)
		authors.EXPECT().AuthorExists(gomock.Any(), uint(2)).Return(false, nil)

		err := service.Update(context.Background(), 1, update)

		assert.Equal(t, KindBadRequest, KindOf(err))
		assert.Equal(t, "The new author does not exist.", err.Error())
	})

	t.Run("same author skips the author check", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), false).Return(&entities.Book{ID: 1, AuthorID: 2}, nil)
		books.EXPECT().UpdateBook(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *entities.Book) error {
			assert.Equal(t, "Dune Messiah", b.Title)
			assert.Equal(t, time.Date(1969, time.October, 15, 0, 0, 0, 0, time.UTC), b.PublishedDate)
			return nil
		})

		assert.NoError(t, service.Update(context.Background(), 1, update))
	})

	t.Run("moving to an existing author", func(t *testing.T) {
		service, books, authors := newBookService(t)
		books.EXPECT().GetBook(gomock.Any(), uint(1), false).Return(&entities.Book{ID: 1, AuthorID: 1}, nil)
		authors.EXPECT().AuthorExists(gomock.Any(), uint(2)).Return(true, nil)
		books.EXPECT().UpdateBook(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, service.Update(context.Background(), 1, update))
	})
}

func TestBookService_Delete(t *testing.T) {
	t.Run("missing book", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().DeleteBook(gomock.Any(), uint(4)).Return(database.ErrNotFound)

		assert.Equal(t, KindNotFound, KindOf(service.Delete(context.Background(), 4)))
	})

	t.Run("removes the book", func(t *testing.T) {
		service, books, _ := newBookService(t)
		books.EXPECT().DeleteBook(gomock.Any(), uint(4)).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), 4))
	})
}
