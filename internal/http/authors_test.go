package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorsrepo "github.com/mrlokans/library-manager/internal/database/authors"
	booksrepo "github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/library"
)

func TestAuthorsController_CreateAuthor(t *testing.T) {
	t.Run("creates and rejects a case-insensitive duplicate", func(t *testing.T) {
		app := setupTestRouter(t, false)

		w := app.do(t, http.MethodPost, "/api/author", map[string]any{"name": "J.K. Rowling"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/author/1", w.Header().Get("Location"))
		assert.JSONEq(t, `{"id":1,"name":"J.K. Rowling","books":[]}`, w.Body.String())

		w = app.do(t, http.MethodPost, "/api/author", map[string]any{"name": "j.k. rowling"})

		assert.Equal(t, http.StatusConflict, w.Code)
		problem := decodeProblem(t, w)
		assert.Equal(t, http.StatusConflict, problem.Status)
		assert.Equal(t, "Conflict", problem.Title)
		assert.Equal(t, "/api/author", problem.Instance)
		assert.Equal(t, "An author with this name already exists.\nPlease try again later.", problem.Detail)
	})

	t.Run("rejects an accent-only difference", func(t *testing.T) {
		app := setupTestRouter(t, false)
		app.createAuthor(t, "Gabriel García Márquez")

		w := app.do(t, http.MethodPost, "/api/author", map[string]any{"name": "Gabriel Garcia Marquez"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validates the name", func(t *testing.T) {
		app := setupTestRouter(t, false)

		tests := []struct {
			name  string
			body  any
			field string
		}{
			{name: "missing", body: map[string]any{}, field: "name"},
			{name: "too short", body: map[string]any{"name": "Al"}, field: "name"},
			{name: "too long", body: map[string]any{"name": strings.Repeat("a", 101)}, field: "name"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := app.do(t, http.MethodPost, "/api/author", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				problem := decodeProblem(t, w)
				assert.Contains(t, problem.Errors, tt.field)
			})
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		app := setupTestRouter(t, false)

		w := app.do(t, http.MethodPost, "/api/author", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeProblem(t, w).Detail, "not valid JSON")
	})
}

func TestAuthorsController_ListAuthors(t *testing.T) {
	app := setupTestRouter(t, false)
	herbert := app.createAuthor(t, "Frank Herbert")
	app.createAuthor(t, "Octavia Butler")
	app.createBook(t, herbert, "Dune", "9780441172719", "1965-08-01")

	t.Run("with books", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/author?includeBooks=true", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var authors []library.AuthorDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
		require.Len(t, authors, 2)
		assert.Equal(t, "Frank Herbert", authors[0].Name)
		require.Len(t, authors[0].Books, 1)
		assert.Equal(t, "Dune", authors[0].Books[0].Title)
		assert.Empty(t, authors[1].Books)
	})

	t.Run("without books", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/author", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"books":[]`)
		assert.NotContains(t, w.Body.String(), "Dune")
	})

	t.Run("bad boolean", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/author?includeBooks=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthorsController_GetAuthor(t *testing.T) {
	app := setupTestRouter(t, false)
	id := app.createAuthor(t, "Italo Calvino")

	w := app.do(t, http.MethodGet, "/api/author/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var author library.AuthorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
	assert.Equal(t, id, author.ID)

	w = app.do(t, http.MethodGet, "/api/author/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Author with ID 42 not found.\nPlease try again later.", decodeProblem(t, w).Detail)

	w = app.do(t, http.MethodGet, "/api/author/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthorsController_UpdateAuthor(t *testing.T) {
	app := setupTestRouter(t, false)
	id := app.createAuthor(t, "George Orwell")
	app.createAuthor(t, "Aldous Huxley")

	t.Run("overwrites the name", func(t *testing.T) {
		w := app.do(t, http.MethodPut, "/api/author/1", map[string]any{"id": id, "name": "Eric Arthur Blair"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = app.do(t, http.MethodGet, "/api/author/1", nil)
		assert.Contains(t, w.Body.String(), "Eric Arthur Blair")
	})

	t.Run("id mismatch", func(t *testing.T) {
		w := app.do(t, http.MethodPut, "/api/author/1", map[string]any{"id": 2, "name": "Eric Arthur Blair"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing author", func(t *testing.T) {
		w := app.do(t, http.MethodPut, "/api/author/77", map[string]any{"id": 77, "name": "Nobody Known"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("name taken by another author", func(t *testing.T) {
		w := app.do(t, http.MethodPut, "/api/author/1", map[string]any{"id": 1, "name": "ALDOUS HUXLEY"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthorsController_DeleteAuthor(t *testing.T) {
	app := setupTestRouter(t, false)
	lonely := app.createAuthor(t, "Anonymous Poet")
	busy := app.createAuthor(t, "Agatha Christie")
	app.createBook(t, busy, "Murder on the Orient Express", "9780062693662", "1934-01-01")

	w := app.do(t, http.MethodDelete, fmt.Sprintf("/api/author/%d", busy), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeProblem(t, w).Detail, "still has 1 book(s)")

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/author/%d", lonely), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/author/%d", lonely), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// staleCountStore reports no books, as if one was added right after the count.
type staleCountStore struct {
	*authorsrepo.Repository
}

func (staleCountStore) CountBooks(ctx context.Context, authorID uint) (int64, error) {
	return 0, nil
}

func TestAuthorsController_DeleteAuthor_ForeignKeyDecides(t *testing.T) {
	app := setupTestRouter(t, false)
	busy := app.createAuthor(t, "Agatha Christie")
	app.createBook(t, busy, "Murder on the Orient Express", "9780062693662", "1934-01-01")

	authorStore := staleCountStore{Repository: authorsrepo.NewRepository(app.db.DB)}
	router, err := NewRouter(RouterConfig{
		AuthorService: library.NewAuthorService(authorStore),
		BookService:   library.NewBookService(booksrepo.NewRepository(app.db.DB), authorStore),
	})
	require.NoError(t, err)
	app.router = router

	w := app.do(t, http.MethodDelete, fmt.Sprintf("/api/author/%d", busy), nil)

	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, decodeProblem(t, w).Detail, "still has books")

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/author/%d", busy), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
