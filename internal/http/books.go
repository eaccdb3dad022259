package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/library"
)

type BooksController struct {
	service BookService
}

func NewBooksController(service BookService) *BooksController {
	return &BooksController{service: service}
}

// ListBooks handles GET /api/book?includeAuthor=bool.
func (bc *BooksController) ListBooks(c *gin.Context) {
	includeAuthor, ok := parseBoolQuery(c, "includeAuthor")
	if !ok {
		return
	}

	books, err := bc.service.List(c.Request.Context(), includeAuthor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook handles GET /api/book/:id.
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.service.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook handles POST /api/book.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var input library.BookCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	book, err := bc.service.Create(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/api/book/%d", book.ID), book)
}

// UpdateBook handles PUT /api/book/:id.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input library.BookUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	if err := bc.service.Update(c.Request.Context(), id, input); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteBook handles DELETE /api/book/:id.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.service.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
