package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/library"
)

type AuthorsController struct {
	service AuthorService
}

func NewAuthorsController(service AuthorService) *AuthorsController {
	return &AuthorsController{service: service}
}

// ListAuthors handles GET /api/author?includeBooks=bool.
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	includeBooks, ok := parseBoolQuery(c, "includeBooks")
	if !ok {
		return
	}

	authors, err := ac.service.List(c.Request.Context(), includeBooks)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetAuthor handles GET /api/author/:id.
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.service.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

// CreateAuthor handles POST /api/author.
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var input library.AuthorCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	author, err := ac.service.Create(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/api/author/%d", author.ID), author)
}

// UpdateAuthor handles PUT /api/author/:id.
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input library.AuthorUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	if err := ac.service.Update(c.Request.Context(), id, input); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAuthor handles DELETE /api/author/:id.
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.service.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
