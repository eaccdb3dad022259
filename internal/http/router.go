package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(gin.Logger())
	router.Use(Recovery(cfg.Development))
	router.Use(CORS(cfg.AllowedOrigins))
	router.Use(ErrorHandler(cfg.Development))

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorService)
	booksController := NewBooksController(cfg.BookService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	// Author endpoints
	api.GET("/author", authorsController.ListAuthors)
	api.GET("/author/:id", authorsController.GetAuthor)
	api.POST("/author", authorsController.CreateAuthor)
	api.PUT("/author/:id", authorsController.UpdateAuthor)
	api.DELETE("/author/:id", authorsController.DeleteAuthor)

	// Book endpoints
	api.GET("/book", booksController.ListBooks)
	api.GET("/book/:id", booksController.GetBook)
	api.POST("/book", booksController.CreateBook)
	api.PUT("/book/:id", booksController.UpdateBook)
	api.DELETE("/book/:id", booksController.DeleteBook)

	if !cfg.UIEnabled {
		return router, nil
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	ui := NewUIController(cfg.AuthorService, cfg.BookService)

	// UI routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/authors")
	})
	router.GET("/authors", ui.AuthorsPage)
	router.GET("/authors/new", ui.NewAuthorPage)
	router.GET("/authors/:id/edit", ui.EditAuthorPage)
	router.POST("/authors", ui.CreateAuthor)
	router.POST("/authors/:id", ui.UpdateAuthor)
	router.POST("/authors/:id/delete", ui.DeleteAuthor)

	router.GET("/books", ui.BooksPage)
	router.GET("/books/new", ui.NewBookPage)
	router.GET("/books/:id/edit", ui.EditBookPage)
	router.POST("/books", ui.CreateBook)
	router.POST("/books/:id", ui.UpdateBook)
	router.POST("/books/:id/delete", ui.DeleteBook)

	return router, nil
}
