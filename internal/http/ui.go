package http

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/library-manager/internal/library"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"isoDate": func(d library.Date) string { return d.String() },
	}).ParseFS(templatesFS, "templates/*.html")
}

// Form values echoed back into the author and book forms.
type authorForm struct {
	ID   uint
	Name string
}

type bookForm struct {
	ID            uint
	Title         string
	ISBN          string
	PublishedDate string
	AuthorID      uint
}

type UIController struct {
	authors AuthorService
	books   BookService
}

func NewUIController(authors AuthorService, books BookService) *UIController {
	return &UIController{
		authors: authors,
		books:   books,
	}
}

// uiError maps err like ErrorHandler does, logging server-side failures.
func uiError(c *gin.Context, err error) (int, string) {
	status, message := classifyError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: request_id=%s method=%s path=%s error=%v",
			RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, err)
	}
	return status, message
}

// formID parses the :id route parameter for UI routes.
func formID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// --- Authors ---

func (ui *UIController) AuthorsPage(c *gin.Context) {
	ui.renderAuthors(c, http.StatusOK, "")
}

func (ui *UIController) renderAuthors(c *gin.Context, status int, errMessage string) {
	authors, err := ui.authors.List(c.Request.Context(), true)
	if err != nil {
		status, errMessage = uiError(c, err)
	}

	c.HTML(status, "authors", gin.H{
		"Title":   "Authors",
		"Authors": authors,
		"Error":   errMessage,
	})
}

func (ui *UIController) renderAuthorForm(c *gin.Context, status int, form authorForm, errMessage string) {
	title := "New author"
	action := "/authors"
	if form.ID != 0 {
		title = "Edit author"
		action = "/authors/" + strconv.FormatUint(uint64(form.ID), 10)
	}

	c.HTML(status, "author_form", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Error":  errMessage,
	})
}

func (ui *UIController) NewAuthorPage(c *gin.Context) {
	ui.renderAuthorForm(c, http.StatusOK, authorForm{}, "")
}

func (ui *UIController) EditAuthorPage(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderAuthors(c, http.StatusBadRequest, "Invalid author ID.")
		return
	}

	author, err := ui.authors.Get(c.Request.Context(), id)
	if err != nil {
		status, message := uiError(c, err)
		ui.renderAuthors(c, status, message)
		return
	}
	ui.renderAuthorForm(c, http.StatusOK, authorForm{ID: author.ID, Name: author.Name}, "")
}

func (ui *UIController) CreateAuthor(c *gin.Context) {
	form := authorForm{Name: c.PostForm("name")}

	input := library.AuthorCreate{Name: form.Name}
	if err := binding.Validator.ValidateStruct(&input); err != nil {
		ui.renderAuthorForm(c, http.StatusBadRequest, form, invalidRequest(err).message)
		return
	}

	if _, err := ui.authors.Create(c.Request.Context(), input); err != nil {
		status, message := uiError(c, err)
		ui.renderAuthorForm(c, status, form, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/authors")
}

func (ui *UIController) UpdateAuthor(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderAuthors(c, http.StatusBadRequest, "Invalid author ID.")
		return
	}
	form := authorForm{ID: id, Name: c.PostForm("name")}

	input := library.AuthorUpdate{ID: id, Name: form.Name}
	if err := binding.Validator.ValidateStruct(&input); err != nil {
		ui.renderAuthorForm(c, http.StatusBadRequest, form, invalidRequest(err).message)
		return
	}

	if err := ui.authors.Update(c.Request.Context(), id, input); err != nil {
		status, message := uiError(c, err)
		ui.renderAuthorForm(c, status, form, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/authors")
}

func (ui *UIController) DeleteAuthor(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderAuthors(c, http.StatusBadRequest, "Invalid author ID.")
		return
	}

	if err := ui.authors.Delete(c.Request.Context(), id); err != nil {
		status, message := uiError(c, err)
		ui.renderAuthors(c, status, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/authors")
}

// --- Books ---

func (ui *UIController) BooksPage(c *gin.Context) {
	ui.renderBooks(c, http.StatusOK, "")
}

func (ui *UIController) renderBooks(c *gin.Context, status int, errMessage string) {
	books, err := ui.books.List(c.Request.Context(), true)
	if err != nil {
		status, errMessage = uiError(c, err)
	}

	c.HTML(status, "books", gin.H{
		"Title": "Books",
		"Books": books,
		"Error": errMessage,
	})
}

func (ui *UIController) renderBookForm(c *gin.Context, status int, form bookForm, errMessage string) {
	title := "New book"
	action := "/books"
	if form.ID != 0 {
		title = "Edit book"
		action = "/books/" + strconv.FormatUint(uint64(form.ID), 10)
	}

	authors, err := ui.authorOptions(c.Request.Context())
	if err != nil {
		status, errMessage = uiError(c, err)
	}

	c.HTML(status, "book_form", gin.H{
		"Title":   title,
		"Action":  action,
		"Form":    form,
		"Authors": authors,
		"Error":   errMessage,
	})
}

func (ui *UIController) authorOptions(ctx context.Context) ([]library.AuthorDTO, error) {
	return ui.authors.List(ctx, false)
}

func (ui *UIController) NewBookPage(c *gin.Context) {
	form := bookForm{}
	if authorID, err := strconv.ParseUint(c.Query("authorId"), 10, 32); err == nil {
		form.AuthorID = uint(authorID)
	}
	ui.renderBookForm(c, http.StatusOK, form, "")
}

func (ui *UIController) EditBookPage(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderBooks(c, http.StatusBadRequest, "Invalid book ID.")
		return
	}

	book, err := ui.books.Get(c.Request.Context(), id)
	if err != nil {
		status, message := uiError(c, err)
		ui.renderBooks(c, status, message)
		return
	}
	ui.renderBookForm(c, http.StatusOK, bookForm{
		ID:            book.ID,
		Title:         book.Title,
		ISBN:          book.ISBN,
		PublishedDate: book.PublishedDate.String(),
		AuthorID:      book.AuthorID,
	}, "")
}

// readBookForm collects the posted book fields. The returned message is
// non-empty when the author or date fields cannot be parsed.
func readBookForm(c *gin.Context, id uint) (bookForm, *library.Date, string) {
	form := bookForm{
		ID:            id,
		Title:         c.PostForm("title"),
		ISBN:          c.PostForm("isbn"),
		PublishedDate: strings.TrimSpace(c.PostForm("publishedDate")),
	}

	if raw := c.PostForm("authorId"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return form, nil, "Choose an author from the list."
		}
		form.AuthorID = uint(authorID)
	}

	if form.PublishedDate == "" {
		return form, nil, ""
	}
	published, err := library.ParseDate(form.PublishedDate)
	if err != nil {
		return form, nil, "publishedDate must be a date in YYYY-MM-DD format."
	}
	return form, &published, ""
}

func (ui *UIController) CreateBook(c *gin.Context) {
	form, published, message := readBookForm(c, 0)
	if message != "" {
		ui.renderBookForm(c, http.StatusBadRequest, form, message)
		return
	}

	input := library.BookCreate{
		Title:         form.Title,
		ISBN:          form.ISBN,
		AuthorID:      form.AuthorID,
		PublishedDate: published,
	}
	if err := binding.Validator.ValidateStruct(&input); err != nil {
		ui.renderBookForm(c, http.StatusBadRequest, form, invalidRequest(err).message)
		return
	}

	if _, err := ui.books.Create(c.Request.Context(), input); err != nil {
		status, message := uiError(c, err)
		ui.renderBookForm(c, status, form, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/books")
}

func (ui *UIController) UpdateBook(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderBooks(c, http.StatusBadRequest, "Invalid book ID.")
		return
	}

	form, published, message := readBookForm(c, id)
	if message != "" {
		ui.renderBookForm(c, http.StatusBadRequest, form, message)
		return
	}

	input := library.BookUpdate{
		ID:            id,
		Title:         form.Title,
		ISBN:          form.ISBN,
		AuthorID:      form.AuthorID,
		PublishedDate: published,
	}
	if err := binding.Validator.ValidateStruct(&input); err != nil {
		ui.renderBookForm(c, http.StatusBadRequest, form, invalidRequest(err).message)
		return
	}

	if err := ui.books.Update(c.Request.Context(), id, input); err != nil {
		status, message := uiError(c, err)
		ui.renderBookForm(c, status, form, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/books")
}

func (ui *UIController) DeleteBook(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		ui.renderBooks(c, http.StatusBadRequest, "Invalid book ID.")
		return
	}

	if err := ui.books.Delete(c.Request.Context(), id); err != nil {
		status, message := uiError(c, err)
		ui.renderBooks(c, status, message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/books")
}
