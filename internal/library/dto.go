package library

import "github.com/mrlokans/library-manager/internal/entities"

// AuthorNotProvided stands in for the author name when the relation is missing.
const AuthorNotProvided = "Author not provided"

type BookSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

type AuthorDTO struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Books []BookSummary `json:"books"`
}

type AuthorCreate struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}

type AuthorUpdate struct {
	ID   uint   `json:"id" binding:"required,gt=0"`
	Name string `json:"name" binding:"required,min=3,max=100"`
}

type BookDTO struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ISBN          string `json:"isbn"`
	PublishedDate Date   `json:"publishedDate"`
	AuthorID      uint   `json:"authorId"`
	AuthorName    string `json:"authorName"`
}

type BookCreate struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	ISBN          string `json:"isbn" binding:"required,min=3,max=20"`
	AuthorID      uint   `json:"authorId" binding:"required,gt=0"`
	PublishedDate *Date  `json:"publishedDate" binding:"required"`
}

type BookUpdate struct {
	ID            uint   `json:"id" binding:"required,gt=0"`
	Title         string `json:"title" binding:"required,min=3,max=200"`
	ISBN          string `json:"isbn" binding:"required,min=3,max=20"`
	AuthorID      uint   `json:"authorId" binding:"required,gt=0"`
	PublishedDate *Date  `json:"publishedDate" binding:"required"`
}

func toAuthorDTO(author *entities.Author) AuthorDTO {
	books := make([]BookSummary, 0, len(author.Books))
	for _, book := range author.Books {
		books = append(books, BookSummary{ID: book.ID, Title: book.Title, ISBN: book.ISBN})
	}
	return AuthorDTO{ID: author.ID, Name: author.Name, Books: books}
}

// toBookDTO fills AuthorName only when withAuthor is set.
func toBookDTO(book *entities.Book, withAuthor bool) BookDTO {
	dto := BookDTO{
		ID:            book.ID,
		Title:         book.Title,
		ISBN:          book.ISBN,
		PublishedDate: NewDate(book.PublishedDate),
		AuthorID:      book.AuthorID,
	}
	if withAuthor {
		dto.AuthorName = AuthorNotProvided
		if book.Author != nil {
			dto.AuthorName = book.Author.Name
		}
	}
	return dto
}

func dateValue(d *Date) Date {
	if d == nil {
		return Date{}
	}
	return *d
}
