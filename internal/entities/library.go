package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/utils"
)

// Constraint names shared by the migrations and the error translator.
const (
	ConstraintAuthorNameKey   = "idx_authors_name_key"
	ConstraintBookISBN        = "idx_books_isbn"
	ConstraintBookTitleAuthor = "idx_books_title_author_id"
	ConstraintBookAuthorFK    = "fk_books_author"
)

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	// NameKey is the folded form of Name that carries the unique index,
	// so "Émile Zola" and "emile zola" collide. Folding can expand a rune
	// up to three ("ß" -> "ss"), hence the wider column.
	NameKey string `gorm:"size:400;not null;uniqueIndex:idx_authors_name_key" json:"-"`
	Books   []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

// BeforeSave keeps NameKey in sync on every create and update.
func (a *Author) BeforeSave(tx *gorm.DB) error {
	a.NameKey = utils.FoldName(a.Name)
	return nil
}

type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null;uniqueIndex:idx_books_title_author_id" json:"title"`
	ISBN          string    `gorm:"column:isbn;size:20;not null;uniqueIndex:idx_books_isbn" json:"isbn"`
	PublishedDate time.Time `gorm:"type:date;not null" json:"published_date"`
	AuthorID      uint      `gorm:"not null;index;uniqueIndex:idx_books_title_author_id" json:"author_id"`
	Author        *Author   `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
