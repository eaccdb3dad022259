package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entrypoint"
	"github.com/mrlokans/library-manager/internal/library"
	"github.com/mrlokans/library-manager/internal/utils"
)

type seedBook struct {
	Title         string
	ISBN          string
	PublishedDate string
}

type seedAuthor struct {
	Name  string
	Books []seedBook
}

var sampleCatalog = []seedAuthor{
	{
		Name: "J.K. Rowling",
		Books: []seedBook{
			{Title: "Harry Potter and the Philosopher's Stone", ISBN: "9780747532699", PublishedDate: "1997-06-26"},
			{Title: "Harry Potter and the Chamber of Secrets", ISBN: "9780747538493", PublishedDate: "1998-07-02"},
		},
	},
	{
		Name: "Émile Zola",
		Books: []seedBook{
			{Title: "Germinal", ISBN: "9780140447422", PublishedDate: "1885-03-02"},
		},
	},
	{
		Name: "Ursula K. Le Guin",
		Books: []seedBook{
			{Title: "A Wizard of Earthsea", ISBN: "9780553383041", PublishedDate: "1968-11-01"},
			{Title: "The Left Hand of Darkness", ISBN: "9780441478125", PublishedDate: "1969-03-01"},
		},
	},
	{
		Name: "Machado de Assis",
	},
}

// SeedResult counts what a seed run changed.
type SeedResult struct {
	AuthorsCreated int
	BooksCreated   int
	Skipped        int
}

type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load a small sample catalog. Records that already exist are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -db ./library.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     cmd.DatabasePath,
		LogLevel: "silent",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	services := entrypoint.NewServices(db)
	result, err := Seed(context.Background(), services, sampleCatalog)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Seed Results ===\n")
	fmt.Printf("Authors created: %d\n", result.AuthorsCreated)
	fmt.Printf("Books created: %d\n", result.BooksCreated)
	fmt.Printf("Skipped (already present): %d\n", result.Skipped)

	return nil
}

// Seed inserts the catalog through the service layer so the same validation
// and uniqueness rules apply as for API clients. Conflicts are skipped.
func Seed(ctx context.Context, services *entrypoint.Services, catalog []seedAuthor) (SeedResult, error) {
	var result SeedResult

	existing, err := services.Authors.List(ctx, false)
	if err != nil {
		return result, fmt.Errorf("failed to list authors: %w", err)
	}

	for _, entry := range catalog {
		authorID, created, err := ensureAuthor(ctx, services.Authors, existing, entry.Name)
		if err != nil {
			return result, err
		}
		if created {
			result.AuthorsCreated++
		} else {
			result.Skipped++
		}

		for _, book := range entry.Books {
			date, err := library.ParseDate(book.PublishedDate)
			if err != nil {
				return result, fmt.Errorf("sample book %q: %w", book.Title, err)
			}

			_, err = services.Books.Create(ctx, library.BookCreate{
				Title:         book.Title,
				ISBN:          book.ISBN,
				PublishedDate: &date,
				AuthorID:      authorID,
			})
			if isDuplicate(err) {
				log.Printf("Skipping book %q: %v", book.Title, err)
				result.Skipped++
				continue
			}
			if err != nil {
				return result, fmt.Errorf("failed to create book %q: %w", book.Title, err)
			}
			result.BooksCreated++
		}
	}

	return result, nil
}

func ensureAuthor(ctx context.Context, authors *library.AuthorService, existing []library.AuthorDTO, name string) (uint, bool, error) {
	for _, author := range existing {
		if utils.SameName(author.Name, name) {
			return author.ID, false, nil
		}
	}

	author, err := authors.Create(ctx, library.AuthorCreate{Name: name})
	if err != nil {
		return 0, false, fmt.Errorf("failed to create author %q: %w", name, err)
	}
	return author.ID, true, nil
}

// isDuplicate reports whether err is a unique-index violation.
func isDuplicate(err error) bool {
	constraintErr, ok := database.AsConstraintError(err)
	return ok && constraintErr.Kind == database.ConstraintUnique
}
