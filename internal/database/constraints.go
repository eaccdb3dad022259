package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/mrlokans/library-manager/internal/entities"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const (
	sqliteUniquePrefix     = "UNIQUE constraint failed: "
	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
)

// sqliteUniqueColumns maps the column list SQLite reports to the index name
// PostgreSQL would report for the same violation.
var sqliteUniqueColumns = map[string]string{
	"authors.name_key":             entities.ConstraintAuthorNameKey,
	"books.isbn":                   entities.ConstraintBookISBN,
	"books.title, books.author_id": entities.ConstraintBookTitleAuthor,
}

// ConstraintError is a store-level integrity violation.
// Constraint is empty when the driver did not say which constraint failed.
type ConstraintError struct {
	Constraint string
	Kind       ConstraintKind
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint %q violated: %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// AsConstraintError extracts a *ConstraintError from err's chain.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		return constraintErr, true
	}
	return nil, false
}

// TranslateError wraps driver-specific integrity violations in *ConstraintError.
// Other errors, including nil, are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsConstraintError(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Constraint: pgErr.ConstraintName, Kind: ConstraintUnique, Err: err}
		case pgForeignKeyViolation:
			return &ConstraintError{Constraint: pgErr.ConstraintName, Kind: ConstraintForeignKey, Err: err}
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return &ConstraintError{Constraint: sqliteUniqueConstraint(liteErr.Error()), Kind: ConstraintUnique, Err: err}
		case sqlite3.ErrConstraintForeignKey:
			// SQLite does not name the failing key; books.author_id is the only one.
			return &ConstraintError{Constraint: entities.ConstraintBookAuthorFK, Kind: ConstraintForeignKey, Err: err}
		case sqlite3.ErrConstraintTrigger:
			// ON DELETE RESTRICT is enforced as a trigger and reported as such.
			if strings.Contains(liteErr.Error(), sqliteForeignKeyFailed) {
				return &ConstraintError{Constraint: entities.ConstraintBookAuthorFK, Kind: ConstraintForeignKey, Err: err}
			}
		}
	}
	return err
}

func sqliteUniqueConstraint(message string) string {
	idx := strings.Index(message, sqliteUniquePrefix)
	if idx < 0 {
		return ""
	}
	columns := strings.TrimSpace(message[idx+len(sqliteUniquePrefix):])
	return sqliteUniqueColumns[columns]
}
