// Package repository holds the hand-written SQL for venues, artists, shows
// and genres.  Every repository runs on a database.Querier so the same code
// works against the pool for reads and inside a unit of work for writes.
//
// The sentinel values below let handlers distinguish failure kinds with
// errors.Is.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when an id does not resolve to a row.  Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrGenreNotFound is returned when a submitted genre name has no exact
// match in the genres table.  The concrete error is a *GenreNotFoundError.
var ErrGenreNotFound = errors.New("genre not found")

// ErrInvalidReference is returned when a show points at an artist or venue
// that does not exist.
var ErrInvalidReference = errors.New("invalid reference")

// GenreNotFoundError names the genre that failed to resolve.
type GenreNotFoundError struct {
	Name string
}

func (e *GenreNotFoundError) Error() string {
	return fmt.Sprintf("genre %q not found", e.Name)
}

func (e *GenreNotFoundError) Unwrap() error { return ErrGenreNotFound }

// MySQL server error numbers the repositories translate.
const (
	errNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2: foreign key parent missing
)

// translate maps driver errors onto the sentinels above.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == errNoReferencedRow {
		return fmt.Errorf("%w: %s", ErrInvalidReference, me.Message)
	}
	return err
}
