package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"Hall", "%hall%"},
		{"", "%%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.term))
		})
	}
}

func TestNullable(t *testing.T) {
	assert.False(t, nullable("").Valid)
	n := nullable("555-0100")
	assert.True(t, n.Valid)
	assert.Equal(t, "555-0100", n.String)
}

func TestGenreNotFoundError(t *testing.T) {
	err := fmt.Errorf("create venue: %w", &GenreNotFoundError{Name: "Polka"})
	assert.ErrorIs(t, err, ErrGenreNotFound)

	var gerr *GenreNotFoundError
	assert.True(t, errors.As(err, &gerr))
	assert.Equal(t, "Polka", gerr.Name)
	assert.Contains(t, err.Error(), `"Polka"`)
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.ErrorIs(t, translate(fk), ErrInvalidReference)

	other := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.Same(t, other, translate(other))
}

type stubResult struct {
	n   int64
	err error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.n, r.err }

// execOnly answers ExecContext with a fixed result; queries are not expected.
type execOnly struct {
	res sql.Result
}

func (q execOnly) ExecContext(context.Context, string, ...any) (sql.Result, error) { return q.res, nil }
func (q execOnly) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("unexpected query")
}
func (q execOnly) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }

func TestVenueDeleteRowsAffected(t *testing.T) {
	ctx := context.Background()

	driverErr := errors.New("driver: rows affected unavailable")
	err := NewVenueRepo(execOnly{res: stubResult{err: driverErr}}).Delete(ctx, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, NewVenueRepo(execOnly{res: stubResult{n: 0}}).Delete(ctx, 7), ErrNotFound)
	assert.NoError(t, NewVenueRepo(execOnly{res: stubResult{n: 1}}).Delete(ctx, 7))
}
