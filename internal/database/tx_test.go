package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver is a minimal driver that only supports transactions and
// records how each one ended.
type recordingDriver struct {
	mu     sync.Mutex
	events []string
}

func (d *recordingDriver) record(ev string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func (d *recordingDriver) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{d: d}, nil }

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { c.d.record("begin"); return &recordingTx{d: c.d}, nil }

type recordingTx struct{ d *recordingDriver }

func (t *recordingTx) Commit() error   { t.d.record("commit"); return nil }
func (t *recordingTx) Rollback() error { t.d.record("rollback"); return nil }

var driverSeq struct {
	sync.Mutex
	n int
}

func openRecording(t *testing.T) (*sql.DB, *recordingDriver) {
	t.Helper()
	driverSeq.Lock()
	driverSeq.n++
	name := "recording-" + strconv.Itoa(driverSeq.n)
	driverSeq.Unlock()

	d := &recordingDriver{}
	sql.Register(name, d)
	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, d
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db, d := openRecording(t)

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "commit"}, d.Events())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, d := openRecording(t)
	boom := errors.New("genre not found")

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"begin", "rollback"}, d.Events())
}

func TestWithTxRollsBackAndRepanics(t *testing.T) {
	db, d := openRecording(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), db, func(tx *sql.Tx) error { panic("kaboom") })
	})
	assert.Equal(t, []string{"begin", "rollback"}, d.Events())
}

func TestDSN(t *testing.T) {
	dsn := DSN("fyyur", "secret", "db.local", "3306", "directory")
	assert.True(t, strings.HasPrefix(dsn, "fyyur:secret@tcp(db.local:3306)/directory?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestSeedGenresSQLQuotes(t *testing.T) {
	q := seedGenresSQL([]string{"Jazz", "Rock 'n' Roll"})
	assert.Equal(t, "INSERT IGNORE INTO genres (name) VALUES ('Jazz'), ('Rock ''n'' Roll')", q)
}

func TestMigrationsAreOrdered(t *testing.T) {
	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].version, migrations[i-1].version)
	}
}
