//go:build integration

// Package testinfra starts throwaway MySQL servers for integration tests.
// Tests using it are compiled only with `-tags integration` and skip when
// Docker is unavailable.
package testinfra

import (
	"context"
	"database/sql"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/iliyamo/venue-booking-directory/internal/database"
)

const (
	mysqlImage    = "mysql:8.4"
	mysqlPassword = "directory"
	mysqlDatabase = "directory"
)

// SkipIfNoDocker skips the test when the Docker daemon is not reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewMySQL starts a MySQL container, applies the schema migrations and
// returns a pool connected to it.  The container is terminated when the
// test finishes.
func NewMySQL(t *testing.T) *sql.DB {
	t.Helper()
	SkipIfNoDocker(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mysqlImage,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": mysqlPassword,
			"MYSQL_DATABASE":      mysqlDatabase,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("3306/tcp"),
			wait.ForLog("ready for connections").WithOccurrence(2),
		).WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start mysql container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	dsn := database.DSN("root", mysqlPassword, host, port.Port(), mysqlDatabase)
	var db *sql.DB
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err = database.Open(ctx, dsn)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ShowsAtVenue counts the show rows referencing the venue.
func ShowsAtVenue(t *testing.T, db database.Querier, venueID uint64) int {
	t.Helper()
	return countShows(t, db, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, venueID)
}

// ShowsByArtist counts the show rows referencing the artist.
func ShowsByArtist(t *testing.T, db database.Querier, artistID uint64) int {
	t.Helper()
	return countShows(t, db, `SELECT COUNT(*) FROM shows WHERE artist_id = ?`, artistID)
}

func countShows(t *testing.T, db database.Querier, query string, id uint64) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), query, id).Scan(&n); err != nil {
		t.Fatalf("count shows: %v", err)
	}
	return n
}
