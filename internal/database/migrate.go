package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// migration is one forward-only schema step.  Versions are applied in order
// and recorded in schema_migrations so a restart never re-runs a step.
type migration struct {
	version int
	name    string
	stmts   []string
}

// DefaultGenres is the genre catalogue seeded into a fresh database.  Forms
// may only reference genres that exist in the genres table.
var DefaultGenres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}

var migrations = []migration{
	{
		version: 1,
		name:    "create directory tables",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS genres (
				id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(120)    NOT NULL,
				UNIQUE KEY uq_genres_name (name)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS venues (
				id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name                VARCHAR(255)    NOT NULL,
				city                VARCHAR(120)    NOT NULL,
				state               VARCHAR(120)    NOT NULL,
				address             VARCHAR(120)    NOT NULL,
				phone               VARCHAR(120)    NULL,
				image_link          VARCHAR(500)    NULL,
				facebook_link       VARCHAR(120)    NULL,
				website             VARCHAR(120)    NULL,
				seeking_talent      BOOLEAN         NOT NULL DEFAULT FALSE,
				seeking_description TEXT            NULL,
				KEY idx_venues_area (state, city)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS artists (
				id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name                VARCHAR(255)    NOT NULL,
				city                VARCHAR(120)    NULL,
				state               VARCHAR(120)    NULL,
				phone               VARCHAR(120)    NULL,
				image_link          VARCHAR(500)    NULL,
				facebook_link       VARCHAR(120)    NULL,
				website             VARCHAR(120)    NULL,
				seeking_venue       BOOLEAN         NOT NULL DEFAULT FALSE,
				seeking_description TEXT            NULL
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS shows (
				id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				artist_id  BIGINT UNSIGNED NOT NULL,
				venue_id   BIGINT UNSIGNED NOT NULL,
				start_time DATETIME        NOT NULL,
				KEY idx_shows_venue_start (venue_id, start_time),
				KEY idx_shows_artist_start (artist_id, start_time),
				CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
				CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)  ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS venue_genres (
				venue_id BIGINT UNSIGNED NOT NULL,
				genre_id BIGINT UNSIGNED NOT NULL,
				PRIMARY KEY (venue_id, genre_id),
				CONSTRAINT fk_venue_genres_venue FOREIGN KEY (venue_id) REFERENCES venues (id) ON DELETE CASCADE,
				CONSTRAINT fk_venue_genres_genre FOREIGN KEY (genre_id) REFERENCES genres (id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS artist_genres (
				artist_id BIGINT UNSIGNED NOT NULL,
				genre_id  BIGINT UNSIGNED NOT NULL,
				PRIMARY KEY (artist_id, genre_id),
				CONSTRAINT fk_artist_genres_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
				CONSTRAINT fk_artist_genres_genre  FOREIGN KEY (genre_id)  REFERENCES genres (id)  ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		},
	},
	{
		version: 2,
		name:    "seed genres",
		stmts:   []string{seedGenresSQL(DefaultGenres)},
	},
}

func seedGenresSQL(names []string) string {
	values := make([]string, 0, len(names))
	for _, n := range names {
		values = append(values, "('"+strings.ReplaceAll(n, "'", "''")+"')")
	}
	return "INSERT IGNORE INTO genres (name) VALUES " + strings.Join(values, ", ")
}

// Migrate applies every pending migration.  Each version runs in its own
// transaction together with its schema_migrations row.  MySQL commits DDL
// implicitly, so CREATE statements are written to be idempotent.
func Migrate(ctx context.Context, db *sql.DB) (applied []int, err error) {
	const qTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INT          NOT NULL PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		applied_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, qTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	done := map[int]bool{}
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		done[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := WithTx(ctx, db, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		applied = append(applied, m.version)
	}
	return applied, nil
}
