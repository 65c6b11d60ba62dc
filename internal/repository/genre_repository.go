package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// GenreRepo reads the genre catalogue and the two genre join tables.
type GenreRepo struct {
	q database.Querier
}

// NewGenreRepo constructs a GenreRepo on the pool or on a transaction.
func NewGenreRepo(q database.Querier) *GenreRepo {
	return &GenreRepo{q: q}
}

// ListAll returns every genre ordered by name.
func (r *GenreRepo) ListAll(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ResolveNames maps genre names to ids by exact, case-sensitive match.
// Duplicate names collapse to one id.  The first name without a match
// fails the whole lookup with a *GenreNotFoundError.
func (r *GenreRepo) ResolveNames(ctx context.Context, names []string) ([]uint64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	unique := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(unique)), ",")
	args := make([]any, len(unique))
	for i, n := range unique {
		args[i] = n
	}
	// The column collation is case-insensitive, so candidates are compared
	// again in Go to keep the lookup exact.
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM genres WHERE name IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]uint64{}
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		byName[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(unique))
	for _, n := range unique {
		id, ok := byName[n]
		if !ok {
			return nil, &GenreNotFoundError{Name: n}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// genreLink describes one join table.
type genreLink struct {
	table  string // venue_genres or artist_genres
	column string // venue_id or artist_id
}

var (
	venueGenres  = genreLink{table: "venue_genres", column: "venue_id"}
	artistGenres = genreLink{table: "artist_genres", column: "artist_id"}
)

// names returns the genre names linked to ownerID, ordered by name.
func (l genreLink) names(ctx context.Context, q database.Querier, ownerID uint64) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT g.name FROM genres g
		 JOIN `+l.table+` j ON j.genre_id = g.id
		 WHERE j.`+l.column+` = ?
		 ORDER BY g.name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// replace overwrites the links of ownerID with genreIDs.
func (l genreLink) replace(ctx context.Context, q database.Querier, ownerID uint64, genreIDs []uint64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM `+l.table+` WHERE `+l.column+` = ?`, ownerID); err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	values := strings.TrimSuffix(strings.Repeat("(?, ?),", len(genreIDs)), ",")
	args := make([]any, 0, 2*len(genreIDs))
	for _, gid := range genreIDs {
		args = append(args, ownerID, gid)
	}
	_, err := q.ExecContext(ctx, `INSERT INTO `+l.table+` (`+l.column+`, genre_id) VALUES `+values, args...)
	return err
}
