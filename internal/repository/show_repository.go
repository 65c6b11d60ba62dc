package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	q database.Querier
}

// NewShowRepo constructs a ShowRepo on the pool or on a transaction.
func NewShowRepo(q database.Querier) *ShowRepo {
	return &ShowRepo{q: q}
}

// Create inserts a show and assigns the generated id.  A missing artist or
// venue surfaces as ErrInvalidReference through the foreign keys.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show joined with its venue and artist, ordered by
// start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT v.id, v.name, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v  ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var (
			l     model.ShowListing
			image sql.NullString
		)
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &image, &l.StartTime); err != nil {
			return nil, err
		}
		l.ArtistImageLink = image.String
		out = append(out, l)
	}
	return out, rows.Err()
}
