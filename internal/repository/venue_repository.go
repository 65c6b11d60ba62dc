package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// VenueRepo encapsulates all queries related to venues and their genres.
type VenueRepo struct {
	q database.Querier
}

// NewVenueRepo constructs a VenueRepo on the pool or on a transaction.
func NewVenueRepo(q database.Querier) *VenueRepo {
	return &VenueRepo{q: q}
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description`

// Create inserts the venue row and links its genres.  On success v.ID holds
// the generated id.  genreIDs must already be resolved.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue, genreIDs []uint64) error {
	const q = `INSERT INTO venues
		(name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, nullable(v.Phone), nullable(v.ImageLink),
		nullable(v.FacebookLink), nullable(v.Website), v.SeekingTalent, nullable(v.SeekingDescription))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return venueGenres.replace(ctx, r.q, v.ID, genreIDs)
}

// GetByID fetches a venue with its genre names.  It returns ErrNotFound if
// no row matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var (
		v                                          model.Venue
		phone, image, facebook, website, seekingDs sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &phone, &image, &facebook, &website,
		&v.SeekingTalent, &seekingDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v.Phone, v.ImageLink, v.FacebookLink = phone.String, image.String, facebook.String
	v.Website, v.SeekingDescription = website.String, seekingDs.String

	if v.Genres, err = venueGenres.names(ctx, r.q, v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// Exists reports whether a venue with id is present.
func (r *VenueRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update overwrites every column of the venue and replaces its genre links.
// It returns ErrNotFound when the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue, genreIDs []uint64) error {
	ok, err := r.Exists(ctx, v.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	const q = `UPDATE venues SET
		name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
		facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, nullable(v.Phone), nullable(v.ImageLink),
		nullable(v.FacebookLink), nullable(v.Website), v.SeekingTalent, nullable(v.SeekingDescription),
		v.ID); err != nil {
		return err
	}
	return venueGenres.replace(ctx, r.q, v.ID, genreIDs)
}

// Delete removes a venue.  Foreign keys cascade to its shows and genre
// links; the artists of those shows are untouched.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// venueSummaryQuery selects venues with the number of shows starting strictly
// after the bound time.
const venueSummaryQuery = `SELECT v.id, v.name, v.city, v.state,
		COALESCE(SUM(s.start_time > ?), 0) AS num_upcoming_shows
	FROM venues v
	LEFT JOIN shows s ON s.venue_id = v.id`

// ListSummaries returns every venue with its upcoming-show count, ordered
// by state, city, then id so that areas come out contiguous.
func (r *VenueRepo) ListSummaries(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	return r.summaries(ctx, venueSummaryQuery+`
	GROUP BY v.id, v.name, v.city, v.state
	ORDER BY v.state, v.city, v.id`, now.UTC())
}

// Search returns venues whose name contains term, case-insensitively.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	return r.summaries(ctx, venueSummaryQuery+`
	WHERE LOWER(v.name) LIKE ?
	GROUP BY v.id, v.name, v.city, v.state
	ORDER BY v.id`, now.UTC(), containsPattern(term))
}

// Recent returns the most recently listed venues, newest first.
func (r *VenueRepo) Recent(ctx context.Context, limit int, now time.Time) ([]model.VenueSummary, error) {
	return r.summaries(ctx, venueSummaryQuery+`
	GROUP BY v.id, v.name, v.city, v.state
	ORDER BY v.id DESC
	LIMIT ?`, now.UTC(), limit)
}

func (r *VenueRepo) summaries(ctx context.Context, q string, args ...any) ([]model.VenueSummary, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.VenueSummary{}
	for rows.Next() {
		var s model.VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Shows returns every show of the venue joined with its artist, ordered by
// start time.  Partitioning into past and upcoming is left to the caller so
// that both halves use the same clock reading.
func (r *VenueRepo) Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error) {
	const q = `SELECT a.id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.q.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.VenueShow{}
	for rows.Next() {
		var (
			s     model.VenueShow
			image sql.NullString
		)
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &image, &s.StartTime); err != nil {
			return nil, err
		}
		s.ArtistImageLink = image.String
		out = append(out, s)
	}
	return out, rows.Err()
}
