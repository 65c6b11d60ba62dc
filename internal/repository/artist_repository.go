package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// ArtistRepo encapsulates all queries related to artists and their genres.
type ArtistRepo struct {
	q database.Querier
}

// NewArtistRepo constructs an ArtistRepo on the pool or on a transaction.
func NewArtistRepo(q database.Querier) *ArtistRepo {
	return &ArtistRepo{q: q}
}

const artistColumns = `id, name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description`

// Create inserts the artist row and links its genres.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist, genreIDs []uint64) error {
	const q = `INSERT INTO artists
		(name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q,
		a.Name, nullable(a.City), nullable(a.State), nullable(a.Phone), nullable(a.ImageLink),
		nullable(a.FacebookLink), nullable(a.Website), a.SeekingVenue, nullable(a.SeekingDescription))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return artistGenres.replace(ctx, r.q, a.ID, genreIDs)
}

// GetByID fetches an artist with its genre names, or ErrNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var (
		a                                                       model.Artist
		city, state, phone, image, facebook, website, seekingDs sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id).Scan(
		&a.ID, &a.Name, &city, &state, &phone, &image, &facebook, &website, &a.SeekingVenue, &seekingDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.City, a.State, a.Phone = city.String, state.String, phone.String
	a.ImageLink, a.FacebookLink, a.Website = image.String, facebook.String, website.String
	a.SeekingDescription = seekingDs.String

	if a.Genres, err = artistGenres.names(ctx, r.q, a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

// Exists reports whether an artist with id is present.
func (r *ArtistRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update overwrites every column of the artist and replaces its genre links.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist, genreIDs []uint64) error {
	ok, err := r.Exists(ctx, a.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	const q = `UPDATE artists SET
		name = ?, city = ?, state = ?, phone = ?, image_link = ?,
		facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q,
		a.Name, nullable(a.City), nullable(a.State), nullable(a.Phone), nullable(a.ImageLink),
		nullable(a.FacebookLink), nullable(a.Website), a.SeekingVenue, nullable(a.SeekingDescription),
		a.ID); err != nil {
		return err
	}
	return artistGenres.replace(ctx, r.q, a.ID, genreIDs)
}

// List returns every artist's id and name ordered by id.
func (r *ArtistRepo) List(ctx context.Context) ([]model.ArtistSummary, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Search returns artists whose name contains term, case-insensitively, each
// with the number of shows starting after now.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	const q = `SELECT a.id, a.name, COALESCE(SUM(s.start_time > ?), 0) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE LOWER(a.name) LIKE ?
		GROUP BY a.id, a.name
		ORDER BY a.id`
	return r.summaries(ctx, q, now.UTC(), containsPattern(term))
}

// Recent returns the most recently listed artists, newest first.
func (r *ArtistRepo) Recent(ctx context.Context, limit int) ([]model.ArtistSummary, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ArtistRepo) summaries(ctx context.Context, q string, args ...any) ([]model.ArtistSummary, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Shows returns every show of the artist joined with its venue, ordered by
// start time.
func (r *ArtistRepo) Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error) {
	const q = `SELECT v.id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.q.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ArtistShow{}
	for rows.Next() {
		var (
			s     model.ArtistShow
			image sql.NullString
		)
		if err := rows.Scan(&s.VenueID, &s.VenueName, &image, &s.StartTime); err != nil {
			return nil, err
		}
		s.VenueImageLink = image.String
		out = append(out, s)
	}
	return out, rows.Err()
}
