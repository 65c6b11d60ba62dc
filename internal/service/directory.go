// Package service implements the venue and artist directory on top of the
// repositories.  Reads run on the pool; every write runs as one unit of
// work through database.WithTx and publishes a listing event after it
// commits.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

// RecentLimit is how many venues and artists the home page shows.
const RecentLimit = 10

// EventPublisher delivers listing events; *queue.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// Directory is the application service behind every page.
type Directory struct {
	db     *sql.DB
	events EventPublisher
	now    func() time.Time

	publishTimeout time.Duration
	wg             sync.WaitGroup
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithPublishTimeout bounds each event publish.
func WithPublishTimeout(t time.Duration) Option {
	return func(d *Directory) { d.publishTimeout = t }
}

// NewDirectory builds a Directory.  events may be nil, in which case no
// listing events are sent.
func NewDirectory(db *sql.DB, events EventPublisher, opts ...Option) *Directory {
	d := &Directory{
		db:             db,
		events:         events,
		now:            time.Now,
		publishTimeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Home is the landing page document.
type Home struct {
	RecentVenues  []model.VenueSummary  `json:"recent_venues"`
	RecentArtists []model.ArtistSummary `json:"recent_artists"`
}

// VenueDetail is a venue with its shows split around the query time.
type VenueDetail struct {
	model.Venue
	PastShows          []model.VenueShow `json:"past_shows"`
	UpcomingShows      []model.VenueShow `json:"upcoming_shows"`
	PastShowsCount     int               `json:"past_shows_count"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
}

// ArtistDetail is an artist with its shows split around the query time.
type ArtistDetail struct {
	model.Artist
	PastShows          []model.ArtistShow `json:"past_shows"`
	UpcomingShows      []model.ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int                `json:"past_shows_count"`
	UpcomingShowsCount int                `json:"upcoming_shows_count"`
}

// SearchResult is the document returned by both searches.  Count always
// equals len(Data).
type SearchResult[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

func newSearchResult[T any](data []T) SearchResult[T] {
	return SearchResult[T]{Count: len(data), Data: data}
}

// Home returns the most recently listed venues and artists.
func (d *Directory) Home(ctx context.Context) (*Home, error) {
	venues, err := repository.NewVenueRepo(d.db).Recent(ctx, RecentLimit, d.now())
	if err != nil {
		return nil, fmt.Errorf("recent venues: %w", err)
	}
	artists, err := repository.NewArtistRepo(d.db).Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent artists: %w", err)
	}
	return &Home{RecentVenues: venues, RecentArtists: artists}, nil
}

// ListVenueAreas returns every venue grouped by city and state.
func (d *Directory) ListVenueAreas(ctx context.Context) ([]model.Area, error) {
	rows, err := repository.NewVenueRepo(d.db).ListSummaries(ctx, d.now())
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return GroupAreas(rows), nil
}

// ListArtists returns every artist's id and name.
func (d *Directory) ListArtists(ctx context.Context) ([]model.ArtistSummary, error) {
	out, err := repository.NewArtistRepo(d.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return out, nil
}

// ListShows returns every show with both sides annotated.
func (d *Directory) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	out, err := repository.NewShowRepo(d.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return out, nil
}

// ListGenres returns the genre catalogue offered by the forms.
func (d *Directory) ListGenres(ctx context.Context) ([]model.Genre, error) {
	out, err := repository.NewGenreRepo(d.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return out, nil
}

// Venue returns the stored venue, used to prefill the edit form.
func (d *Directory) Venue(ctx context.Context, id uint64) (*model.Venue, error) {
	return repository.NewVenueRepo(d.db).GetByID(ctx, id)
}

// Artist returns the stored artist, used to prefill the edit form.
func (d *Directory) Artist(ctx context.Context, id uint64) (*model.Artist, error) {
	return repository.NewArtistRepo(d.db).GetByID(ctx, id)
}

// GetVenue returns the venue page.  Unknown ids yield repository.ErrNotFound.
func (d *Directory) GetVenue(ctx context.Context, id uint64) (*VenueDetail, error) {
	repo := repository.NewVenueRepo(d.db)
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := repo.Shows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venue shows: %w", err)
	}
	past, upcoming := Partition(shows, d.now(), func(s model.VenueShow) time.Time { return s.StartTime })
	return &VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// GetArtist returns the artist page.  Unknown ids yield repository.ErrNotFound.
func (d *Directory) GetArtist(ctx context.Context, id uint64) (*ArtistDetail, error) {
	repo := repository.NewArtistRepo(d.db)
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := repo.Shows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("artist shows: %w", err)
	}
	past, upcoming := Partition(shows, d.now(), func(s model.ArtistShow) time.Time { return s.StartTime })
	return &ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// SearchVenues matches term against venue names, case-insensitively.
func (d *Directory) SearchVenues(ctx context.Context, term string) (SearchResult[model.VenueSummary], error) {
	rows, err := repository.NewVenueRepo(d.db).Search(ctx, term, d.now())
	if err != nil {
		return SearchResult[model.VenueSummary]{}, fmt.Errorf("search venues: %w", err)
	}
	return newSearchResult(rows), nil
}

// SearchArtists matches term against artist names, case-insensitively.
// Each result counts only the artist's upcoming shows.
func (d *Directory) SearchArtists(ctx context.Context, term string) (SearchResult[model.ArtistSummary], error) {
	rows, err := repository.NewArtistRepo(d.db).Search(ctx, term, d.now())
	if err != nil {
		return SearchResult[model.ArtistSummary]{}, fmt.Errorf("search artists: %w", err)
	}
	return newSearchResult(rows), nil
}
