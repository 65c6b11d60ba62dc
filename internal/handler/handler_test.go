package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/service"
)

// fakeDirectory keeps venues and artists in maps and records what the
// handlers passed in.
type fakeDirectory struct {
	venues  map[uint64]*model.Venue
	artists map[uint64]*model.Artist
	genres  []model.Genre
	failAll error

	lastVenueForm  form.VenueForm
	lastVenuePatch form.VenuePatch
	lastShow       form.ShowForm
	lastTerm       string
	deleted        []uint64
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		venues: map[uint64]*model.Venue{
			1: {ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
				Website: "https://www.themusicalhop.com", Genres: []string{"Jazz"}},
		},
		artists: map[uint64]*model.Artist{
			4: {ID: 4, Name: "Guns N Petals", Genres: []string{"Rock n Roll"}},
		},
		genres: []model.Genre{{ID: 1, Name: "Jazz"}, {ID: 2, Name: "Rock n Roll"}},
	}
}

func (f *fakeDirectory) Home(ctx context.Context) (*service.Home, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &service.Home{
		RecentVenues:  []model.VenueSummary{{ID: 1, Name: "The Musical Hop"}},
		RecentArtists: []model.ArtistSummary{{ID: 4, Name: "Guns N Petals"}},
	}, nil
}

func (f *fakeDirectory) ListVenueAreas(ctx context.Context) ([]model.Area, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return []model.Area{{City: "San Francisco", State: "CA", Venues: []model.VenueSummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}}}}, nil
}

func (f *fakeDirectory) ListArtists(ctx context.Context) ([]model.ArtistSummary, error) {
	return []model.ArtistSummary{{ID: 4, Name: "Guns N Petals"}}, f.failAll
}

func (f *fakeDirectory) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	return []model.ShowListing{{VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
		StartTime: time.Date(2035, 5, 21, 21, 30, 0, 0, time.UTC)}}, f.failAll
}

func (f *fakeDirectory) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return f.genres, f.failAll
}

func (f *fakeDirectory) Venue(ctx context.Context, id uint64) (*model.Venue, error) {
	if v, ok := f.venues[id]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDirectory) Artist(ctx context.Context, id uint64) (*model.Artist, error) {
	if a, ok := f.artists[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDirectory) GetVenue(ctx context.Context, id uint64) (*service.VenueDetail, error) {
	v, err := f.Venue(ctx, id)
	if err != nil {
		return nil, err
	}
	return &service.VenueDetail{Venue: *v, PastShows: []model.VenueShow{}, UpcomingShows: []model.VenueShow{
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: time.Date(2035, 5, 21, 21, 30, 0, 0, time.UTC)},
	}, UpcomingShowsCount: 1}, nil
}

func (f *fakeDirectory) GetArtist(ctx context.Context, id uint64) (*service.ArtistDetail, error) {
	a, err := f.Artist(ctx, id)
	if err != nil {
		return nil, err
	}
	return &service.ArtistDetail{Artist: *a, PastShows: []model.ArtistShow{}, UpcomingShows: []model.ArtistShow{}}, nil
}

func (f *fakeDirectory) SearchVenues(ctx context.Context, term string) (service.SearchResult[model.VenueSummary], error) {
	f.lastTerm = term
	data := []model.VenueSummary{}
	for _, v := range f.venues {
		if strings.Contains(strings.ToLower(v.Name), strings.ToLower(term)) {
			data = append(data, model.VenueSummary{ID: v.ID, Name: v.Name})
		}
	}
	return service.SearchResult[model.VenueSummary]{Count: len(data), Data: data}, nil
}

func (f *fakeDirectory) SearchArtists(ctx context.Context, term string) (service.SearchResult[model.ArtistSummary], error) {
	f.lastTerm = term
	return service.SearchResult[model.ArtistSummary]{Count: 1, Data: []model.ArtistSummary{{ID: 4, Name: "Guns N Petals", NumUpcomingShows: 1}}}, nil
}

func (f *fakeDirectory) CreateVenue(ctx context.Context, vf form.VenueForm) (*model.Venue, error) {
	f.lastVenueForm = vf
	if err := vf.Validate(); err != nil {
		return nil, err
	}
	for _, g := range vf.Genres {
		if g == "Polka" {
			return nil, fmt.Errorf("create venue: %w", &repository.GenreNotFoundError{Name: g})
		}
	}
	if f.failAll != nil {
		return nil, f.failAll
	}
	return vf.Model(), nil
}

func (f *fakeDirectory) CreateArtist(ctx context.Context, af form.ArtistForm) (*model.Artist, error) {
	if err := af.Validate(); err != nil {
		return nil, err
	}
	return af.Model(), f.failAll
}

func (f *fakeDirectory) CreateShow(ctx context.Context, sf form.ShowForm) (*model.Show, error) {
	f.lastShow = sf
	if _, ok := f.artists[sf.ArtistID]; !ok {
		return nil, fmt.Errorf("create show: %w: artist %d does not exist", repository.ErrInvalidReference, sf.ArtistID)
	}
	return sf.Model(), nil
}

func (f *fakeDirectory) UpdateVenue(ctx context.Context, id uint64, p form.VenuePatch) (*model.Venue, error) {
	f.lastVenuePatch = p
	v, err := f.Venue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update venue %d: %w", id, err)
	}
	vf := form.VenueFromModel(v)
	p.Apply(&vf)
	if err := vf.Validate(); err != nil {
		return nil, err
	}
	return vf.Model(), nil
}

func (f *fakeDirectory) UpdateArtist(ctx context.Context, id uint64, p form.ArtistPatch) (*model.Artist, error) {
	if _, err := f.Artist(ctx, id); err != nil {
		return nil, err
	}
	return nil, f.failAll
}

func (f *fakeDirectory) DeleteVenue(ctx context.Context, id uint64) error {
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.venues[id]; !ok {
		return fmt.Errorf("delete venue %d: %w", id, repository.ErrNotFound)
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestServer(dir Directory) *echo.Echo {
	e := echo.New()
	h := NewDirectoryHandler(dir)
	e.GET("/", h.Home)
	e.GET("/venues", h.Venues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.CreateVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.EditVenue)
	e.GET("/artists", h.Artists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.CreateArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.EditArtist)
	e.GET("/shows", h.Shows)
	e.GET("/shows/create", h.CreateShowForm)
	e.POST("/shows/create", h.CreateShow)
	return e
}

func do(e *echo.Echo, method, target string, values url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if values != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHomeAndListings(t *testing.T) {
	e := newTestServer(newFakeDirectory())

	rec := do(e, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["recent_venues"], 1)
	assert.Len(t, body["recent_artists"], 1)

	rec = do(e, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	areas := decode(t, rec)["areas"].([]any)
	area := areas[0].(map[string]any)
	assert.Equal(t, "San Francisco", area["city"])
	venue := area["venues"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(2), venue["num_upcoming_shows"])
	assert.NotContains(t, venue, "city")

	rec = do(e, http.MethodGet, "/shows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	show := decode(t, rec)["shows"].([]any)[0].(map[string]any)
	assert.Equal(t, "Guns N Petals", show["artist_name"])
	assert.Equal(t, "2035-05-21T21:30:00Z", show["start_time"])
}

func TestListingFailureIs500(t *testing.T) {
	dir := newFakeDirectory()
	dir.failAll = errors.New("connection refused")
	e := newTestServer(dir)

	for _, path := range []string{"/", "/venues", "/artists", "/shows", "/venues/create"} {
		rec := do(e, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}
}

func TestSearch(t *testing.T) {
	dir := newFakeDirectory()
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/venues/search", url.Values{"search_term": {"musical"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "musical", body["search_term"])
	results := body["results"].(map[string]any)
	assert.Equal(t, float64(1), results["count"])
	assert.Len(t, results["data"], 1)

	rec = do(e, http.MethodPost, "/artists/search", url.Values{"search_term": {"A"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", dir.lastTerm)
	data := decode(t, rec)["results"].(map[string]any)["data"].([]any)
	assert.Equal(t, float64(1), data[0].(map[string]any)["num_upcoming_shows"])
}

func TestDetailPages(t *testing.T) {
	e := newTestServer(newFakeDirectory())

	rec := do(e, http.MethodGet, "/venues/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "The Musical Hop", body["name"])
	assert.Equal(t, float64(1), body["upcoming_shows_count"])
	assert.Equal(t, float64(0), body["past_shows_count"])
	assert.Equal(t, []any{"Jazz"}, body["genres"])

	for _, path := range []string{"/venues/99", "/venues/abc", "/venues/0", "/artists/99", "/venues/99/edit", "/artists/x/edit"} {
		assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, path, nil).Code, path)
	}

	rec = do(e, http.MethodGet, "/artists/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Guns N Petals", decode(t, rec)["name"])
}

func TestCreateVenueFlash(t *testing.T) {
	dir := newFakeDirectory()
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/venues/create", url.Values{
		"name": {"The Fillmore"}, "city": {"San Francisco"}, "state": {"CA"}, "address": {"1805 Geary Blvd"},
		"genres": {"Jazz", "Blues"}, "seeking_talent": {"y"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Venue The Fillmore was successfully listed!", body["flash"])
	assert.Equal(t, []string{"Jazz", "Blues"}, dir.lastVenueForm.Genres)
	assert.True(t, dir.lastVenueForm.SeekingTalent)

	rec = do(e, http.MethodPost, "/venues/create", url.Values{"name": {"Half Filled"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "An error occurred. Venue Half Filled could not be listed.", body["flash"])
	assert.Len(t, body["errors"], 3)

	rec = do(e, http.MethodPost, "/venues/create", url.Values{
		"name": {"Polka Palace"}, "city": {"Milwaukee"}, "state": {"WI"}, "address": {"1 Polka Way"}, "genres": {"Polka"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], `"Polka"`)
}

func TestCreateFailureIs500(t *testing.T) {
	dir := newFakeDirectory()
	dir.failAll = errors.New("deadlock")
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/artists/create", url.Values{"name": {"Matt Quevedo"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An error occurred. Artist Matt Quevedo could not be listed.", body["flash"])
	assert.NotContains(t, body, "error")
}

func TestCreateArtistFlash(t *testing.T) {
	e := newTestServer(newFakeDirectory())
	rec := do(e, http.MethodPost, "/artists/create", url.Values{"name": {"Matt Quevedo"}, "seeking_venue": {"y"}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Artist Matt Quevedo was successfully listed!", decode(t, rec)["flash"])
}

func TestCreateShow(t *testing.T) {
	dir := newFakeDirectory()
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/shows/create", url.Values{
		"artist_id": {"4"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, showListedFlash, decode(t, rec)["flash"])
	assert.Equal(t, 2035, dir.lastShow.StartTime.Year())

	rec = do(e, http.MethodPost, "/shows/create", url.Values{
		"artist_id": {"77"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, showFailedFlash, decode(t, rec)["flash"])

	rec = do(e, http.MethodPost, "/shows/create", url.Values{"artist_id": {"4"}, "venue_id": {"1"}, "start_time": {"tomorrow"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, decode(t, rec)["errors"], 1)
}

func TestFormPages(t *testing.T) {
	e := newTestServer(newFakeDirectory())

	rec := do(e, http.MethodGet, "/venues/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["genres"], 2)

	rec = do(e, http.MethodGet, "/venues/1/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	prefill := body["form"].(map[string]any)
	assert.Equal(t, "https://www.themusicalhop.com", prefill["website_link"])
	assert.Equal(t, []any{"Jazz"}, prefill["genres"])
	assert.Equal(t, float64(1), body["venue"].(map[string]any)["id"])

	rec = do(e, http.MethodGet, "/artists/4/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Guns N Petals", decode(t, rec)["form"].(map[string]any)["name"])

	rec = do(e, http.MethodGet, "/shows/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["start_time_formats"], len(form.StartTimeLayouts))
}

func TestEditVenue(t *testing.T) {
	dir := newFakeDirectory()
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/venues/1/edit", url.Values{"name": {"The Musical Hop II"}, "genres": {"Jazz"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get(echo.HeaderLocation))
	require.NotNil(t, dir.lastVenuePatch.Name)
	assert.Equal(t, "The Musical Hop II", *dir.lastVenuePatch.Name)
	assert.Nil(t, dir.lastVenuePatch.City)

	rec = do(e, http.MethodPost, "/venues/1/edit", url.Values{"name": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/venues/42/edit", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditArtistFailureIs500(t *testing.T) {
	dir := newFakeDirectory()
	dir.failAll = errors.New("lock wait timeout")
	e := newTestServer(dir)

	rec := do(e, http.MethodPost, "/artists/4/edit", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(e, http.MethodPost, "/artists/5/edit", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVenue(t *testing.T) {
	dir := newFakeDirectory()
	e := newTestServer(dir)

	rec := do(e, http.MethodDelete, "/venues/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"status":200}`, rec.Body.String())
	assert.Equal(t, []uint64{1}, dir.deleted)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/venues/9", nil).Code)

	dir.failAll = errors.New("db gone")
	rec = do(e, http.MethodDelete, "/venues/1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"status":500}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health)
	e.GET("/readyz", Ready(pingerFunc(func(context.Context) error { return errors.New("down") })))

	rec := do(e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, do(e, http.MethodGet, "/readyz", nil).Code)
}

type pingerFunc func(context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }
