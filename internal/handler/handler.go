// Package handler exposes the directory pages over HTTP.  Pages are JSON
// documents; form submissions are read from url-encoded or multipart
// bodies with the same field names as the HTML forms.
package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/logging"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/service"
)

// Directory is the service the handlers call; *service.Directory
// implements it.
type Directory interface {
	Home(ctx context.Context) (*service.Home, error)
	ListVenueAreas(ctx context.Context) ([]model.Area, error)
	ListArtists(ctx context.Context) ([]model.ArtistSummary, error)
	ListShows(ctx context.Context) ([]model.ShowListing, error)
	ListGenres(ctx context.Context) ([]model.Genre, error)

	Venue(ctx context.Context, id uint64) (*model.Venue, error)
	Artist(ctx context.Context, id uint64) (*model.Artist, error)
	GetVenue(ctx context.Context, id uint64) (*service.VenueDetail, error)
	GetArtist(ctx context.Context, id uint64) (*service.ArtistDetail, error)
	SearchVenues(ctx context.Context, term string) (service.SearchResult[model.VenueSummary], error)
	SearchArtists(ctx context.Context, term string) (service.SearchResult[model.ArtistSummary], error)

	CreateVenue(ctx context.Context, f form.VenueForm) (*model.Venue, error)
	CreateArtist(ctx context.Context, f form.ArtistForm) (*model.Artist, error)
	CreateShow(ctx context.Context, f form.ShowForm) (*model.Show, error)
	UpdateVenue(ctx context.Context, id uint64, p form.VenuePatch) (*model.Venue, error)
	UpdateArtist(ctx context.Context, id uint64, p form.ArtistPatch) (*model.Artist, error)
	DeleteVenue(ctx context.Context, id uint64) error
}

// DirectoryHandler serves every venue, artist and show page.
type DirectoryHandler struct {
	Dir Directory
}

// NewDirectoryHandler returns a handler backed by dir.
func NewDirectoryHandler(dir Directory) *DirectoryHandler {
	return &DirectoryHandler{Dir: dir}
}

// pathID parses the :id parameter.  Anything that is not a positive
// integer cannot name a row, so callers answer 404.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// formValues returns the submitted form fields.
func formValues(c echo.Context) (url.Values, error) {
	return c.FormParams()
}

// isUserError reports whether err was caused by the submission rather than
// by the server.
func isUserError(err error) bool {
	var verrs form.ValidationErrors
	return errors.As(err, &verrs) ||
		errors.Is(err, repository.ErrGenreNotFound) ||
		errors.Is(err, repository.ErrInvalidReference)
}

// failure builds the error body for a rejected submission.
func failure(err error) echo.Map {
	body := echo.Map{"success": false}
	var verrs form.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		body["errors"] = verrs
	case errors.Is(err, repository.ErrGenreNotFound), errors.Is(err, repository.ErrInvalidReference):
		body["error"] = err.Error()
	}
	return body
}

// createResult answers a create submission with its flash message.
func createResult(c echo.Context, err error, okFlash, failFlash string) error {
	if err == nil {
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "flash": okFlash})
	}
	body := failure(err)
	body["flash"] = failFlash
	if isUserError(err) {
		logging.Ctx(c.Request().Context()).Warn().Err(err).Msg("listing rejected")
		return c.JSON(http.StatusUnprocessableEntity, body)
	}
	logging.Ctx(c.Request().Context()).Error().Err(err).Msg("listing failed")
	return c.JSON(http.StatusInternalServerError, body)
}

// editResult answers an edit submission: a redirect to the detail page on
// success, otherwise 404, 422 or 500.
func editResult(c echo.Context, err error, what, detailURL string) error {
	ctx := c.Request().Context()
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, detailURL)
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, what)
	case isUserError(err):
		logging.Ctx(ctx).Warn().Err(err).Msg("edit rejected")
		return c.JSON(http.StatusUnprocessableEntity, failure(err))
	default:
		logging.Ctx(ctx).Error().Err(err).Msg("edit failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
	}
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
}

func serverError(c echo.Context, err error) error {
	logError(c, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

func logError(c echo.Context, err error) {
	logging.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
}
