package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

// Venues lists every venue grouped by city and state.
func (h *DirectoryHandler) Venues(c echo.Context) error {
	areas, err := h.Dir.ListVenueAreas(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues matches the search_term field against venue names.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "results": res})
}

// ShowVenue returns the venue page with its past and upcoming shows.
func (h *DirectoryHandler) ShowVenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "venue")
	}
	v, err := h.Dir.GetVenue(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "venue")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// CreateVenueForm returns an empty venue form and the genre choices.
func (h *DirectoryHandler) CreateVenueForm(c echo.Context) error {
	genres, err := h.Dir.ListGenres(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"form": form.VenueForm{Genres: []string{}}, "genres": genres})
}

// CreateVenue lists a new venue from the submitted form.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid form body"})
	}
	f := form.ParseVenue(values)
	_, err = h.Dir.CreateVenue(c.Request().Context(), f)
	return createResult(c, err,
		fmt.Sprintf("Venue %s was successfully listed!", f.Name),
		fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name))
}

// EditVenueForm returns the stored venue, its form prefill and the genre
// choices.
func (h *DirectoryHandler) EditVenueForm(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "venue")
	}
	ctx := c.Request().Context()
	v, err := h.Dir.Venue(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "venue")
		}
		return serverError(c, err)
	}
	genres, err := h.Dir.ListGenres(ctx)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": v, "form": form.VenueFromModel(v), "genres": genres})
}

// EditVenue applies the submitted fields and redirects to the venue page.
func (h *DirectoryHandler) EditVenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "venue")
	}
	values, err := formValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid form body"})
	}
	_, err = h.Dir.UpdateVenue(c.Request().Context(), id, form.ParseVenuePatch(values))
	return editResult(c, err, "venue", fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue removes a venue and its shows.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "venue")
	}
	if err := h.Dir.DeleteVenue(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "venue")
		}
		logError(c, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "status": http.StatusInternalServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "status": http.StatusOK})
}
