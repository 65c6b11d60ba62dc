package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

// Artists lists every artist's id and name.
func (h *DirectoryHandler) Artists(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// SearchArtists matches the search_term field against artist names.
func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "results": res})
}

// ShowArtist returns the artist page with its past and upcoming shows.
func (h *DirectoryHandler) ShowArtist(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "artist")
	}
	a, err := h.Dir.GetArtist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "artist")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *DirectoryHandler) CreateArtistForm(c echo.Context) error {
	genres, err := h.Dir.ListGenres(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"form": form.ArtistForm{Genres: []string{}}, "genres": genres})
}

// CreateArtist lists a new artist from the submitted form.
func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid form body"})
	}
	f := form.ParseArtist(values)
	_, err = h.Dir.CreateArtist(c.Request().Context(), f)
	return createResult(c, err,
		fmt.Sprintf("Artist %s was successfully listed!", f.Name),
		fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name))
}

func (h *DirectoryHandler) EditArtistForm(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "artist")
	}
	ctx := c.Request().Context()
	a, err := h.Dir.Artist(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "artist")
		}
		return serverError(c, err)
	}
	genres, err := h.Dir.ListGenres(ctx)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artist": a, "form": form.ArtistFromModel(a), "genres": genres})
}

// EditArtist applies the submitted fields and redirects to the artist page.
func (h *DirectoryHandler) EditArtist(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "artist")
	}
	values, err := formValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid form body"})
	}
	_, err = h.Dir.UpdateArtist(c.Request().Context(), id, form.ParseArtistPatch(values))
	return editResult(c, err, "artist", fmt.Sprintf("/artists/%d", id))
}
