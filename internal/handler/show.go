package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-directory/internal/form"
)

const (
	showListedFlash = "Show was successfully listed!"
	showFailedFlash = "An error occurred. Show could not be listed."
)

// Shows lists every show with its venue and artist.
func (h *DirectoryHandler) Shows(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// CreateShowForm returns the empty show form with the accepted start_time
// layouts.
func (h *DirectoryHandler) CreateShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form":               echo.Map{"artist_id": "", "venue_id": "", "start_time": ""},
		"start_time_formats": form.StartTimeLayouts,
	})
}

// CreateShow lists a show between an existing artist and venue.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid form body"})
	}
	f, err := form.ParseShow(values)
	if err == nil {
		_, err = h.Dir.CreateShow(c.Request().Context(), f)
	}
	return createResult(c, err, showListedFlash, showFailedFlash)
}
