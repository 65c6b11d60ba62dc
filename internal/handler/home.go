package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home returns the most recently listed venues and artists.
func (h *DirectoryHandler) Home(c echo.Context) error {
	home, err := h.Dir.Home(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, home)
}
